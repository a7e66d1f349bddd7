package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.dohmane.dev/store"
)

// TestCreateThenAcceptRemapsChildFKs is scenario 1 from the spec: create
// an Account and a Campaign pointing at its local key, then accept the
// Account under a server-assigned key, and check the Campaign's FK was
// rewritten.
func TestCreateThenAcceptRemapsChildFKs(t *testing.T) {
	reg := newAdRegistry()
	account, err := reg.Type("Account")
	require.NoError(t, err)
	campaign, err := reg.Type("Campaign")
	require.NoError(t, err)

	s := store.New()
	s, _, accountPK := account.Current.Create(s, map[string]any{"name": "A"})
	require.Equal(t, int64(-1), accountPK)

	s, _, campaignPK := campaign.Current.Create(s, map[string]any{"name": "C", "account_id": accountPK})
	require.Equal(t, int64(-2), campaignPK)

	s, err = account.Current.Accept(s, accountPK, map[string]any{"id": int64(5), "name": "A"})
	require.NoError(t, err)

	c, ok := campaign.Current.Get(s, campaignPK)
	require.True(t, ok)
	assert.Equal(t, int64(5), c["account_id"])

	accounts := account.Current.GetAll(s)
	require.Len(t, accounts, 1)
	assert.Equal(t, int64(5), accounts[0]["id"])

	initAccounts := account.Initial.GetAll(s)
	require.Len(t, initAccounts, 1)
	assert.Equal(t, int64(5), initAccounts[0]["id"])

	_, stillThere := account.Current.Get(s, accountPK)
	assert.False(t, stillThere, "old local key should no longer resolve")
}

// TestDeleteCascades is scenario 2: Account -> Campaign -> Ad, delete the
// root and accept the deletion; every bucket of every type ends up
// empty.
func TestDeleteCascades(t *testing.T) {
	reg := newAdRegistry()
	account, err := reg.Type("Account")
	require.NoError(t, err)
	campaign, err := reg.Type("Campaign")
	require.NoError(t, err)
	ad, err := reg.Type("Ad")
	require.NoError(t, err)

	s, err := account.Initial.Load(store.New(), []any{
		map[string]any{"id": int64(1), "name": "A"},
	})
	require.NoError(t, err)
	s, err = campaign.Initial.Load(s, []any{
		map[string]any{"id": int64(2), "name": "C", "account_id": int64(1)},
	})
	require.NoError(t, err)
	s, err = ad.Initial.Load(s, []any{
		map[string]any{"id": int64(3), "campaign_id": int64(2)},
	})
	require.NoError(t, err)

	s, err = account.Current.Delete(s, int64(1))
	require.NoError(t, err)

	s, err = account.Deleted.Accept(s, int64(1))
	require.NoError(t, err)

	assert.Empty(t, account.Current.GetAll(s))
	assert.Empty(t, account.Initial.GetAll(s))
	assert.Empty(t, account.Deleted.GetAll(s))
	assert.Empty(t, campaign.Current.GetAll(s))
	assert.Empty(t, campaign.Initial.GetAll(s))
	assert.Empty(t, campaign.Deleted.GetAll(s))
	assert.Empty(t, ad.Current.GetAll(s))
	assert.Empty(t, ad.Initial.GetAll(s))
	assert.Empty(t, ad.Deleted.GetAll(s))
}

func TestDeleteLeavesTombstoneVisibleInCurrent(t *testing.T) {
	reg := newAdRegistry()
	account, err := reg.Type("Account")
	require.NoError(t, err)

	s, err := account.Initial.Load(store.New(), []any{
		map[string]any{"id": int64(1), "name": "A"},
	})
	require.NoError(t, err)

	s, err = account.Current.Delete(s, int64(1))
	require.NoError(t, err)

	_, inCurrent := account.Current.Get(s, int64(1))
	assert.True(t, inCurrent, "tombstoned record should still show up in current")
	_, inDeleted := account.Deleted.Get(s, int64(1))
	assert.True(t, inDeleted)

	rec, _ := account.Current.Get(s, int64(1))
	state, err := account.State(s, rec)
	require.NoError(t, err)
	assert.Equal(t, store.StateDeleted, state)
}

func TestChildrenAndParents(t *testing.T) {
	reg := newAdRegistry()
	account, err := reg.Type("Account")
	require.NoError(t, err)
	campaign, err := reg.Type("Campaign")
	require.NoError(t, err)

	s, err := account.Initial.Load(store.New(), []any{
		map[string]any{"id": int64(1), "name": "A"},
	})
	require.NoError(t, err)
	s, err = campaign.Initial.Load(s, []any{
		map[string]any{"id": int64(2), "name": "C", "account_id": int64(1)},
	})
	require.NoError(t, err)

	acct, _ := account.Current.Get(s, int64(1))
	children, err := account.Children(s, "Campaign", acct)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "C", children[int64(2)]["name"])

	camp, _ := campaign.Current.Get(s, int64(2))
	parents, err := campaign.Parents(s, "Account", camp)
	require.NoError(t, err)
	require.Len(t, parents, 1)
	assert.Equal(t, "A", parents[int64(1)]["name"])
}
