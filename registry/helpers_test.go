package registry_test

import (
	"go.dohmane.dev/registry"
)

// newAdRegistry builds the Account/Campaign/Ad registry used throughout
// the spec's end-to-end scenarios: Account (key: id, inverse-FK to
// Campaign via account_id), Campaign (key: id, FK to Account via
// account_id, inverse-FK to Ad via campaign_id), Ad (key: id, FK to
// Campaign via campaign_id).
func newAdRegistry() *registry.Registry {
	account := registry.NewTypedef("Account", []string{"id"},
		nil,
		[]registry.FKSpec{{RelatedType: "Campaign", Path: []string{"account_id"}}},
	)
	campaign := registry.NewTypedef("Campaign", []string{"id"},
		[]registry.FKSpec{{RelatedType: "Account", Path: []string{"account_id"}}},
		[]registry.FKSpec{{RelatedType: "Ad", Path: []string{"campaign_id"}}},
	)
	ad := registry.NewTypedef("Ad", []string{"id"},
		[]registry.FKSpec{{RelatedType: "Campaign", Path: []string{"campaign_id"}}},
		nil,
	)
	return registry.New(nil, account, campaign, ad)
}
