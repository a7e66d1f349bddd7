package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"go.dohmane.dev/dohconfig"
	dohlog "go.dohmane.dev/log"
	"go.dohmane.dev/record"
	"go.dohmane.dev/registry"
	"go.dohmane.dev/store"
)

// reg and st hold the registry and the in-process store for the process
// lifetime. A real
// deployment would persist the four-field aggregate (initial, current,
// deleted, nextKey) elsewhere; this demo keeps it in memory only.
var (
	reg *registry.Registry
	st  *store.Store
)

func adRegistry(logger *slog.Logger) *registry.Registry {
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
	return registry.New(logger, account, campaign, ad)
}

func main() {
	cfg, err := dohconfig.Load(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := dohlog.NewAt("dohctl", dohlog.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	reg = adRegistry(logger)
	st = store.New().WithNextKey(cfg.StartKey)

	cmd := &cli.Command{
		Name:  "dohctl",
		Usage: "interactive demo for an in-memory, change-tracking record store",
		Commands: []*cli.Command{
			loadCommand(),
			createCommand(),
			setCommand(),
			acceptCommand(),
			deleteCommand(),
			showCommand(),
		},
	}

	ctx := dohlog.IntoContext(context.Background(), logger)
	if err := cmd.Run(ctx, os.Args); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func typeArg(c *cli.Command) (*registry.Facade, error) {
	name := c.Args().First()
	if name == "" {
		return nil, fmt.Errorf("usage: %s <Type> ...", c.Name)
	}
	return reg.Type(name)
}

func loadCommand() *cli.Command {
	return &cli.Command{
		Name:      "load",
		Usage:     "load a JSON array of records as the accepted baseline for a type",
		ArgsUsage: "<Type> <json-array>",
		Action: func(ctx context.Context, c *cli.Command) error {
			f, err := typeArg(c)
			if err != nil {
				return err
			}
			var raw []any
			if err := json.Unmarshal([]byte(c.Args().Get(1)), &raw); err != nil {
				return fmt.Errorf("decode records: %w", err)
			}
			next, err := f.Initial.Load(st, raw)
			if err != nil {
				return err
			}
			st = next
			fmt.Printf("loaded %d %s record(s)\n", len(raw), f.Name())
			return nil
		},
	}
}

func createCommand() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "create a new record in current, allocating a key if none is given",
		ArgsUsage: "<Type> <json-object>",
		Action: func(ctx context.Context, c *cli.Command) error {
			f, err := typeArg(c)
			if err != nil {
				return err
			}
			var seed map[string]any
			if err := json.Unmarshal([]byte(c.Args().Get(1)), &seed); err != nil {
				return fmt.Errorf("decode record: %w", err)
			}
			next, rec, pk := f.Current.Create(st, seed)
			st = next
			fmt.Printf("created %s[%v]: %v\n", f.Name(), pk, rec)
			return nil
		},
	}
}

func setCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "overwrite the current value of a record",
		ArgsUsage: "<Type> <key> <json-object>",
		Action: func(ctx context.Context, c *cli.Command) error {
			f, err := typeArg(c)
			if err != nil {
				return err
			}
			pk, err := parseKey(c.Args().Get(1))
			if err != nil {
				return err
			}
			var patch map[string]any
			if err := json.Unmarshal([]byte(c.Args().Get(2)), &patch); err != nil {
				return fmt.Errorf("decode record: %w", err)
			}
			st = f.Current.Set(st, pk, f.Raise(patch))
			fmt.Printf("set %s[%v]\n", f.Name(), pk)
			return nil
		},
	}
}

func acceptCommand() *cli.Command {
	return &cli.Command{
		Name:      "accept",
		Usage:     "accept the current value at key as the new baseline, or confirm a staged deletion with --delete",
		ArgsUsage: "<Type> <key> [json-object-with-final-key]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "delete"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			f, err := typeArg(c)
			if err != nil {
				return err
			}
			pk, err := parseKey(c.Args().Get(1))
			if err != nil {
				return err
			}
			if c.Bool("delete") {
				next, err := f.Deleted.Accept(st, pk)
				if err != nil {
					return err
				}
				st = next
				fmt.Printf("deletion of %s[%v] accepted\n", f.Name(), pk)
				return nil
			}

			final, ok := f.Current.Get(st, pk)
			if !ok {
				return fmt.Errorf("%s[%v]: no current value to accept", f.Name(), pk)
			}
			if raw := c.Args().Get(2); raw != "" {
				var patch map[string]any
				if err := json.Unmarshal([]byte(raw), &patch); err != nil {
					return fmt.Errorf("decode record: %w", err)
				}
				final = f.Raise(patch)
			}
			next, err := f.Current.Accept(st, pk, final)
			if err != nil {
				return err
			}
			st = next
			fmt.Printf("accepted %s[%v]\n", f.Name(), pk)
			return nil
		},
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "stage a record (and its cascaded children) for deletion",
		ArgsUsage: "<Type> <key>",
		Action: func(ctx context.Context, c *cli.Command) error {
			f, err := typeArg(c)
			if err != nil {
				return err
			}
			pk, err := parseKey(c.Args().Get(1))
			if err != nil {
				return err
			}
			next, err := f.Current.Delete(st, pk)
			if err != nil {
				return err
			}
			st = next
			fmt.Printf("staged delete of %s[%v]\n", f.Name(), pk)
			return nil
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "print every current record of a type (staged deletions included), with derived state",
		ArgsUsage: "<Type>",
		Action: func(ctx context.Context, c *cli.Command) error {
			f, err := typeArg(c)
			if err != nil {
				return err
			}
			for _, rec := range f.Current.GetAll(st) {
				state, err := f.State(st, rec)
				if err != nil {
					return err
				}
				fmt.Printf("%s %-10s %v\n", f.Name(), state, rec)
			}
			return nil
		},
	}
}

func parseKey(s string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("decode key: %w", err)
	}
	return record.NormalizeKey(v), nil
}
