package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/dgc-network/smart/internal/app"
	"github.com/dgc-network/smart/internal/core/state"
	"github.com/dgc-network/smart/pkg/types"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect the local state store",
}

var stateShowCmd = &cobra.Command{
	Use:   "show <kind> <key...>",
	Short: "Render one entity",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, keys, err := lookupKind(args)
		if err != nil {
			return err
		}
		return withApp(func(a *app.App) error {
			rows, err := entityRows(state.NewAccessor(a.Store), kind.name, keys)
			if err != nil {
				return err
			}
			if rows == nil {
				return fmt.Errorf("%s not found: %s", kind.name, strings.Join(keys, " "))
			}
			address, err := kind.address(keys)
			if err != nil {
				return err
			}
			pterm.DefaultSection.Println(kind.name)
			rows = append([][]string{{"state address", address}}, rows...)
			return pterm.DefaultTable.WithHasHeader(false).WithBoxed(true).WithData(rows).Render()
		})
	},
}

// entityRows loads the entity and flattens it into field/value rows. A
// missing entity yields nil rows.
func entityRows(s *state.Accessor, kind string, keys []string) ([][]string, error) {
	switch kind {
	case "contract":
		c, err := s.GetContract(keys[0], keys[1])
		if err != nil || c == nil {
			return nil, err
		}
		return [][]string{
			{"name", c.Name},
			{"version", c.Version},
			{"inputs", join(c.Inputs)},
			{"outputs", join(c.Outputs)},
			{"creator", c.Creator},
			{"size", fmt.Sprintf("%d bytes", len(c.Contract))},
		}, nil
	case "contract-registry":
		r, err := s.GetContractRegistry(keys[0])
		if err != nil || r == nil {
			return nil, err
		}
		rows := [][]string{{"name", r.Name}, {"owners", join(r.Owners)}}
		for _, v := range r.Versions {
			rows = append(rows, []string{"version " + v.Version, v.Creator + " " + short(v.ContractSha512)})
		}
		return rows, nil
	case "namespace-registry":
		r, err := s.GetNamespaceRegistry(keys[0])
		if err != nil || r == nil {
			return nil, err
		}
		rows := [][]string{{"namespace", r.Namespace}, {"owners", join(r.Owners)}}
		for _, p := range r.Permissions {
			rows = append(rows, []string{"permission " + p.ContractName, fmt.Sprintf("read=%t write=%t", p.Read, p.Write)})
		}
		return rows, nil
	case "smart-permission":
		p, err := s.GetSmartPermission(keys[0], keys[1])
		if err != nil || p == nil {
			return nil, err
		}
		return [][]string{
			{"name", p.Name},
			{"org_id", p.OrgID},
			{"size", fmt.Sprintf("%d bytes", len(p.Function))},
		}, nil
	case "account":
		acct, err := s.GetAccount(keys[0])
		if err != nil || acct == nil {
			return nil, err
		}
		rows := [][]string{
			{"public_key", acct.PublicKey},
			{"org_id", acct.OrgID},
			{"active", fmt.Sprintf("%t", acct.Active)},
			{"roles", join(acct.Roles)},
		}
		return append(rows, metadataRows(acct.Metadata)...), nil
	case "organization":
		org, err := s.GetOrganization(keys[0])
		if err != nil || org == nil {
			return nil, err
		}
		rows := [][]string{
			{"org_id", org.OrgID},
			{"name", org.Name},
			{"address", org.Address},
		}
		return append(rows, metadataRows(org.Metadata)...), nil
	case "administrators":
		admins, ok, err := s.Administrators()
		if err != nil || !ok {
			return nil, err
		}
		return [][]string{{"administrators", join(admins)}}, nil
	}
	return nil, fmt.Errorf("unknown kind %q", kind)
}

func metadataRows(entries []types.KeyValueEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{"metadata " + e.Key, e.Value})
	}
	return rows
}

func join(list []string) string {
	return strings.Join(list, ", ")
}

// short abbreviates a hex digest for display.
func short(digest string) string {
	if len(digest) <= 16 {
		return digest
	}
	if _, err := hex.DecodeString(digest); err != nil {
		return digest
	}
	return digest[:16] + "…"
}

func init() {
	stateCmd.AddCommand(stateShowCmd)
}
