package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/dgc-network/smart/internal/app"
	"github.com/dgc-network/smart/internal/core/state"
	"github.com/dgc-network/smart/pkg/types"
)

var (
	genesisOrgID    string
	genesisKey      string
	genesisRoles    []string
	genesisInactive bool
	genesisName     string
	genesisAddress  string
	genesisMetadata []string
)

var genesisCmd = &cobra.Command{
	Use:   "genesis",
	Short: "Seed bootstrap state without going through the handler",
	Long: `Genesis writes entities directly. The first administrator, organization
and admin account have to exist before any transaction can create more.`,
}

var genesisAdministratorsCmd = &cobra.Command{
	Use:   "administrators <public-key...>",
	Short: "Set the administrators setting",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			if err := updateState(a.Store, func(s *state.Accessor) error {
				return s.SetAdministrators(args)
			}); err != nil {
				return err
			}
			pterm.Success.Printfln("administrators set: %s", strings.Join(args, ", "))
			return nil
		})
	},
}

var genesisOrganizationCmd = &cobra.Command{
	Use:   "organization",
	Short: "Create or replace an organization",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		metadata, err := parseMetadata(genesisMetadata)
		if err != nil {
			return err
		}
		organization := types.Organization{
			OrgID:    genesisOrgID,
			Name:     genesisName,
			Address:  genesisAddress,
			Metadata: metadata,
		}
		return withApp(func(a *app.App) error {
			if err := updateState(a.Store, func(s *state.Accessor) error {
				return s.SetOrganization(organization.OrgID, organization)
			}); err != nil {
				return err
			}
			pterm.Success.Printfln("organization %s written", organization.OrgID)
			return nil
		})
	},
}

var genesisAccountCmd = &cobra.Command{
	Use:   "account",
	Short: "Create or replace an account of an existing organization",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		metadata, err := parseMetadata(genesisMetadata)
		if err != nil {
			return err
		}
		account := types.Account{
			OrgID:     genesisOrgID,
			PublicKey: genesisKey,
			Active:    !genesisInactive,
			Roles:     genesisRoles,
			Metadata:  metadata,
		}
		return withApp(func(a *app.App) error {
			if err := updateState(a.Store, func(s *state.Accessor) error {
				organization, err := s.GetOrganization(account.OrgID)
				if err != nil {
					return err
				}
				if organization == nil {
					return fmt.Errorf("organization does not exist: %s", account.OrgID)
				}
				return s.SetAccount(account.PublicKey, account)
			}); err != nil {
				return err
			}
			pterm.Success.Printfln("account %s written", account.PublicKey)
			return nil
		})
	},
}

// parseMetadata turns key=value flags into entries, keeping flag order.
func parseMetadata(pairs []string) ([]types.KeyValueEntry, error) {
	var entries []types.KeyValueEntry
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("metadata must be key=value: %q", pair)
		}
		entries = append(entries, types.KeyValueEntry{Key: key, Value: value})
	}
	return entries, nil
}

func init() {
	genesisOrganizationCmd.Flags().StringVar(&genesisOrgID, "id", "", "organization id")
	genesisOrganizationCmd.Flags().StringVar(&genesisName, "name", "", "organization name")
	genesisOrganizationCmd.Flags().StringVar(&genesisAddress, "address", "", "organization address")
	genesisOrganizationCmd.Flags().StringArrayVar(&genesisMetadata, "meta", nil, "metadata key=value, repeatable")
	_ = genesisOrganizationCmd.MarkFlagRequired("id")
	_ = genesisOrganizationCmd.MarkFlagRequired("name")

	genesisAccountCmd.Flags().StringVar(&genesisOrgID, "org", "", "organization id")
	genesisAccountCmd.Flags().StringVar(&genesisKey, "key", "", "account public key")
	genesisAccountCmd.Flags().StringSliceVar(&genesisRoles, "role", nil, "role, repeatable")
	genesisAccountCmd.Flags().BoolVar(&genesisInactive, "inactive", false, "create the account inactive")
	genesisAccountCmd.Flags().StringArrayVar(&genesisMetadata, "meta", nil, "metadata key=value, repeatable")
	_ = genesisAccountCmd.MarkFlagRequired("org")
	_ = genesisAccountCmd.MarkFlagRequired("key")

	genesisCmd.AddCommand(genesisAdministratorsCmd)
	genesisCmd.AddCommand(genesisOrganizationCmd)
	genesisCmd.AddCommand(genesisAccountCmd)
}
