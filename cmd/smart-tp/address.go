package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/dgc-network/smart/internal/core/addressing"
)

// entityKind names an addressable entity and the keys that identify it.
type entityKind struct {
	name    string
	keys    []string
	address func(keys []string) (string, error)
}

var entityKinds = []entityKind{
	{"contract", []string{"name", "version"}, func(k []string) (string, error) {
		return addressing.ComputeContractAddress(k[0], k[1]), nil
	}},
	{"contract-registry", []string{"name"}, func(k []string) (string, error) {
		return addressing.ComputeContractRegistryAddress(k[0]), nil
	}},
	{"namespace-registry", []string{"namespace"}, func(k []string) (string, error) {
		return addressing.ComputeNamespaceRegistryAddress(k[0])
	}},
	{"smart-permission", []string{"org_id", "name"}, func(k []string) (string, error) {
		return addressing.ComputeSmartPermissionAddress(k[0], k[1]), nil
	}},
	{"account", []string{"public_key"}, func(k []string) (string, error) {
		return addressing.ComputeAccountAddress(k[0]), nil
	}},
	{"organization", []string{"org_id"}, func(k []string) (string, error) {
		return addressing.ComputeOrganizationAddress(k[0]), nil
	}},
	{"administrators", nil, func([]string) (string, error) {
		return addressing.AdministratorsSettingAddress, nil
	}},
}

func kindNames() string {
	names := make([]string, len(entityKinds))
	for i, kind := range entityKinds {
		names[i] = kind.name
	}
	return strings.Join(names, ", ")
}

// lookupKind resolves args[0] and checks the key count.
func lookupKind(args []string) (*entityKind, []string, error) {
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("missing kind, one of: %s", kindNames())
	}
	for i := range entityKinds {
		kind := &entityKinds[i]
		if kind.name != args[0] {
			continue
		}
		keys := args[1:]
		if len(keys) != len(kind.keys) {
			return nil, nil, fmt.Errorf("%s takes %d key(s): %s", kind.name, len(kind.keys), strings.Join(kind.keys, " "))
		}
		return kind, keys, nil
	}
	return nil, nil, fmt.Errorf("unknown kind %q, one of: %s", args[0], kindNames())
}

var addressCmd = &cobra.Command{
	Use:   "address <kind> <key...>",
	Short: "Print the state address of an entity",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, keys, err := lookupKind(args)
		if err != nil {
			return err
		}
		address, err := kind.address(keys)
		if err != nil {
			return err
		}
		pterm.Println(address)
		return nil
	},
}
