// Package state reads and writes registry entities through a transaction
// context.
//
// Every entity is stored in a list at its address so that keys whose
// truncated hashes collide can share the slot. Lists are kept sorted by the
// entity's logical key, which makes the encoded bytes independent of write
// order.
package state

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dgc-network/smart/internal/core/addressing"
	statectx "github.com/dgc-network/smart/pkg/interfaces/state"
	"github.com/dgc-network/smart/pkg/protocol"
	"github.com/dgc-network/smart/pkg/types"
)

// Accessor is bound to one transaction context.
type Accessor struct {
	context statectx.TransactionContext
}

func NewAccessor(context statectx.TransactionContext) *Accessor {
	return &Accessor{context: context}
}

// Context returns the transaction context the accessor is bound to.
func (a *Accessor) Context() statectx.TransactionContext {
	return a.context
}

func (a *Accessor) read(address string) ([]byte, error) {
	values, err := a.context.GetState([]string{address})
	if err != nil {
		return nil, types.WrapInternalError(fmt.Errorf("%w: %v", ErrStateAccess, err), "Unable to get state at %s", address)
	}
	return values[address], nil
}

func (a *Accessor) write(address string, data []byte) error {
	if _, err := a.context.SetState(map[string][]byte{address: data}); err != nil {
		return types.WrapInternalError(fmt.Errorf("%w: %v", ErrStateAccess, err), "Unable to set state at %s", address)
	}
	return nil
}

// remove deletes the whole address, including any colliding entries stored
// alongside the one being deleted.
func (a *Accessor) remove(address string, what string) error {
	deleted, err := a.context.DeleteState([]string{address})
	if err != nil {
		return types.WrapInternalError(fmt.Errorf("%w: %v", ErrStateAccess, err), "Cannot delete %s", what)
	}
	if len(deleted) != 1 || deleted[0] != address {
		return types.NewInternalError("Cannot delete %s", what)
	}
	return nil
}

// codec binds the list encoding of one entity kind.
type codec[T any] struct {
	name   string
	decode func([]byte) ([]T, error)
	encode func([]T) []byte
	less   func(a, b *T) bool
}

func (c codec[T]) load(a *Accessor, address string) ([]T, error) {
	data, err := a.read(address)
	if err != nil || data == nil {
		return nil, err
	}
	list, err := c.decode(data)
	if err != nil {
		return nil, types.WrapInternalError(fmt.Errorf("%w: %v", ErrStateCorrupt, err), "Unable to deserialize %s", c.name)
	}
	return list, nil
}

func (c codec[T]) get(a *Accessor, address string, match func(*T) bool) (*T, error) {
	list, err := c.load(a, address)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if match(&list[i]) {
			return &list[i], nil
		}
	}
	return nil, nil
}

func (c codec[T]) set(a *Accessor, address string, match func(*T) bool, entry T) error {
	list, err := c.load(a, address)
	if err != nil {
		return err
	}
	kept := list[:0]
	for i := range list {
		if !match(&list[i]) {
			kept = append(kept, list[i])
		}
	}
	kept = append(kept, entry)
	sort.SliceStable(kept, func(i, j int) bool { return c.less(&kept[i], &kept[j]) })
	return a.write(address, c.encode(kept))
}

var (
	contractCodec = codec[types.Contract]{
		name: "contract list", decode: protocol.DecodeContracts, encode: protocol.EncodeContracts,
		less: func(a, b *types.Contract) bool {
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.Version < b.Version
		},
	}
	contractRegistryCodec = codec[types.ContractRegistry]{
		name: "contract registry list", decode: protocol.DecodeContractRegistries, encode: protocol.EncodeContractRegistries,
		less: func(a, b *types.ContractRegistry) bool { return a.Name < b.Name },
	}
	namespaceRegistryCodec = codec[types.NamespaceRegistry]{
		name: "namespace registry list", decode: protocol.DecodeNamespaceRegistries, encode: protocol.EncodeNamespaceRegistries,
		less: func(a, b *types.NamespaceRegistry) bool { return a.Namespace < b.Namespace },
	}
	smartPermissionCodec = codec[types.SmartPermission]{
		name: "smart permission list", decode: protocol.DecodeSmartPermissions, encode: protocol.EncodeSmartPermissions,
		less: func(a, b *types.SmartPermission) bool {
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.OrgID < b.OrgID
		},
	}
	accountCodec = codec[types.Account]{
		name: "account list", decode: protocol.DecodeAccounts, encode: protocol.EncodeAccounts,
		less: func(a, b *types.Account) bool { return a.PublicKey < b.PublicKey },
	}
	organizationCodec = codec[types.Organization]{
		name: "organization list", decode: protocol.DecodeOrganizations, encode: protocol.EncodeOrganizations,
		less: func(a, b *types.Organization) bool { return a.OrgID < b.OrgID },
	}
)

// ---------------------------------------------------------------------------
// Contracts
// ---------------------------------------------------------------------------

func (a *Accessor) GetContract(name, version string) (*types.Contract, error) {
	return contractCodec.get(a, addressing.ComputeContractAddress(name, version), func(c *types.Contract) bool {
		return c.Name == name && c.Version == version
	})
}

func (a *Accessor) SetContract(name, version string, contract types.Contract) error {
	return contractCodec.set(a, addressing.ComputeContractAddress(name, version), func(c *types.Contract) bool {
		return c.Name == name && c.Version == version
	}, contract)
}

func (a *Accessor) DeleteContract(name, version string) error {
	return a.remove(addressing.ComputeContractAddress(name, version), "contract")
}

func (a *Accessor) GetContractRegistry(name string) (*types.ContractRegistry, error) {
	return contractRegistryCodec.get(a, addressing.ComputeContractRegistryAddress(name), func(r *types.ContractRegistry) bool {
		return r.Name == name
	})
}

func (a *Accessor) SetContractRegistry(name string, registry types.ContractRegistry) error {
	return contractRegistryCodec.set(a, addressing.ComputeContractRegistryAddress(name), func(r *types.ContractRegistry) bool {
		return r.Name == name
	}, registry)
}

func (a *Accessor) DeleteContractRegistry(name string) error {
	return a.remove(addressing.ComputeContractRegistryAddress(name), "contract registry")
}

// ---------------------------------------------------------------------------
// Namespaces
// ---------------------------------------------------------------------------

func namespaceAddress(namespace string) (string, error) {
	address, err := addressing.ComputeNamespaceRegistryAddress(namespace)
	if err != nil {
		return "", types.WrapInvalidTransaction(err, "Namespace must be at least 6 characters long: %s", namespace)
	}
	return address, nil
}

func (a *Accessor) GetNamespaceRegistry(namespace string) (*types.NamespaceRegistry, error) {
	address, err := namespaceAddress(namespace)
	if err != nil {
		return nil, err
	}
	return namespaceRegistryCodec.get(a, address, func(r *types.NamespaceRegistry) bool {
		return r.Namespace == namespace
	})
}

// GetNamespaceRegistries returns every registry stored at the address of
// namespace, i.e. all registries sharing its first six characters.
func (a *Accessor) GetNamespaceRegistries(namespace string) ([]types.NamespaceRegistry, error) {
	address, err := namespaceAddress(namespace)
	if err != nil {
		return nil, err
	}
	return namespaceRegistryCodec.load(a, address)
}

func (a *Accessor) SetNamespaceRegistry(namespace string, registry types.NamespaceRegistry) error {
	address, err := namespaceAddress(namespace)
	if err != nil {
		return err
	}
	return namespaceRegistryCodec.set(a, address, func(r *types.NamespaceRegistry) bool {
		return r.Namespace == namespace
	}, registry)
}

func (a *Accessor) DeleteNamespaceRegistry(namespace string) error {
	address, err := namespaceAddress(namespace)
	if err != nil {
		return err
	}
	return a.remove(address, "namespace registry")
}

// ---------------------------------------------------------------------------
// Smart permissions
// ---------------------------------------------------------------------------

func (a *Accessor) GetSmartPermission(orgID, name string) (*types.SmartPermission, error) {
	return smartPermissionCodec.get(a, addressing.ComputeSmartPermissionAddress(orgID, name), func(p *types.SmartPermission) bool {
		return p.Name == name && p.OrgID == orgID
	})
}

func (a *Accessor) SetSmartPermission(orgID, name string, permission types.SmartPermission) error {
	return smartPermissionCodec.set(a, addressing.ComputeSmartPermissionAddress(orgID, name), func(p *types.SmartPermission) bool {
		return p.Name == name && p.OrgID == orgID
	}, permission)
}

func (a *Accessor) DeleteSmartPermission(orgID, name string) error {
	return a.remove(addressing.ComputeSmartPermissionAddress(orgID, name), "smart permission")
}

// GetSmartPermissionAt looks a smart permission up by name in the list stored
// at address. Contracts name the address directly when they invoke one.
func (a *Accessor) GetSmartPermissionAt(address, name string) (*types.SmartPermission, error) {
	return smartPermissionCodec.get(a, address, func(p *types.SmartPermission) bool {
		return p.Name == name
	})
}

// ---------------------------------------------------------------------------
// Accounts and organizations
// ---------------------------------------------------------------------------

func (a *Accessor) GetAccount(publicKey string) (*types.Account, error) {
	return accountCodec.get(a, addressing.ComputeAccountAddress(publicKey), func(acct *types.Account) bool {
		return acct.PublicKey == publicKey
	})
}

func (a *Accessor) SetAccount(publicKey string, account types.Account) error {
	return accountCodec.set(a, addressing.ComputeAccountAddress(publicKey), func(acct *types.Account) bool {
		return acct.PublicKey == publicKey
	}, account)
}

func (a *Accessor) GetOrganization(orgID string) (*types.Organization, error) {
	return organizationCodec.get(a, addressing.ComputeOrganizationAddress(orgID), func(o *types.Organization) bool {
		return o.OrgID == orgID
	})
}

func (a *Accessor) SetOrganization(orgID string, organization types.Organization) error {
	return organizationCodec.set(a, addressing.ComputeOrganizationAddress(orgID), func(o *types.Organization) bool {
		return o.OrgID == orgID
	}, organization)
}

// ---------------------------------------------------------------------------
// Administrators setting
// ---------------------------------------------------------------------------

// GetAdminSetting returns the settings blob at the administrators address, or
// nil when it has never been written.
func (a *Accessor) GetAdminSetting() (*types.Setting, error) {
	data, err := a.read(addressing.AdministratorsSettingAddress)
	if err != nil || data == nil {
		return nil, err
	}
	setting, err := protocol.DecodeSetting(data)
	if err != nil {
		return nil, types.WrapInternalError(fmt.Errorf("%w: %v", ErrStateCorrupt, err), "Unable to deserialize setting")
	}
	return setting, nil
}

// SetAdministrators writes the administrators entry, keeping other entries of
// the setting.
func (a *Accessor) SetAdministrators(keys []string) error {
	setting, err := a.GetAdminSetting()
	if err != nil {
		return err
	}
	if setting == nil {
		setting = &types.Setting{}
	}
	value := strings.Join(keys, ",")
	replaced := false
	for i := range setting.Entries {
		if setting.Entries[i].Key == addressing.AdministratorsSettingKey {
			setting.Entries[i].Value = value
			replaced = true
		}
	}
	if !replaced {
		setting.Entries = append(setting.Entries, types.SettingEntry{Key: addressing.AdministratorsSettingKey, Value: value})
	}
	return a.write(addressing.AdministratorsSettingAddress, protocol.EncodeSetting(setting))
}

// Administrators returns the comma separated administrator keys. ok is false
// when the setting or its administrators entry is missing.
func (a *Accessor) Administrators() (keys []string, ok bool, err error) {
	setting, err := a.GetAdminSetting()
	if err != nil || setting == nil {
		return nil, false, err
	}
	value, ok := setting.Get(addressing.AdministratorsSettingKey)
	if !ok {
		return nil, false, nil
	}
	for _, key := range strings.Split(value, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys, true, nil
}
