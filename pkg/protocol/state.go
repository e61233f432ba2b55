package protocol

import (
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/dgc-network/smart/pkg/types"
)

// ---------------------------------------------------------------------------
// Contract
// ---------------------------------------------------------------------------

func encodeContract(c *types.Contract) []byte {
	var b []byte
	b = appendString(b, 1, c.Name)
	b = appendString(b, 2, c.Version)
	b = appendStrings(b, 3, c.Inputs)
	b = appendStrings(b, 4, c.Outputs)
	b = appendString(b, 5, c.Creator)
	b = appendBytes(b, 6, c.Contract)
	return b
}

func decodeContract(b []byte) (types.Contract, error) {
	var c types.Contract
	err := decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeString(num, typ, b)
			c.Name = v
			return n, err
		case 2:
			v, n, err := consumeString(num, typ, b)
			c.Version = v
			return n, err
		case 3:
			v, n, err := consumeString(num, typ, b)
			c.Inputs = append(c.Inputs, v)
			return n, err
		case 4:
			v, n, err := consumeString(num, typ, b)
			c.Outputs = append(c.Outputs, v)
			return n, err
		case 5:
			v, n, err := consumeString(num, typ, b)
			c.Creator = v
			return n, err
		case 6:
			v, n, err := consumeBytes(num, typ, b)
			c.Contract = v
			return n, err
		}
		return -1, nil
	})
	return c, err
}

// EncodeContracts encodes a ContractList.
func EncodeContracts(list []types.Contract) []byte {
	var b []byte
	for i := range list {
		b = appendMessage(b, 1, encodeContract(&list[i]))
	}
	return b
}

func DecodeContracts(b []byte) ([]types.Contract, error) {
	var list []types.Contract
	err := decodeList(b, func(item []byte) error {
		c, err := decodeContract(item)
		list = append(list, c)
		return err
	})
	if err != nil {
		return nil, wrapMalformed("ContractList", err)
	}
	return list, nil
}

// ---------------------------------------------------------------------------
// ContractRegistry
// ---------------------------------------------------------------------------

func encodeContractVersion(v *types.ContractVersion) []byte {
	var b []byte
	b = appendString(b, 1, v.Version)
	b = appendString(b, 2, v.ContractSha512)
	b = appendString(b, 3, v.Creator)
	return b
}

func decodeContractVersion(b []byte) (types.ContractVersion, error) {
	var v types.ContractVersion
	err := decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			s, n, err := consumeString(num, typ, b)
			v.Version = s
			return n, err
		case 2:
			s, n, err := consumeString(num, typ, b)
			v.ContractSha512 = s
			return n, err
		case 3:
			s, n, err := consumeString(num, typ, b)
			v.Creator = s
			return n, err
		}
		return -1, nil
	})
	return v, err
}

func encodeContractRegistry(r *types.ContractRegistry) []byte {
	var b []byte
	b = appendString(b, 1, r.Name)
	for i := range r.Versions {
		b = appendMessage(b, 2, encodeContractVersion(&r.Versions[i]))
	}
	b = appendStrings(b, 3, r.Owners)
	return b
}

func decodeContractRegistry(b []byte) (types.ContractRegistry, error) {
	var r types.ContractRegistry
	err := decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeString(num, typ, b)
			r.Name = v
			return n, err
		case 2:
			v, n, err := consumeBytes(num, typ, b)
			if err != nil {
				return 0, err
			}
			version, err := decodeContractVersion(v)
			r.Versions = append(r.Versions, version)
			return n, err
		case 3:
			v, n, err := consumeString(num, typ, b)
			r.Owners = append(r.Owners, v)
			return n, err
		}
		return -1, nil
	})
	return r, err
}

func EncodeContractRegistries(list []types.ContractRegistry) []byte {
	var b []byte
	for i := range list {
		b = appendMessage(b, 1, encodeContractRegistry(&list[i]))
	}
	return b
}

func DecodeContractRegistries(b []byte) ([]types.ContractRegistry, error) {
	var list []types.ContractRegistry
	err := decodeList(b, func(item []byte) error {
		r, err := decodeContractRegistry(item)
		list = append(list, r)
		return err
	})
	if err != nil {
		return nil, wrapMalformed("ContractRegistryList", err)
	}
	return list, nil
}

// ---------------------------------------------------------------------------
// NamespaceRegistry
// ---------------------------------------------------------------------------

func encodeNamespacePermission(p *types.NamespacePermission) []byte {
	var b []byte
	b = appendString(b, 1, p.ContractName)
	b = appendBool(b, 2, p.Read)
	b = appendBool(b, 3, p.Write)
	return b
}

func decodeNamespacePermission(b []byte) (types.NamespacePermission, error) {
	var p types.NamespacePermission
	err := decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeString(num, typ, b)
			p.ContractName = v
			return n, err
		case 2:
			v, n, err := consumeBool(num, typ, b)
			p.Read = v
			return n, err
		case 3:
			v, n, err := consumeBool(num, typ, b)
			p.Write = v
			return n, err
		}
		return -1, nil
	})
	return p, err
}

func encodeNamespaceRegistry(r *types.NamespaceRegistry) []byte {
	var b []byte
	b = appendString(b, 1, r.Namespace)
	b = appendStrings(b, 2, r.Owners)
	for i := range r.Permissions {
		b = appendMessage(b, 3, encodeNamespacePermission(&r.Permissions[i]))
	}
	return b
}

func decodeNamespaceRegistry(b []byte) (types.NamespaceRegistry, error) {
	var r types.NamespaceRegistry
	err := decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeString(num, typ, b)
			r.Namespace = v
			return n, err
		case 2:
			v, n, err := consumeString(num, typ, b)
			r.Owners = append(r.Owners, v)
			return n, err
		case 3:
			v, n, err := consumeBytes(num, typ, b)
			if err != nil {
				return 0, err
			}
			p, err := decodeNamespacePermission(v)
			r.Permissions = append(r.Permissions, p)
			return n, err
		}
		return -1, nil
	})
	return r, err
}

func EncodeNamespaceRegistries(list []types.NamespaceRegistry) []byte {
	var b []byte
	for i := range list {
		b = appendMessage(b, 1, encodeNamespaceRegistry(&list[i]))
	}
	return b
}

func DecodeNamespaceRegistries(b []byte) ([]types.NamespaceRegistry, error) {
	var list []types.NamespaceRegistry
	err := decodeList(b, func(item []byte) error {
		r, err := decodeNamespaceRegistry(item)
		list = append(list, r)
		return err
	})
	if err != nil {
		return nil, wrapMalformed("NamespaceRegistryList", err)
	}
	return list, nil
}

// ---------------------------------------------------------------------------
// SmartPermission
// ---------------------------------------------------------------------------

func encodeSmartPermission(p *types.SmartPermission) []byte {
	var b []byte
	b = appendString(b, 1, p.Name)
	b = appendString(b, 2, p.OrgID)
	b = appendBytes(b, 3, p.Function)
	return b
}

func decodeSmartPermission(b []byte) (types.SmartPermission, error) {
	var p types.SmartPermission
	err := decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeString(num, typ, b)
			p.Name = v
			return n, err
		case 2:
			v, n, err := consumeString(num, typ, b)
			p.OrgID = v
			return n, err
		case 3:
			v, n, err := consumeBytes(num, typ, b)
			p.Function = v
			return n, err
		}
		return -1, nil
	})
	return p, err
}

func EncodeSmartPermissions(list []types.SmartPermission) []byte {
	var b []byte
	for i := range list {
		b = appendMessage(b, 1, encodeSmartPermission(&list[i]))
	}
	return b
}

func DecodeSmartPermissions(b []byte) ([]types.SmartPermission, error) {
	var list []types.SmartPermission
	err := decodeList(b, func(item []byte) error {
		p, err := decodeSmartPermission(item)
		list = append(list, p)
		return err
	})
	if err != nil {
		return nil, wrapMalformed("SmartPermissionList", err)
	}
	return list, nil
}

// ---------------------------------------------------------------------------
// Account / Organization
// ---------------------------------------------------------------------------

func encodeKeyValue(e *types.KeyValueEntry) []byte {
	var b []byte
	b = appendString(b, 1, e.Key)
	b = appendString(b, 2, e.Value)
	return b
}

func decodeKeyValue(b []byte) (types.KeyValueEntry, error) {
	var e types.KeyValueEntry
	err := decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeString(num, typ, b)
			e.Key = v
			return n, err
		case 2:
			v, n, err := consumeString(num, typ, b)
			e.Value = v
			return n, err
		}
		return -1, nil
	})
	return e, err
}

func appendKeyValues(b []byte, num protowire.Number, entries []types.KeyValueEntry) []byte {
	for i := range entries {
		b = appendMessage(b, num, encodeKeyValue(&entries[i]))
	}
	return b
}

func consumeKeyValue(num protowire.Number, typ protowire.Type, b []byte, into *[]types.KeyValueEntry) (int, error) {
	v, n, err := consumeBytes(num, typ, b)
	if err != nil {
		return 0, err
	}
	e, err := decodeKeyValue(v)
	*into = append(*into, e)
	return n, err
}

func encodeAccount(a *types.Account) []byte {
	var b []byte
	b = appendString(b, 1, a.OrgID)
	b = appendString(b, 2, a.PublicKey)
	b = appendBool(b, 3, a.Active)
	b = appendStrings(b, 4, a.Roles)
	b = appendKeyValues(b, 5, a.Metadata)
	return b
}

func decodeAccount(b []byte) (types.Account, error) {
	var a types.Account
	err := decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeString(num, typ, b)
			a.OrgID = v
			return n, err
		case 2:
			v, n, err := consumeString(num, typ, b)
			a.PublicKey = v
			return n, err
		case 3:
			v, n, err := consumeBool(num, typ, b)
			a.Active = v
			return n, err
		case 4:
			v, n, err := consumeString(num, typ, b)
			a.Roles = append(a.Roles, v)
			return n, err
		case 5:
			return consumeKeyValue(num, typ, b, &a.Metadata)
		}
		return -1, nil
	})
	return a, err
}

func EncodeAccounts(list []types.Account) []byte {
	var b []byte
	for i := range list {
		b = appendMessage(b, 1, encodeAccount(&list[i]))
	}
	return b
}

func DecodeAccounts(b []byte) ([]types.Account, error) {
	var list []types.Account
	err := decodeList(b, func(item []byte) error {
		a, err := decodeAccount(item)
		list = append(list, a)
		return err
	})
	if err != nil {
		return nil, wrapMalformed("AccountList", err)
	}
	return list, nil
}

func encodeOrganization(o *types.Organization) []byte {
	var b []byte
	b = appendString(b, 1, o.OrgID)
	b = appendString(b, 2, o.Name)
	b = appendString(b, 3, o.Address)
	b = appendKeyValues(b, 4, o.Metadata)
	return b
}

func decodeOrganization(b []byte) (types.Organization, error) {
	var o types.Organization
	err := decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeString(num, typ, b)
			o.OrgID = v
			return n, err
		case 2:
			v, n, err := consumeString(num, typ, b)
			o.Name = v
			return n, err
		case 3:
			v, n, err := consumeString(num, typ, b)
			o.Address = v
			return n, err
		case 4:
			return consumeKeyValue(num, typ, b, &o.Metadata)
		}
		return -1, nil
	})
	return o, err
}

func EncodeOrganizations(list []types.Organization) []byte {
	var b []byte
	for i := range list {
		b = appendMessage(b, 1, encodeOrganization(&list[i]))
	}
	return b
}

func DecodeOrganizations(b []byte) ([]types.Organization, error) {
	var list []types.Organization
	err := decodeList(b, func(item []byte) error {
		o, err := decodeOrganization(item)
		list = append(list, o)
		return err
	})
	if err != nil {
		return nil, wrapMalformed("OrganizationList", err)
	}
	return list, nil
}

// ---------------------------------------------------------------------------
// Setting
// ---------------------------------------------------------------------------

func EncodeSetting(s *types.Setting) []byte {
	var b []byte
	for i := range s.Entries {
		var entry []byte
		entry = appendString(entry, 1, s.Entries[i].Key)
		entry = appendString(entry, 2, s.Entries[i].Value)
		b = appendMessage(b, 1, entry)
	}
	return b
}

func DecodeSetting(b []byte) (*types.Setting, error) {
	setting := &types.Setting{}
	err := decodeList(b, func(item []byte) error {
		kv, err := decodeKeyValue(item)
		setting.Entries = append(setting.Entries, types.SettingEntry{Key: kv.Key, Value: kv.Value})
		return err
	})
	if err != nil {
		return nil, wrapMalformed("Setting", err)
	}
	return setting, nil
}
