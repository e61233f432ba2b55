package types

// Contract is an uploaded WASM contract, identified by (Name, Version).
type Contract struct {
	Name     string
	Version  string
	Inputs   []string
	Outputs  []string
	Creator  string
	Contract []byte
}

// ContractVersion is one entry of a ContractRegistry.
type ContractVersion struct {
	Version        string
	ContractSha512 string
	Creator        string
}

// ContractRegistry records every deployed version of a contract name and who
// may add or remove versions.
type ContractRegistry struct {
	Name     string
	Versions []ContractVersion
	Owners   []string
}

func (r *ContractRegistry) HasOwner(signer string) bool {
	return contains(r.Owners, signer)
}

// NamespacePermission grants one contract read and/or write access.
type NamespacePermission struct {
	ContractName string
	Read         bool
	Write        bool
}

// NamespaceRegistry owns an address prefix and the per-contract permissions
// on it.
type NamespaceRegistry struct {
	Namespace   string
	Owners      []string
	Permissions []NamespacePermission
}

func (r *NamespaceRegistry) HasOwner(signer string) bool {
	return contains(r.Owners, signer)
}

// Permission returns the entry for contractName, or nil.
func (r *NamespaceRegistry) Permission(contractName string) *NamespacePermission {
	for i := range r.Permissions {
		if r.Permissions[i].ContractName == contractName {
			return &r.Permissions[i]
		}
	}
	return nil
}

// SmartPermission is a WASM predicate stored per organization.
type SmartPermission struct {
	Name     string
	OrgID    string
	Function []byte
}

type KeyValueEntry struct {
	Key   string
	Value string
}

// Account is an agent identity bound to one organization.
type Account struct {
	OrgID     string
	PublicKey string
	Active    bool
	Roles     []string
	Metadata  []KeyValueEntry
}

func (a *Account) HasRole(role string) bool {
	return contains(a.Roles, role)
}

type Organization struct {
	OrgID    string
	Name     string
	Address  string
	Metadata []KeyValueEntry
}

type SettingEntry struct {
	Key   string
	Value string
}

// Setting is the validator settings blob stored at a well known address.
type Setting struct {
	Entries []SettingEntry
}

// Get returns the value stored under key.
func (s *Setting) Get(key string) (string, bool) {
	for _, e := range s.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
