package types

// ActionType is the tag of a payload action. Values match the wire enum.
type ActionType int32

const (
	ActionUnset ActionType = iota
	ActionCreateContract
	ActionDeleteContract
	ActionExecuteContract
	ActionCreateContractRegistry
	ActionDeleteContractRegistry
	ActionUpdateContractRegistryOwners
	ActionCreateNamespaceRegistry
	ActionDeleteNamespaceRegistry
	ActionUpdateNamespaceRegistryOwners
	ActionCreateNamespaceRegistryPermission
	ActionDeleteNamespaceRegistryPermission
	ActionCreateSmartPermission
	ActionUpdateSmartPermission
	ActionDeleteSmartPermission
	ActionCreateAccount
	ActionUpdateAccount
	ActionCreateOrganization
	ActionUpdateOrganization
)

var actionNames = map[ActionType]string{
	ActionUnset:                             "ACTION_UNSET",
	ActionCreateContract:                    "CREATE_CONTRACT",
	ActionDeleteContract:                    "DELETE_CONTRACT",
	ActionExecuteContract:                   "EXECUTE_CONTRACT",
	ActionCreateContractRegistry:            "CREATE_CONTRACT_REGISTRY",
	ActionDeleteContractRegistry:            "DELETE_CONTRACT_REGISTRY",
	ActionUpdateContractRegistryOwners:      "UPDATE_CONTRACT_REGISTRY_OWNERS",
	ActionCreateNamespaceRegistry:           "CREATE_NAMESPACE_REGISTRY",
	ActionDeleteNamespaceRegistry:           "DELETE_NAMESPACE_REGISTRY",
	ActionUpdateNamespaceRegistryOwners:     "UPDATE_NAMESPACE_REGISTRY_OWNERS",
	ActionCreateNamespaceRegistryPermission: "CREATE_NAMESPACE_REGISTRY_PERMISSION",
	ActionDeleteNamespaceRegistryPermission: "DELETE_NAMESPACE_REGISTRY_PERMISSION",
	ActionCreateSmartPermission:             "CREATE_SMART_PERMISSION",
	ActionUpdateSmartPermission:             "UPDATE_SMART_PERMISSION",
	ActionDeleteSmartPermission:             "DELETE_SMART_PERMISSION",
	ActionCreateAccount:                     "CREATE_ACCOUNT",
	ActionUpdateAccount:                     "UPDATE_ACCOUNT",
	ActionCreateOrganization:                "CREATE_ORGANIZATION",
	ActionUpdateOrganization:                "UPDATE_ORGANIZATION",
}

func (t ActionType) String() string {
	if name, ok := actionNames[t]; ok {
		return name
	}
	return "ACTION_UNKNOWN"
}

// ParseActionType is the inverse of String.
func ParseActionType(name string) (ActionType, bool) {
	for t, n := range actionNames {
		if n == name {
			return t, true
		}
	}
	return ActionUnset, false
}

// Action is one decoded payload variant. The set is closed: only the types in
// this file implement it.
type Action interface {
	Type() ActionType
	isAction()
}

type CreateContractAction struct {
	Name     string
	Version  string
	Inputs   []string
	Outputs  []string
	Contract []byte
}

type DeleteContractAction struct {
	Name    string
	Version string
}

type ExecuteContractAction struct {
	Name    string
	Version string
	Inputs  []string
	Outputs []string
	Payload []byte
}

type CreateContractRegistryAction struct {
	Name   string
	Owners []string
}

type DeleteContractRegistryAction struct {
	Name string
}

type UpdateContractRegistryOwnersAction struct {
	Name   string
	Owners []string
}

type CreateNamespaceRegistryAction struct {
	Namespace string
	Owners    []string
}

type DeleteNamespaceRegistryAction struct {
	Namespace string
}

type UpdateNamespaceRegistryOwnersAction struct {
	Namespace string
	Owners    []string
}

type CreateNamespaceRegistryPermissionAction struct {
	Namespace    string
	ContractName string
	Read         bool
	Write        bool
}

type DeleteNamespaceRegistryPermissionAction struct {
	Namespace    string
	ContractName string
}

type CreateSmartPermissionAction struct {
	Name     string
	OrgID    string
	Function []byte
}

type UpdateSmartPermissionAction struct {
	Name     string
	OrgID    string
	Function []byte
}

type DeleteSmartPermissionAction struct {
	Name  string
	OrgID string
}

type CreateAccountAction struct {
	OrgID     string
	PublicKey string
	Active    bool
	Roles     []string
	Metadata  []KeyValueEntry
}

// UpdateAccountAction changes only the fields it carries. Active is nil when
// the payload does not mention it. Clients must encode active=false
// explicitly to deactivate an account; proto3 encoders omit a false scalar
// unless the field is marked optional.
type UpdateAccountAction struct {
	OrgID     string
	PublicKey string
	Active    *bool
	Roles     []string
	Metadata  []KeyValueEntry
}

type CreateOrganizationAction struct {
	ID       string
	Name     string
	Address  string
	Metadata []KeyValueEntry
}

type UpdateOrganizationAction struct {
	ID       string
	Name     string
	Address  string
	Metadata []KeyValueEntry
}

func (*CreateContractAction) Type() ActionType         { return ActionCreateContract }
func (*DeleteContractAction) Type() ActionType         { return ActionDeleteContract }
func (*ExecuteContractAction) Type() ActionType        { return ActionExecuteContract }
func (*CreateContractRegistryAction) Type() ActionType { return ActionCreateContractRegistry }
func (*DeleteContractRegistryAction) Type() ActionType { return ActionDeleteContractRegistry }
func (*UpdateContractRegistryOwnersAction) Type() ActionType {
	return ActionUpdateContractRegistryOwners
}
func (*CreateNamespaceRegistryAction) Type() ActionType { return ActionCreateNamespaceRegistry }
func (*DeleteNamespaceRegistryAction) Type() ActionType { return ActionDeleteNamespaceRegistry }
func (*UpdateNamespaceRegistryOwnersAction) Type() ActionType {
	return ActionUpdateNamespaceRegistryOwners
}
func (*CreateNamespaceRegistryPermissionAction) Type() ActionType {
	return ActionCreateNamespaceRegistryPermission
}
func (*DeleteNamespaceRegistryPermissionAction) Type() ActionType {
	return ActionDeleteNamespaceRegistryPermission
}
func (*CreateSmartPermissionAction) Type() ActionType { return ActionCreateSmartPermission }
func (*UpdateSmartPermissionAction) Type() ActionType { return ActionUpdateSmartPermission }
func (*DeleteSmartPermissionAction) Type() ActionType { return ActionDeleteSmartPermission }
func (*CreateAccountAction) Type() ActionType         { return ActionCreateAccount }
func (*UpdateAccountAction) Type() ActionType         { return ActionUpdateAccount }
func (*CreateOrganizationAction) Type() ActionType    { return ActionCreateOrganization }
func (*UpdateOrganizationAction) Type() ActionType    { return ActionUpdateOrganization }

func (*CreateContractAction) isAction()                    {}
func (*DeleteContractAction) isAction()                    {}
func (*ExecuteContractAction) isAction()                   {}
func (*CreateContractRegistryAction) isAction()            {}
func (*DeleteContractRegistryAction) isAction()            {}
func (*UpdateContractRegistryOwnersAction) isAction()      {}
func (*CreateNamespaceRegistryAction) isAction()           {}
func (*DeleteNamespaceRegistryAction) isAction()           {}
func (*UpdateNamespaceRegistryOwnersAction) isAction()     {}
func (*CreateNamespaceRegistryPermissionAction) isAction() {}
func (*DeleteNamespaceRegistryPermissionAction) isAction() {}
func (*CreateSmartPermissionAction) isAction()             {}
func (*UpdateSmartPermissionAction) isAction()             {}
func (*DeleteSmartPermissionAction) isAction()             {}
func (*CreateAccountAction) isAction()                     {}
func (*UpdateAccountAction) isAction()                     {}
func (*CreateOrganizationAction) isAction()                {}
func (*UpdateOrganizationAction) isAction()                {}
