package protocol

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/dgc-network/smart/pkg/types"
)

// The envelope carries the action tag in field 1 and the action message in
// field tag+1.
const payloadActionField protowire.Number = 1

func actionField(t types.ActionType) protowire.Number {
	return protowire.Number(t) + 1
}

// EncodePayload wraps action in the payload envelope.
func EncodePayload(action types.Action) ([]byte, error) {
	body, err := encodeAction(action)
	if err != nil {
		return nil, err
	}
	var b []byte
	b = appendEnum(b, payloadActionField, int32(action.Type()))
	b = appendMessage(b, actionField(action.Type()), body)
	return b, nil
}

// DecodePayload parses the envelope and the action message selected by its
// tag. A missing action message decodes as an empty action.
func DecodePayload(b []byte) (types.Action, error) {
	var (
		actionType types.ActionType
		bodies     = map[protowire.Number][]byte{}
	)
	err := decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == payloadActionField {
			v, n, err := consumeVarint(num, typ, b)
			actionType = types.ActionType(int32(v))
			return n, err
		}
		if typ != protowire.BytesType {
			return -1, nil
		}
		v, n, err := consumeBytes(num, typ, b)
		bodies[num] = v
		return n, err
	})
	if err != nil {
		return nil, wrapMalformed("payload", err)
	}
	if actionType <= types.ActionUnset || actionType > types.ActionUpdateOrganization {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAction, actionType)
	}

	action, err := decodeAction(actionType, bodies[actionField(actionType)])
	if err != nil {
		return nil, wrapMalformed(actionType.String(), err)
	}
	return action, nil
}

func encodeAction(action types.Action) ([]byte, error) {
	var b []byte
	switch a := action.(type) {
	case *types.CreateContractAction:
		b = appendString(b, 1, a.Name)
		b = appendString(b, 2, a.Version)
		b = appendStrings(b, 3, a.Inputs)
		b = appendStrings(b, 4, a.Outputs)
		b = appendBytes(b, 5, a.Contract)
	case *types.DeleteContractAction:
		b = appendString(b, 1, a.Name)
		b = appendString(b, 2, a.Version)
	case *types.ExecuteContractAction:
		b = appendString(b, 1, a.Name)
		b = appendString(b, 2, a.Version)
		b = appendStrings(b, 3, a.Inputs)
		b = appendStrings(b, 4, a.Outputs)
		b = appendBytes(b, 5, a.Payload)
	case *types.CreateContractRegistryAction:
		b = appendString(b, 1, a.Name)
		b = appendStrings(b, 2, a.Owners)
	case *types.DeleteContractRegistryAction:
		b = appendString(b, 1, a.Name)
	case *types.UpdateContractRegistryOwnersAction:
		b = appendString(b, 1, a.Name)
		b = appendStrings(b, 2, a.Owners)
	case *types.CreateNamespaceRegistryAction:
		b = appendString(b, 1, a.Namespace)
		b = appendStrings(b, 2, a.Owners)
	case *types.DeleteNamespaceRegistryAction:
		b = appendString(b, 1, a.Namespace)
	case *types.UpdateNamespaceRegistryOwnersAction:
		b = appendString(b, 1, a.Namespace)
		b = appendStrings(b, 2, a.Owners)
	case *types.CreateNamespaceRegistryPermissionAction:
		b = appendString(b, 1, a.Namespace)
		b = appendString(b, 2, a.ContractName)
		b = appendBool(b, 3, a.Read)
		b = appendBool(b, 4, a.Write)
	case *types.DeleteNamespaceRegistryPermissionAction:
		b = appendString(b, 1, a.Namespace)
		b = appendString(b, 2, a.ContractName)
	case *types.CreateSmartPermissionAction:
		b = appendString(b, 1, a.Name)
		b = appendString(b, 2, a.OrgID)
		b = appendBytes(b, 3, a.Function)
	case *types.UpdateSmartPermissionAction:
		b = appendString(b, 1, a.Name)
		b = appendString(b, 2, a.OrgID)
		b = appendBytes(b, 3, a.Function)
	case *types.DeleteSmartPermissionAction:
		b = appendString(b, 1, a.Name)
		b = appendString(b, 2, a.OrgID)
	case *types.CreateAccountAction:
		b = appendString(b, 1, a.OrgID)
		b = appendString(b, 2, a.PublicKey)
		b = appendBool(b, 3, a.Active)
		b = appendStrings(b, 4, a.Roles)
		b = appendKeyValues(b, 5, a.Metadata)
	case *types.UpdateAccountAction:
		b = appendString(b, 1, a.OrgID)
		b = appendString(b, 2, a.PublicKey)
		if a.Active != nil {
			b = appendPresentBool(b, 3, *a.Active)
		}
		b = appendStrings(b, 4, a.Roles)
		b = appendKeyValues(b, 5, a.Metadata)
	case *types.CreateOrganizationAction:
		b = appendString(b, 1, a.ID)
		b = appendString(b, 2, a.Name)
		b = appendString(b, 3, a.Address)
		b = appendKeyValues(b, 4, a.Metadata)
	case *types.UpdateOrganizationAction:
		b = appendString(b, 1, a.ID)
		b = appendString(b, 2, a.Name)
		b = appendString(b, 3, a.Address)
		b = appendKeyValues(b, 4, a.Metadata)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownAction, action)
	}
	return b, nil
}

// Field bindings decode one field into a destination.
func stringField(dst *string) fieldDecoder {
	return func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		v, n, err := consumeString(num, typ, b)
		*dst = v
		return n, err
	}
}

func stringsField(dst *[]string) fieldDecoder {
	return func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		v, n, err := consumeString(num, typ, b)
		*dst = append(*dst, v)
		return n, err
	}
}

func bytesField(dst *[]byte) fieldDecoder {
	return func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		v, n, err := consumeBytes(num, typ, b)
		*dst = v
		return n, err
	}
}

func boolField(dst *bool) fieldDecoder {
	return func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		v, n, err := consumeBool(num, typ, b)
		*dst = v
		return n, err
	}
}

func optionalBoolField(dst **bool) fieldDecoder {
	return func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		v, n, err := consumeBool(num, typ, b)
		*dst = &v
		return n, err
	}
}

func keyValuesField(dst *[]types.KeyValueEntry) fieldDecoder {
	return func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		return consumeKeyValue(num, typ, b, dst)
	}
}

func decodeWith(b []byte, fields map[protowire.Number]fieldDecoder) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if bind, ok := fields[num]; ok {
			return bind(num, typ, b)
		}
		return -1, nil
	})
}

func decodeAction(t types.ActionType, b []byte) (types.Action, error) {
	var (
		action types.Action
		fields map[protowire.Number]fieldDecoder
	)

	switch t {
	case types.ActionCreateContract:
		a := &types.CreateContractAction{}
		action, fields = a, map[protowire.Number]fieldDecoder{
			1: stringField(&a.Name), 2: stringField(&a.Version),
			3: stringsField(&a.Inputs), 4: stringsField(&a.Outputs), 5: bytesField(&a.Contract),
		}
	case types.ActionDeleteContract:
		a := &types.DeleteContractAction{}
		action, fields = a, map[protowire.Number]fieldDecoder{
			1: stringField(&a.Name), 2: stringField(&a.Version),
		}
	case types.ActionExecuteContract:
		a := &types.ExecuteContractAction{}
		action, fields = a, map[protowire.Number]fieldDecoder{
			1: stringField(&a.Name), 2: stringField(&a.Version),
			3: stringsField(&a.Inputs), 4: stringsField(&a.Outputs), 5: bytesField(&a.Payload),
		}
	case types.ActionCreateContractRegistry:
		a := &types.CreateContractRegistryAction{}
		action, fields = a, map[protowire.Number]fieldDecoder{
			1: stringField(&a.Name), 2: stringsField(&a.Owners),
		}
	case types.ActionDeleteContractRegistry:
		a := &types.DeleteContractRegistryAction{}
		action, fields = a, map[protowire.Number]fieldDecoder{
			1: stringField(&a.Name),
		}
	case types.ActionUpdateContractRegistryOwners:
		a := &types.UpdateContractRegistryOwnersAction{}
		action, fields = a, map[protowire.Number]fieldDecoder{
			1: stringField(&a.Name), 2: stringsField(&a.Owners),
		}
	case types.ActionCreateNamespaceRegistry:
		a := &types.CreateNamespaceRegistryAction{}
		action, fields = a, map[protowire.Number]fieldDecoder{
			1: stringField(&a.Namespace), 2: stringsField(&a.Owners),
		}
	case types.ActionDeleteNamespaceRegistry:
		a := &types.DeleteNamespaceRegistryAction{}
		action, fields = a, map[protowire.Number]fieldDecoder{
			1: stringField(&a.Namespace),
		}
	case types.ActionUpdateNamespaceRegistryOwners:
		a := &types.UpdateNamespaceRegistryOwnersAction{}
		action, fields = a, map[protowire.Number]fieldDecoder{
			1: stringField(&a.Namespace), 2: stringsField(&a.Owners),
		}
	case types.ActionCreateNamespaceRegistryPermission:
		a := &types.CreateNamespaceRegistryPermissionAction{}
		action, fields = a, map[protowire.Number]fieldDecoder{
			1: stringField(&a.Namespace), 2: stringField(&a.ContractName),
			3: boolField(&a.Read), 4: boolField(&a.Write),
		}
	case types.ActionDeleteNamespaceRegistryPermission:
		a := &types.DeleteNamespaceRegistryPermissionAction{}
		action, fields = a, map[protowire.Number]fieldDecoder{
			1: stringField(&a.Namespace), 2: stringField(&a.ContractName),
		}
	case types.ActionCreateSmartPermission:
		a := &types.CreateSmartPermissionAction{}
		action, fields = a, map[protowire.Number]fieldDecoder{
			1: stringField(&a.Name), 2: stringField(&a.OrgID), 3: bytesField(&a.Function),
		}
	case types.ActionUpdateSmartPermission:
		a := &types.UpdateSmartPermissionAction{}
		action, fields = a, map[protowire.Number]fieldDecoder{
			1: stringField(&a.Name), 2: stringField(&a.OrgID), 3: bytesField(&a.Function),
		}
	case types.ActionDeleteSmartPermission:
		a := &types.DeleteSmartPermissionAction{}
		action, fields = a, map[protowire.Number]fieldDecoder{
			1: stringField(&a.Name), 2: stringField(&a.OrgID),
		}
	case types.ActionCreateAccount:
		a := &types.CreateAccountAction{}
		action, fields = a, map[protowire.Number]fieldDecoder{
			1: stringField(&a.OrgID), 2: stringField(&a.PublicKey), 3: boolField(&a.Active),
			4: stringsField(&a.Roles), 5: keyValuesField(&a.Metadata),
		}
	case types.ActionUpdateAccount:
		a := &types.UpdateAccountAction{}
		action, fields = a, map[protowire.Number]fieldDecoder{
			1: stringField(&a.OrgID), 2: stringField(&a.PublicKey), 3: optionalBoolField(&a.Active),
			4: stringsField(&a.Roles), 5: keyValuesField(&a.Metadata),
		}
	case types.ActionCreateOrganization:
		a := &types.CreateOrganizationAction{}
		action, fields = a, map[protowire.Number]fieldDecoder{
			1: stringField(&a.ID), 2: stringField(&a.Name), 3: stringField(&a.Address),
			4: keyValuesField(&a.Metadata),
		}
	case types.ActionUpdateOrganization:
		a := &types.UpdateOrganizationAction{}
		action, fields = a, map[protowire.Number]fieldDecoder{
			1: stringField(&a.ID), 2: stringField(&a.Name), 3: stringField(&a.Address),
			4: keyValuesField(&a.Metadata),
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownAction, t)
	}

	if err := decodeWith(b, fields); err != nil {
		return nil, err
	}
	return action, nil
}
