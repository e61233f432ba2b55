package wasm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tetratelabs/wazero/api"

	"github.com/dgc-network/smart/internal/core/state"
)

// Contract log levels as seen by the guest.
const (
	contractTrace int32 = iota
	contractDebug
	contractInfo
	contractWarn
	contractError
)

const hostModuleName = "env"

func parseContractLevel(level string) int32 {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return contractTrace
	case "debug":
		return contractDebug
	case "warn", "warning":
		return contractWarn
	case "error":
		return contractError
	default:
		return contractInfo
	}
}

// hostFunctions is the import surface of module "env". Every function looks
// up the externals of the running call through ctx, since the host module is
// instantiated once per runtime.
func (e *Engine) hostFunctions() map[string]interface{} {
	return map[string]interface{}{
		"alloc": func(ctx context.Context, length uint32) uint32 {
			x := externalsFrom(ctx)
			ptr, err := x.alloc(length)
			x.check(err)
			return ptr
		},
		"write_byte": func(ctx context.Context, ptr, offset, b uint32) int32 {
			x := externalsFrom(ctx)
			x.check(x.writeByte(ptr, offset, byte(b)))
			return 0
		},
		"read_byte": func(ctx context.Context, offset uint32) uint32 {
			x := externalsFrom(ctx)
			b, err := x.readByte(offset)
			x.check(err)
			return uint32(b)
		},
		"get_ptr_len": func(ctx context.Context, ptr uint32) int32 {
			return externalsFrom(ctx).pointerLen(ptr)
		},
		"create_collection": func(ctx context.Context, head uint32) uint32 {
			return externalsFrom(ctx).createCollection(head)
		},
		"add_to_collection": func(ctx context.Context, head, ptr uint32) uint32 {
			x := externalsFrom(ctx)
			head, err := x.addToCollection(head, ptr)
			x.check(err)
			return head
		},
		"get_ptr_collection_len": func(ctx context.Context, head uint32) int32 {
			return externalsFrom(ctx).collectionLen(head)
		},
		"get_ptr_from_collection": func(ctx context.Context, head, index uint32) uint32 {
			x := externalsFrom(ctx)
			ptr, err := x.collectionItem(head, index)
			x.check(err)
			return ptr
		},
		"get_state": func(ctx context.Context, head uint32) uint32 {
			x := externalsFrom(ctx)
			ptr, err := x.getState(head)
			x.check(err)
			return ptr
		},
		"set_state": func(ctx context.Context, head uint32) int32 {
			x := externalsFrom(ctx)
			ok, err := x.setState(head)
			x.check(err)
			return ok
		},
		"delete_state": func(ctx context.Context, head uint32) uint32 {
			x := externalsFrom(ctx)
			ptr, err := x.deleteState(head)
			x.check(err)
			return ptr
		},
		"invoke_smart_permission": func(ctx context.Context, address, name, roles, orgID, publicKey, payload uint32) int32 {
			x := externalsFrom(ctx)
			result, err := e.invokeSmartPermission(ctx, x, address, name, roles, orgID, publicKey, payload)
			x.check(err)
			return result
		},
		"log_buffer": func(ctx context.Context, level, msg uint32) {
			x := externalsFrom(ctx)
			message, err := x.readString(msg)
			x.check(err)
			e.logContract(int32(level), message)
		},
		"log_level": func(ctx context.Context) int32 {
			return e.contractLevel
		},
	}
}

// invokeSmartPermission runs the entrypoint(roles, org_id, public_key,
// payload) of the smart permission stored under name at address. It returns
// -1 when no such permission exists.
func (e *Engine) invokeSmartPermission(ctx context.Context, x *externals, addressPtr, namePtr, rolesHead, orgPtr, keyPtr, payloadPtr uint32) (int32, error) {
	address, err := x.readString(addressPtr)
	if err != nil {
		return 0, err
	}
	name, err := x.readString(namePtr)
	if err != nil {
		return 0, err
	}
	roles, err := x.readOptionalStrings(rolesHead)
	if err != nil {
		return 0, err
	}
	orgID, err := x.readString(orgPtr)
	if err != nil {
		return 0, err
	}
	publicKey, err := x.readString(keyPtr)
	if err != nil {
		return 0, err
	}
	payload, err := x.read(payloadPtr)
	if err != nil {
		return 0, err
	}

	if x.depth+1 > e.options.MaxCallDepth {
		return 0, fmt.Errorf("%w: %d", ErrCallDepth, x.depth+1)
	}

	permission, err := state.NewAccessor(x.state).GetSmartPermissionAt(address, name)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStateAccess, err)
	}
	if permission == nil {
		e.logger.Debugf("smart permission %s not found at %s", name, address)
		return -1, nil
	}

	nested := newExternals(e, x.state, x.depth+1)
	result, err := e.call(ctx, nested, permission.Function, func(n *externals) ([]uint64, error) {
		rolesPtr, err := n.writeStrings(roles)
		if err != nil {
			return nil, err
		}
		orgPtr, err := n.write([]byte(orgID))
		if err != nil {
			return nil, err
		}
		keyPtr, err := n.write([]byte(publicKey))
		if err != nil {
			return nil, err
		}
		payloadPtr, err := n.write(payload)
		if err != nil {
			return nil, err
		}
		return []uint64{
			api.EncodeU32(rolesPtr),
			api.EncodeU32(orgPtr),
			api.EncodeU32(keyPtr),
			api.EncodeU32(payloadPtr),
		}, nil
	})
	if err != nil {
		return 0, err
	}
	if !result.HasResult {
		return 0, fmt.Errorf("%w: %s", ErrNoResult, name)
	}
	return result.Code, nil
}

func (e *Engine) logContract(level int32, message string) {
	if level < e.contractLevel {
		return
	}
	switch {
	case level <= contractDebug:
		e.contractLog.Debug(message)
	case level == contractInfo:
		e.contractLog.Info(message)
	case level == contractWarn:
		e.contractLog.Warn(message)
	default:
		e.contractLog.Error(message)
	}
}
