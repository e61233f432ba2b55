package wasm

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	engineconfig "github.com/dgc-network/smart/internal/config/engine"
	"github.com/dgc-network/smart/internal/core/addressing"
	corelog "github.com/dgc-network/smart/internal/core/infrastructure/log"
	"github.com/dgc-network/smart/internal/core/infrastructure/storage/memory"
	"github.com/dgc-network/smart/internal/core/state"
	"github.com/dgc-network/smart/pkg/interfaces/engine"
	"github.com/dgc-network/smart/pkg/types"
)

type compiledCounter struct {
	mu    sync.Mutex
	sizes []int
}

func (c *compiledCounter) ObserveTransaction(string, string, time.Duration) {}

func (c *compiledCounter) ObserveContract(string, string, time.Duration) {}

func (c *compiledCounter) SetCompiledModules(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sizes = append(c.sizes, n)
}

func newTestEngine(t *testing.T, tweak func(*engineconfig.EngineOptions)) *Engine {
	t.Helper()
	options := engineconfig.DefaultOptions()
	options.ExecutionTimeout = 5 * time.Second
	if tweak != nil {
		tweak(options)
	}
	e, err := New(Params{Options: options})
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close(context.Background()) })
	return e
}

func run(t *testing.T, e *Engine, code []byte, store *memory.Store, payload, signer, signature string) (engine.Result, error) {
	t.Helper()
	return e.Execute(context.Background(), &engine.Invocation{
		Name:      "test",
		Version:   "1.0",
		Code:      code,
		Payload:   []byte(payload),
		Signer:    signer,
		Signature: signature,
	}, store)
}

func TestExecuteReturnsEntrypointResult(t *testing.T) {
	e := newTestEngine(t, nil)

	for _, code := range []int32{1, -3, 42} {
		result, err := run(t, e, contract().code(i32Const(code)).bytes(), memory.New(), "", "", "")
		require.NoError(t, err)
		assert.True(t, result.HasResult)
		assert.Equal(t, code, result.Code)
	}
}

func TestExecuteWithoutResult(t *testing.T) {
	e := newTestEngine(t, nil)

	mod := &testModule{export: entrypointName, params: 3}
	result, err := run(t, e, mod.bytes(), memory.New(), "", "", "")
	require.NoError(t, err)
	assert.False(t, result.HasResult)
}

func TestSetState(t *testing.T) {
	e := newTestEngine(t, nil)
	store := memory.New()
	address := addressing.ComputeAccountAddress("alice")

	mod := contract("create_collection", "add_to_collection", "set_state")
	mod.code(localGet(1), mod.call("create_collection"), localGet(0), mod.call("add_to_collection"), mod.call("set_state"))

	result, err := run(t, e, mod.bytes(), store, "hello", address, "")
	require.NoError(t, err)
	assert.Equal(t, int32(1), result.Code)

	values, err := store.GetState([]string{address})
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), values[address])
}

func TestGetState(t *testing.T) {
	e := newTestEngine(t, nil)
	store := memory.New()
	address := addressing.ComputeAccountAddress("alice")
	_, err := store.SetState(map[string][]byte{address: []byte("twelve bytes")})
	require.NoError(t, err)

	mod := contract("create_collection", "get_state", "get_ptr_len")
	mod.code(localGet(1), mod.call("create_collection"), mod.call("get_state"), mod.call("get_ptr_len"))

	result, err := run(t, e, mod.bytes(), store, "", address, "")
	require.NoError(t, err)
	assert.Equal(t, int32(12), result.Code)

	// a miss yields pointer 0, which has no length
	result, err = run(t, e, mod.bytes(), store, "", addressing.ComputeAccountAddress("bob"), "")
	require.NoError(t, err)
	assert.Equal(t, int32(-1), result.Code)
}

func TestDeleteState(t *testing.T) {
	e := newTestEngine(t, nil)
	store := memory.New()
	address := addressing.ComputeAccountAddress("alice")
	_, err := store.SetState(map[string][]byte{address: []byte("x")})
	require.NoError(t, err)

	mod := contract("create_collection", "delete_state", "get_ptr_collection_len")
	mod.code(localGet(1), mod.call("create_collection"), mod.call("delete_state"), mod.call("get_ptr_collection_len"))

	result, err := run(t, e, mod.bytes(), store, "", address, "")
	require.NoError(t, err)
	assert.Equal(t, int32(1), result.Code)
	assert.Empty(t, store.Keys())

	result, err = run(t, e, mod.bytes(), store, "", address, "")
	require.NoError(t, err)
	assert.Equal(t, int32(-1), result.Code)
}

func TestHostFaults(t *testing.T) {
	e := newTestEngine(t, func(o *engineconfig.EngineOptions) { o.ArenaPages = 1 })

	unknown := contract("set_state")
	unknown.code(i32Const(12345), unknown.call("set_state"))

	odd := contract("create_collection", "set_state")
	odd.code(localGet(1), odd.call("create_collection"), odd.call("set_state"))

	exhausted := contract("alloc")
	exhausted.code(i32Const(70000), exhausted.call("alloc"))

	stray := contract("write_byte")
	stray.code(i32Const(3), i32Const(0), i32Const(7), stray.call("write_byte"))

	tests := []struct {
		name string
		code []byte
		want error
	}{
		{"unknown collection", unknown.bytes(), ErrUnknownCollection},
		{"odd state list", odd.bytes(), ErrOddStateList},
		{"arena exhausted", exhausted.bytes(), ErrArenaExhausted},
		{"unregistered pointer", stray.bytes(), ErrUnknownPointer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, e, tt.code, memory.New(), "", "signer", "")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrExternals)
		})
	}
}

func TestPayloadLargerThanArena(t *testing.T) {
	e := newTestEngine(t, func(o *engineconfig.EngineOptions) { o.ArenaPages = 1 })

	payload := make([]byte, pageSize+1)
	_, err := run(t, e, contract().code(i32Const(1)).bytes(), memory.New(), string(payload), "", "")
	assert.ErrorIs(t, err, ErrArenaExhausted)
}

func TestMalformedModules(t *testing.T) {
	e := newTestEngine(t, nil)

	noMemory := &testModule{export: entrypointName, params: 3, results: 1, noMemory: true}
	noMemory.code(i32Const(1))
	noEntrypoint := &testModule{export: "main", params: 3, results: 1}
	noEntrypoint.code(i32Const(1))

	_, err := run(t, e, noMemory.bytes(), memory.New(), "", "", "")
	assert.ErrorIs(t, err, ErrNoMemory)

	_, err = run(t, e, noEntrypoint.bytes(), memory.New(), "", "", "")
	assert.ErrorIs(t, err, ErrNoEntrypoint)

	_, err = run(t, e, []byte("not wasm at all"), memory.New(), "", "", "")
	assert.ErrorIs(t, err, ErrCompile)
}

func TestTrap(t *testing.T) {
	e := newTestEngine(t, nil)

	_, err := run(t, e, contract().code([]byte{opUnreachable}).bytes(), memory.New(), "", "", "")
	assert.ErrorIs(t, err, ErrTrap)
}

func TestExecutionTimeout(t *testing.T) {
	e := newTestEngine(t, func(o *engineconfig.EngineOptions) { o.ExecutionTimeout = 50 * time.Millisecond })

	start := time.Now()
	_, err := run(t, e, contract().code(loopForever(), i32Const(0)).bytes(), memory.New(), "", "", "")
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}

// invoker calls invoke_smart_permission with
// address=signer, name=signature, roles=[payload, signature], org=payload,
// public_key=signer and payload=payload.
func invoker() []byte {
	mod := contract("create_collection", "add_to_collection", "invoke_smart_permission")
	mod.code(
		localGet(1),
		localGet(2),
		localGet(0), mod.call("create_collection"), localGet(2), mod.call("add_to_collection"),
		localGet(0),
		localGet(1),
		localGet(0),
		mod.call("invoke_smart_permission"),
	)
	return mod.bytes()
}

// permission returns len(roles) + len(org_id).
func permission() []byte {
	mod := &testModule{
		imports: []string{"get_ptr_collection_len", "get_ptr_len"},
		export:  entrypointName,
		params:  4,
		results: 1,
	}
	mod.code(localGet(0), mod.call("get_ptr_collection_len"), localGet(1), mod.call("get_ptr_len"), []byte{opI32Add})
	return mod.bytes()
}

func storePermission(t *testing.T, store *memory.Store, orgID, name string, function []byte) string {
	t.Helper()
	require.NoError(t, state.NewAccessor(store).SetSmartPermission(orgID, name, types.SmartPermission{
		Name:     name,
		OrgID:    orgID,
		Function: function,
	}))
	return addressing.ComputeSmartPermissionAddress(orgID, name)
}

func TestInvokeSmartPermission(t *testing.T) {
	e := newTestEngine(t, nil)
	store := memory.New()
	address := storePermission(t, store, "org01", "can-ship", permission())

	result, err := run(t, e, invoker(), store, "org01", address, "can-ship")
	require.NoError(t, err)
	assert.Equal(t, int32(2+len("org01")), result.Code)
}

func TestInvokeMissingSmartPermission(t *testing.T) {
	e := newTestEngine(t, nil)

	address := addressing.ComputeSmartPermissionAddress("org01", "can-ship")
	result, err := run(t, e, invoker(), memory.New(), "org01", address, "can-ship")
	require.NoError(t, err)
	assert.Equal(t, int32(-1), result.Code)
}

func TestInvokeSmartPermissionDepth(t *testing.T) {
	e := newTestEngine(t, func(o *engineconfig.EngineOptions) { o.MaxCallDepth = 0 })
	store := memory.New()
	address := storePermission(t, store, "org01", "can-ship", permission())

	_, err := run(t, e, invoker(), store, "org01", address, "can-ship")
	assert.ErrorIs(t, err, ErrCallDepth)
}

func TestInvokeSmartPermissionWithoutResult(t *testing.T) {
	e := newTestEngine(t, nil)
	store := memory.New()
	silent := &testModule{export: entrypointName, params: 4}
	address := storePermission(t, store, "org01", "silent", silent.bytes())

	_, err := run(t, e, invoker(), store, "org01", address, "silent")
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestContractLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e, err := New(Params{
		Logger:        corelog.NewFromZap(zap.New(core)),
		ContractLevel: "warn",
	})
	require.NoError(t, err)
	defer e.Close(context.Background())

	for _, level := range []int32{contractInfo, contractWarn, contractError} {
		mod := contract("log_buffer")
		mod.code(i32Const(level), localGet(0), mod.call("log_buffer"), i32Const(1))
		_, err := run(t, e, mod.bytes(), memory.New(), fmt.Sprintf("level %d", level), "", "")
		require.NoError(t, err)
	}

	contractLogs := logs.FilterField(zap.String("module", "contract")).AllUntimed()
	require.Len(t, contractLogs, 2)
	assert.Equal(t, "level 3", contractLogs[0].Message)
	assert.Equal(t, zapcore.WarnLevel, contractLogs[0].Level)
	assert.Equal(t, "level 4", contractLogs[1].Message)
	assert.Equal(t, zapcore.ErrorLevel, contractLogs[1].Level)

	mod := contract("log_level")
	mod.code(mod.call("log_level"))
	result, err := run(t, e, mod.bytes(), memory.New(), "", "", "")
	require.NoError(t, err)
	assert.Equal(t, contractWarn, result.Code)
}

func TestParseContractLevel(t *testing.T) {
	assert.Equal(t, contractTrace, parseContractLevel("TRACE"))
	assert.Equal(t, contractDebug, parseContractLevel("debug"))
	assert.Equal(t, contractInfo, parseContractLevel(""))
	assert.Equal(t, contractWarn, parseContractLevel(" warning "))
	assert.Equal(t, contractError, parseContractLevel("error"))
}

func TestCompiledModuleCache(t *testing.T) {
	counter := &compiledCounter{}
	options := engineconfig.DefaultOptions()
	options.CompiledCacheSize = 2
	e, err := New(Params{Options: options, Metrics: counter})
	require.NoError(t, err)
	defer e.Close(context.Background())

	one := contract().code(i32Const(1)).bytes()
	for i := 0; i < 3; i++ {
		_, err := run(t, e, one, memory.New(), "", "", "")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, e.CompiledModules())

	for _, code := range []int32{2, 3} {
		result, err := run(t, e, contract().code(i32Const(code)).bytes(), memory.New(), "", "", "")
		require.NoError(t, err)
		assert.Equal(t, code, result.Code)
	}
	assert.Equal(t, 2, e.CompiledModules())
	assert.Equal(t, []int{1, 2, 2}, counter.sizes)

	// evicted modules recompile
	result, err := run(t, e, one, memory.New(), "", "", "")
	require.NoError(t, err)
	assert.Equal(t, int32(1), result.Code)
}

func TestConcurrentExecute(t *testing.T) {
	e := newTestEngine(t, nil)

	mod := contract("create_collection", "add_to_collection", "set_state")
	mod.code(localGet(1), mod.call("create_collection"), localGet(0), mod.call("add_to_collection"), mod.call("set_state"))
	code := mod.bytes()

	var wg sync.WaitGroup
	errs := make([]error, 16)
	stores := make([]*memory.Store, len(errs))
	for i := range errs {
		stores[i] = memory.New()
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			address := addressing.ComputeAccountAddress(fmt.Sprintf("key-%d", i))
			_, errs[i] = run(t, e, code, stores[i], fmt.Sprintf("value-%d", i), address, "")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err)
		address := addressing.ComputeAccountAddress(fmt.Sprintf("key-%d", i))
		values, err := stores[i].GetState([]string{address})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("value-%d", i), string(values[address]))
	}
}

func TestClosedEngine(t *testing.T) {
	e, err := New(Params{})
	require.NoError(t, err)

	require.NoError(t, e.Close(context.Background()))
	require.NoError(t, e.Close(context.Background()))

	_, err = run(t, e, contract().code(i32Const(1)).bytes(), memory.New(), "", "", "")
	assert.ErrorIs(t, err, ErrClosed)
}
