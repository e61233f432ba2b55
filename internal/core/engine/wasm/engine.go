// Package wasm runs contract bytecode on wazero.
//
// A contract module imports its host functions from module "env", exports
// its linear memory as "memory" and exports
//
//	entrypoint(payload_ptr i32, signer_ptr i32, signature_ptr i32) -> i32
//
// Before the call the host grows the guest memory by the configured arena and
// copies the arguments there. Every buffer the host hands out is registered
// in a pointer table; lists of buffers are collections keyed by their first
// pointer.
package wasm

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	engineconfig "github.com/dgc-network/smart/internal/config/engine"
	corelog "github.com/dgc-network/smart/internal/core/infrastructure/log"
	"github.com/dgc-network/smart/pkg/interfaces/engine"
	"github.com/dgc-network/smart/pkg/interfaces/infrastructure/log"
	"github.com/dgc-network/smart/pkg/interfaces/infrastructure/metrics"
	statectx "github.com/dgc-network/smart/pkg/interfaces/state"
)

const entrypointName = "entrypoint"

// Params configures an Engine. Options defaults when nil; Logger and
// Metrics are optional.
type Params struct {
	Options       *engineconfig.EngineOptions
	Logger        log.Logger
	ContractLevel string
	Metrics       metrics.Recorder
}

// Engine compiles and runs contracts. It is safe for concurrent use; every
// Execute gets its own module instance.
type Engine struct {
	options       *engineconfig.EngineOptions
	logger        log.Logger
	contractLog   log.Logger
	contractLevel int32
	metrics       metrics.Recorder

	runtime wazero.Runtime
	cache   wazero.CompilationCache

	// mu orders instantiation against eviction, which closes the compiled
	// module.
	mu      sync.RWMutex
	modules *lru.Cache[string, wazero.CompiledModule]
	closed  bool
}

var _ engine.ContractExecutor = (*Engine)(nil)

// New creates the wazero runtime and instantiates the host module.
func New(params Params) (*Engine, error) {
	options := params.Options
	if options == nil {
		options = engineconfig.DefaultOptions()
	}
	logger := params.Logger
	if logger == nil {
		logger = corelog.NewNop()
	}

	var (
		cache wazero.CompilationCache
		err   error
	)
	if options.CompilationCacheDir != "" {
		cache, err = wazero.NewCompilationCacheWithDir(options.CompilationCacheDir)
		if err != nil {
			return nil, fmt.Errorf("open compilation cache %s: %w", options.CompilationCacheDir, err)
		}
	} else {
		cache = wazero.NewCompilationCache()
	}

	ctx := context.Background()
	config := wazero.NewRuntimeConfig().
		WithCompilationCache(cache).
		WithCloseOnContextDone(true)
	if options.MaxMemoryPages > 0 {
		config = config.WithMemoryLimitPages(options.MaxMemoryPages)
	}

	e := &Engine{
		options:       options,
		logger:        logger,
		contractLog:   logger.With("module", "contract"),
		contractLevel: parseContractLevel(params.ContractLevel),
		metrics:       params.Metrics,
		runtime:       wazero.NewRuntimeWithConfig(ctx, config),
		cache:         cache,
	}

	size := options.CompiledCacheSize
	if size <= 0 {
		size = 1
	}
	e.modules, err = lru.NewWithEvict[string, wazero.CompiledModule](size, func(_ string, compiled wazero.CompiledModule) {
		_ = compiled.Close(context.Background())
	})
	if err != nil {
		_ = e.runtime.Close(ctx)
		return nil, err
	}

	builder := e.runtime.NewHostModuleBuilder(hostModuleName)
	for name, fn := range e.hostFunctions() {
		builder.NewFunctionBuilder().WithFunc(fn).Export(name)
	}
	if _, err := builder.Instantiate(ctx); err != nil {
		_ = e.runtime.Close(ctx)
		return nil, fmt.Errorf("instantiate host module: %w", err)
	}

	logger.Infof("wasm engine ready: arena=%d pages, memory limit=%d pages, timeout=%s",
		options.ArenaPages, options.MaxMemoryPages, options.ExecutionTimeout)
	return e, nil
}

// Execute runs the contract entrypoint with the payload, signer and
// signature of the invocation.
func (e *Engine) Execute(ctx context.Context, invocation *engine.Invocation, stateCtx statectx.TransactionContext) (engine.Result, error) {
	if e.options.ExecutionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.options.ExecutionTimeout)
		defer cancel()
	}

	e.logger.Debugf("executing contract %s %s (%d bytes)", invocation.Name, invocation.Version, len(invocation.Code))

	x := newExternals(e, stateCtx, 0)
	return e.call(ctx, x, invocation.Code, func(x *externals) ([]uint64, error) {
		payloadPtr, err := x.write(invocation.Payload)
		if err != nil {
			return nil, err
		}
		signerPtr, err := x.write([]byte(invocation.Signer))
		if err != nil {
			return nil, err
		}
		signaturePtr, err := x.write([]byte(invocation.Signature))
		if err != nil {
			return nil, err
		}
		return []uint64{
			api.EncodeU32(payloadPtr),
			api.EncodeU32(signerPtr),
			api.EncodeU32(signaturePtr),
		}, nil
	})
}

// call instantiates code, lets args marshal the parameters into the arena and
// invokes the entrypoint.
func (e *Engine) call(ctx context.Context, x *externals, code []byte, args func(*externals) ([]uint64, error)) (engine.Result, error) {
	ctx = withExternals(ctx, x)

	mod, err := e.instantiate(ctx, code)
	if err != nil {
		return engine.Result{}, err
	}
	defer mod.Close(context.Background())

	memory := mod.ExportedMemory("memory")
	if memory == nil {
		return engine.Result{}, ErrNoMemory
	}
	entrypoint := mod.ExportedFunction(entrypointName)
	if entrypoint == nil {
		return engine.Result{}, ErrNoEntrypoint
	}

	if err := x.attach(memory, e.options.ArenaPages); err != nil {
		return engine.Result{}, err
	}
	params, err := args(x)
	if err != nil {
		return engine.Result{}, err
	}

	results, err := entrypoint.Call(ctx, params...)
	if x.fault != nil {
		return engine.Result{}, x.fault
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return engine.Result{}, fmt.Errorf("%w: %v", ErrTimeout, ctxErr)
		}
		return engine.Result{}, fmt.Errorf("%w: %v", ErrTrap, err)
	}
	if len(results) == 0 {
		return engine.Result{}, nil
	}
	return engine.Result{Code: api.DecodeI32(results[0]), HasResult: true}, nil
}

func (e *Engine) moduleConfig() wazero.ModuleConfig {
	return wazero.NewModuleConfig().
		WithName(uuid.NewString()).
		WithStartFunctions()
}

// instantiate creates a fresh instance of code, compiling it on a cache miss.
func (e *Engine) instantiate(ctx context.Context, code []byte) (api.Module, error) {
	key := moduleKey(code)

	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return nil, ErrClosed
	}
	if compiled, ok := e.modules.Get(key); ok {
		mod, err := e.runtime.InstantiateModule(ctx, compiled, e.moduleConfig())
		e.mu.RUnlock()
		return mod, wrapInstantiate(err)
	}
	e.mu.RUnlock()

	compiled, err := e.runtime.CompileModule(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompile, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		_ = compiled.Close(ctx)
		return nil, ErrClosed
	}
	if existing, ok := e.modules.Get(key); ok {
		_ = compiled.Close(ctx)
		compiled = existing
	} else {
		e.modules.Add(key, compiled)
		if e.metrics != nil {
			e.metrics.SetCompiledModules(e.modules.Len())
		}
	}
	mod, err := e.runtime.InstantiateModule(ctx, compiled, e.moduleConfig())
	return mod, wrapInstantiate(err)
}

func wrapInstantiate(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInstantiate, err)
}

func moduleKey(code []byte) string {
	sum := sha512.Sum512(code)
	return hex.EncodeToString(sum[:])
}

// CompiledModules returns the number of cached compiled modules.
func (e *Engine) CompiledModules() int {
	return e.modules.Len()
}

// Close releases compiled modules and the runtime.
func (e *Engine) Close(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	e.modules.Purge()
	return errors.Join(e.runtime.Close(ctx), e.cache.Close(ctx))
}
