package wasm

import (
	"go.uber.org/fx"

	corelog "github.com/dgc-network/smart/internal/core/infrastructure/log"
	"github.com/dgc-network/smart/pkg/interfaces/config"
	"github.com/dgc-network/smart/pkg/interfaces/engine"
	"github.com/dgc-network/smart/pkg/interfaces/infrastructure/log"
	"github.com/dgc-network/smart/pkg/interfaces/infrastructure/metrics"
)

// ModuleParams are the dependencies of the wasm module.
type ModuleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Provider  config.Provider
	Logger    log.Logger       `optional:"true"`
	Metrics   metrics.Recorder `optional:"true"`
}

type ModuleOutput struct {
	fx.Out

	Engine   *Engine
	Executor engine.ContractExecutor
}

// Module provides the wazero engine as the contract executor.
func Module() fx.Option {
	return fx.Module("wasm",
		fx.Provide(ProvideServices),
	)
}

func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	e, err := New(Params{
		Options:       params.Provider.GetEngine(),
		Logger:        corelog.NewModuleLogger(params.Logger, "wasm"),
		ContractLevel: params.Provider.GetLog().ContractLevel,
		Metrics:       params.Metrics,
	})
	if err != nil {
		return ModuleOutput{}, err
	}
	params.Lifecycle.Append(fx.Hook{OnStop: e.Close})
	return ModuleOutput{Engine: e, Executor: e}, nil
}
