package handler

import (
	"go.uber.org/fx"

	corelog "github.com/dgc-network/smart/internal/core/infrastructure/log"
	"github.com/dgc-network/smart/pkg/interfaces/engine"
	"github.com/dgc-network/smart/pkg/interfaces/infrastructure/event"
	"github.com/dgc-network/smart/pkg/interfaces/infrastructure/log"
	"github.com/dgc-network/smart/pkg/interfaces/infrastructure/metrics"
	"github.com/dgc-network/smart/pkg/interfaces/processor"
)

// ModuleParams are the dependencies of the handler module.
type ModuleParams struct {
	fx.In

	Executor engine.ContractExecutor
	Logger   log.Logger       `optional:"true"`
	Metrics  metrics.Recorder `optional:"true"`
	Events   event.EventBus   `optional:"true"`
}

// ModuleOutput exposes the handler as both its concrete type and the
// processor interface.
type ModuleOutput struct {
	fx.Out

	Handler            *Handler
	TransactionHandler processor.TransactionHandler
}

// Module provides the transaction handler.
func Module() fx.Option {
	return fx.Module("handler",
		fx.Provide(ProvideServices),
	)
}

func ProvideServices(params ModuleParams) ModuleOutput {
	h := New(params.Executor, Options{
		Logger:  corelog.NewModuleLogger(params.Logger, "handler"),
		Metrics: params.Metrics,
		Events:  params.Events,
	})
	return ModuleOutput{
		Handler:            h,
		TransactionHandler: h,
	}
}
