package metrics

import (
	"go.uber.org/fx"

	"github.com/dgc-network/smart/pkg/interfaces/config"
	logInterface "github.com/dgc-network/smart/pkg/interfaces/infrastructure/log"
	"github.com/dgc-network/smart/pkg/interfaces/infrastructure/metrics"
)

// Module provides the metrics.Recorder. Disabled metrics yield Nop.
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(ProvideServices),
	)
}

type ModuleParams struct {
	fx.In

	Provider config.Provider
	Logger   logInterface.Logger `optional:"true"`
}

type ModuleOutput struct {
	fx.Out

	Recorder   metrics.Recorder
	Prometheus *Recorder
}

func ProvideServices(params ModuleParams) ModuleOutput {
	options := params.Provider.GetMetrics()
	if options == nil || !options.Enabled {
		if params.Logger != nil {
			params.Logger.Info("metrics disabled")
		}
		return ModuleOutput{Recorder: Nop{}}
	}

	recorder := New(options)
	if params.Logger != nil {
		params.Logger.Infof("metrics enabled: namespace=%s", options.Namespace)
	}
	return ModuleOutput{Recorder: recorder, Prometheus: recorder}
}
