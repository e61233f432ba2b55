package event

import (
	"context"

	"go.uber.org/fx"

	eventconfig "github.com/dgc-network/smart/internal/config/event"
	"github.com/dgc-network/smart/pkg/interfaces/config"
	eventInterface "github.com/dgc-network/smart/pkg/interfaces/infrastructure/event"
	"github.com/dgc-network/smart/pkg/interfaces/infrastructure/log"
)

type ModuleInput struct {
	fx.In

	Provider  config.Provider
	Logger    log.Logger `optional:"true"`
	Lifecycle fx.Lifecycle
}

type ModuleOutput struct {
	fx.Out

	EventBus eventInterface.EventBus
}

// Module provides the event bus.
func Module() fx.Option {
	return fx.Module("event",
		fx.Provide(ProvideServices),
	)
}

func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	options := input.Provider.GetEvent()
	if options == nil {
		options = eventconfig.New(nil).GetOptions()
	}
	bus := New(eventconfig.NewFromOptions(options))

	if input.Logger != nil {
		input.Logger.Infof("event bus ready: enabled=%t prefix=%q history=%d",
			options.Enabled, options.TopicPrefix, options.HistorySize)
	}

	// drain async subscribers before shutdown
	input.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			bus.WaitAsync()
			return nil
		},
	})

	return ModuleOutput{EventBus: bus}, nil
}
