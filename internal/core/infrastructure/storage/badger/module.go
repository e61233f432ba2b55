package badger

import (
	"context"

	"go.uber.org/fx"

	badgerconfig "github.com/dgc-network/smart/internal/config/storage/badger"
	corelog "github.com/dgc-network/smart/internal/core/infrastructure/log"
	"github.com/dgc-network/smart/pkg/interfaces/infrastructure/log"
)

type ModuleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Options   *badgerconfig.BadgerOptions
	Logger    log.Logger `optional:"true"`
}

// Module provides the badger state store and closes it on stop.
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(ProvideStore),
	)
}

func ProvideStore(params ModuleParams) (*Store, error) {
	store, err := New(params.Options, corelog.NewModuleLogger(params.Logger, "storage"))
	if err != nil {
		return nil, err
	}
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return store.Close()
		},
	})
	return store, nil
}
