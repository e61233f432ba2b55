// Package app wires the processor components into one fx application and
// applies transactions against the local badger store.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/dgc-network/smart/internal/core/engine/wasm"
	"github.com/dgc-network/smart/internal/core/handler"
	badgerstore "github.com/dgc-network/smart/internal/core/infrastructure/storage/badger"
	"github.com/dgc-network/smart/pkg/interfaces/config"
	"github.com/dgc-network/smart/pkg/interfaces/infrastructure/event"
	"github.com/dgc-network/smart/pkg/interfaces/infrastructure/log"
	"github.com/dgc-network/smart/pkg/interfaces/infrastructure/metrics"
	"github.com/dgc-network/smart/pkg/types"
)

const (
	startTimeout = 30 * time.Second
	stopTimeout  = 30 * time.Second
)

// components are pulled out of the container after construction.
type components struct {
	Provider config.Provider
	Logger   log.Logger
	Handler  *handler.Handler
	Engine   *wasm.Engine
	Store    *badgerstore.Store
	Events   event.EventBus
	Metrics  metrics.Recorder
}

// App is a started processor.
type App struct {
	components
	bootstrap *Bootstrap
}

// Start builds and starts the application.
func Start(opts ...Option) (*App, error) {
	bootstrap := NewBootstrap(newOptions(opts...))

	a := &App{bootstrap: bootstrap}
	if err := bootstrap.CreateFxApp(&a.components); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()
	if err := bootstrap.StartApp(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// Stop runs the stop hooks: engine, store and event bus shut down here.
func (a *App) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return a.bootstrap.StopApp(ctx)
}

// Apply runs request in its own store transaction, committing only when the
// handler accepts it.
func (a *App) Apply(ctx context.Context, request *types.ProcessRequest) error {
	txn, err := a.Store.Begin()
	if err != nil {
		return types.WrapInternalError(err, "Cannot open state transaction")
	}
	defer txn.Discard()

	if err := a.Handler.Apply(ctx, request, txn); err != nil {
		return err
	}
	if err := txn.Commit(); err != nil {
		return types.WrapInternalError(err, "Cannot commit state")
	}
	return nil
}
