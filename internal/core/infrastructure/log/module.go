package log

import (
	"fmt"

	logconfig "github.com/dgc-network/smart/internal/config/log"
	"github.com/dgc-network/smart/pkg/interfaces/config"
	logInterface "github.com/dgc-network/smart/pkg/interfaces/infrastructure/log"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ModuleParams are the dependencies of the log module.
type ModuleParams struct {
	fx.In

	Provider config.Provider
}

// ModuleOutput exposes the logger in both forms.
type ModuleOutput struct {
	fx.Out

	Logger    logInterface.Logger
	ZapLogger *zap.Logger
}

// Module provides the application logger.
func Module() fx.Option {
	return fx.Module("log",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices builds the logger from configuration and installs it as the
// package level logger.
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	logger, err := New(logconfig.NewFromOptions(params.Provider.GetLog()))
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("create logger from configuration: %w", err)
	}

	SetLogger(logger)

	return ModuleOutput{
		Logger:    logger,
		ZapLogger: logger.GetZapLogger(),
	}, nil
}

// NewModuleLogger tags a logger with the owning module name.
func NewModuleLogger(baseLogger logInterface.Logger, module string) logInterface.Logger {
	if baseLogger == nil {
		return NewNop()
	}
	return baseLogger.With("module", module)
}
