package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/dgc-network/smart/configs"
	"github.com/dgc-network/smart/internal/app"
	"github.com/dgc-network/smart/internal/app/version"
	config "github.com/dgc-network/smart/internal/config"
	"github.com/dgc-network/smart/internal/core/infrastructure/storage/badger"
	"github.com/dgc-network/smart/internal/core/state"
	"github.com/dgc-network/smart/pkg/types"
)

type GlobalFlags struct {
	ConfigFile string
	Profile    string
	DataDir    string
	Verbose    bool
}

var globalFlags GlobalFlags

var rootCmd = &cobra.Command{
	Use:           "smart-tp",
	Short:         "Smart contract transaction processor tools",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigFile, "config", "c", "", "JSON configuration file")
	defaultProfile := "development"
	if version.IsProductionBuild() {
		defaultProfile = "production"
	}
	rootCmd.PersistentFlags().StringVar(&globalFlags.Profile, "profile", defaultProfile, "embedded configuration used without --config (development|production)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.DataDir, "data-dir", "", "data directory (overrides data_dir)")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "log at the configured level instead of warn")

	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(payloadCmd)
	rootCmd.AddCommand(genesisCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(addressCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadAppConfig reads --config, or the embedded profile when it is unset,
// and applies the global flag overrides.
func loadAppConfig() (*types.AppConfig, error) {
	var appConfig *types.AppConfig
	if globalFlags.ConfigFile != "" {
		loaded, err := config.LoadFile(globalFlags.ConfigFile)
		if err != nil {
			return nil, err
		}
		appConfig = loaded
	} else {
		loaded, err := embeddedProfile(globalFlags.Profile)
		if err != nil {
			return nil, err
		}
		appConfig = loaded
	}
	if globalFlags.DataDir != "" {
		appConfig.DataDir = types.StringPtr(globalFlags.DataDir)
	}
	if !globalFlags.Verbose {
		if appConfig.Log == nil {
			appConfig.Log = &types.UserLogConfig{}
		}
		appConfig.Log.Level = types.StringPtr("warn")
	}
	return appConfig, nil
}

func embeddedProfile(profile string) (*types.AppConfig, error) {
	var data []byte
	switch profile {
	case "", "development":
		data = configs.GetDevelopmentConfig()
	case "production":
		data = configs.GetProductionConfig()
	default:
		return nil, fmt.Errorf("unknown profile %q", profile)
	}
	appConfig := &types.AppConfig{}
	if err := json.Unmarshal(data, appConfig); err != nil {
		return nil, fmt.Errorf("parse %s profile: %w", profile, err)
	}
	return appConfig, nil
}

// withApp starts the processor for the duration of fn.
func withApp(fn func(*app.App) error) (err error) {
	appConfig, err := loadAppConfig()
	if err != nil {
		return err
	}
	a, err := app.Start(app.WithAppConfig(appConfig))
	if err != nil {
		return err
	}
	defer func() {
		if stopErr := a.Stop(); err == nil {
			err = stopErr
		}
	}()
	return fn(a)
}

// updateState runs fn in one store transaction and commits it when fn
// succeeds.
func updateState(store *badger.Store, fn func(*state.Accessor) error) error {
	txn, err := store.Begin()
	if err != nil {
		return err
	}
	defer txn.Discard()

	if err := fn(state.NewAccessor(txn)); err != nil {
		return err
	}
	return txn.Commit()
}
