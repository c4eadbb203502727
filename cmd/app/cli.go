package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"refdataservice/internal/config"
	"refdataservice/internal/logging"
	"refdataservice/internal/version"
)

var (
	cfgFile    string
	logLevel   string
	forceReset bool
)

var rootCmd = &cobra.Command{
	Use:           "refdata",
	Short:         "Reference data store for relayed rates",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the relay worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		logger.Infow("Starting Reference Data Service",
			"port", cfg.Server.Port, "storage", cfg.Storage.Driver, "version", version.Version)

		app, err := NewApp(cfg, logger)
		if err != nil {
			logger.Errorw("Failed to initialize app", "error", err)
			return err
		}
		if cfg.Storage.AutoInit {
			if _, err := app.svc.Bootstrap(cmd.Context()); err != nil {
				_ = app.close()
				return fmt.Errorf("bootstrap store: %w", err)
			}
		}
		return app.Run(cmd.Context())
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configured slot with an empty mapping",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		// init never talks to the task queue.
		cfg.Worker.Enabled = false
		app, err := NewApp(cfg, logger)
		if err != nil {
			return err
		}

		if forceReset {
			err = app.svc.Initialize(cmd.Context())
		} else {
			var created bool
			created, err = app.svc.Bootstrap(cmd.Context())
			if err == nil && !created {
				err = errors.New("store already initialized, use --force to discard existing data")
			}
		}
		return errors.Join(err, app.close())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "version: %s\ncommit: %s\nbuilt: %s\n", version.Version, version.Commit, version.BuildDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level defined in config")
	initCmd.Flags().BoolVar(&forceReset, "force", false, "Discard existing data")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func setup() (*config.Config, *zap.SugaredLogger, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}
