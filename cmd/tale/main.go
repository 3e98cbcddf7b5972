package main

import (
	"fmt"
	"os"

	"github.com/magefree/mage-tale-go/internal/config"
	"github.com/magefree/mage-tale-go/internal/game/catalog"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tale",
		Short:        "A narrative card game played one choice at a time",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "config/tale.yaml", "path to configuration file")

	root.AddCommand(newPlayCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// setup loads configuration, the logger and the catalog shared by subcommands.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, *catalog.Static, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}

	cat, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, cat, nil
}

func loadCatalog(path string) (*catalog.Static, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	// stdout belongs to the game text
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
