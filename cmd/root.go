package cmd

import (
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/analysis"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/config"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:          "keycut",
	Short:        "MIDI key, chord and rhythm analysis",
	Long:         `Decodes Standard MIDI Files into timed notes and reports their key, chords and rhythm.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cfg, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

func newAnalyzer() (*analysis.Analyzer, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	a, err := analysis.New(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return a, logger, nil
}
