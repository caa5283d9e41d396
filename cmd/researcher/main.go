package main

import (
	"fmt"
	"os"

	"stock-researcher/internal/cli"
	"stock-researcher/internal/config"
	"stock-researcher/internal/logging"
)

func main() {
	configDir := cli.ConfigDirFromArgs(os.Args[1:])
	if configDir == "" {
		configDir = os.Getenv("RESEARCHER_CONFIG_DIR")
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logCfg := logging.DefaultLogConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Console = cfg.Logging.Console
	logCfg.File = cfg.Logging.File
	logger := logging.NewLoggerWithConfig(logCfg)

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
