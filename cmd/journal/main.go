package main

import (
	"fmt"
	"os"

	"github.com/sahastranshpratap/trading-helping-tool/internal/cli"
	"github.com/sahastranshpratap/trading-helping-tool/internal/config"
	"github.com/sahastranshpratap/trading-helping-tool/internal/logging"
)

func main() {
	cfg, err := config.Load(os.Getenv("JOURNAL_CONFIG_DIR"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logCfg := logging.DefaultLogConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.File = cfg.Logging.File
	logger := logging.NewLoggerWithConfig(logCfg)

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
