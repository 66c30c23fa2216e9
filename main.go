package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"hsaledger/cmd/add"
	"hsaledger/cmd/batch"
	"hsaledger/cmd/categorize"
	"hsaledger/cmd/report"
	"hsaledger/cmd/root"
	"hsaledger/cmd/scan"
	"hsaledger/cmd/validate"
	"hsaledger/internal/config"
	"hsaledger/internal/logging"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	config.LoadEnv()

	// 2. Force the configured level on all existing and future loggers
	logging.SetAllLogLevels(configureLogLevel())

	// 3. Now that logging is configured, initialize the root command
	root.Init()

	// 4. Add all subcommands
	root.Cmd.AddCommand(scan.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(add.Cmd)
	root.Cmd.AddCommand(validate.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
}

// configureLogLevel reads LOG_LEVEL before the full configuration is
// available, so even the earliest startup logging honors it.
func configureLogLevel() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
