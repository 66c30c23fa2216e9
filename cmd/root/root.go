// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hsaledger/internal/common"
	"hsaledger/internal/config"
	"hsaledger/internal/container"
	"hsaledger/internal/logging"
	"hsaledger/internal/rasterize"
	"hsaledger/internal/store"
)

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// DataDir and ReceiptsDir override the configured directories
	// when set on the command line.
	DataDir     string
	ReceiptsDir string

	appContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "hsaledger",
		Short: "Track HSA medical expenses from scanned receipts.",
		Long: `hsaledger ingests scanned medical receipts, extracts the expense
fields with a vision model, archives the source documents and keeps an
append-only yearly ledger of healthcare spending.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to hsaledger!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: persistentPreRun,
	}
)

// Init initializes the root command and all persistent flags
func Init() {
	Cmd.PersistentFlags().StringVar(&DataDir, "data-dir", "", "Directory holding the ledger partitions (default from config)")
	Cmd.PersistentFlags().StringVar(&ReceiptsDir, "receipts-dir", "", "Directory holding the receipt archive (default from config)")
}

// persistentPreRun loads configuration, configures logging and builds
// the dependency container before any subcommand runs.
func persistentPreRun(cmd *cobra.Command, args []string) {
	config.LoadEnv()

	cfg, err := config.InitializeConfig()
	if err != nil {
		Log.Fatalf("Failed to load configuration: %v", err)
	}

	if DataDir != "" {
		cfg.Data.Dir = DataDir
	}
	if ReceiptsDir != "" {
		cfg.Receipts.Dir = ReceiptsDir
	}

	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	logging.SetLogger(logger)
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logging.SetAllLogLevels(level)
	}
	Log = logger

	// Packages holding their own logger copy pick up the configured one.
	common.SetLogger(logger)
	store.SetLogger(logger)
	rasterize.SetLogger(logger)

	appContainer, err = container.NewContainer(cmd.Context(), cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize application: %v", err)
	}
}

// GetContainer returns the dependency container built by the
// persistent pre-run hook. It is nil until a command runs.
func GetContainer() *container.Container {
	return appContainer
}

// SetContainer replaces the container; tests use this to inject a
// container wired around mocks.
func SetContainer(c *container.Container) {
	appContainer = c
}
