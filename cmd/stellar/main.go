package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stellarburgers/cmd/stellar/shell"
	"stellarburgers/internal/app"
	"stellarburgers/internal/config"
	"stellarburgers/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
	startPath  string

	logger *zap.Logger
)

// rootCmd launches the interactive storefront shell.
var rootCmd = &cobra.Command{
	Use:   "stellar",
	Short: "Stellar Burgers - a space burger storefront for your terminal",
	Long: `stellar is a terminal client for the Stellar Burgers backend.

Run without arguments to open the interactive shell: assemble a burger
from the live ingredient catalog, watch the public order feed, and manage
your account and order history.

Subcommands print one-shot snapshots for scripting:
  stellar menu          the current ingredient catalog
  stellar feed          the public order feed
  stellar order 12345   one order by number`,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell()
	},
}

// Assigned in init rather than in the composite literal above because the
// closure references rootCmd, which would be an initialization cycle.
func persistentPreRunE(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	// The shell owns the terminal, so interactive runs log to a file.
	file := cfg.Logging.File
	if cmd == rootCmd && file == "" {
		file = filepath.Join(cfg.DataDir, "stellar.log")
	}
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	logger, err = logging.New(level, file)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	cfg := config.DefaultConfig()
	return config.Load(cfg.DefaultPath())
}

func newApp() (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return app.New(cfg, logger)
}

func runShell() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	p := tea.NewProgram(shell.New(a, startPath), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("shell exited: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentPreRunE = persistentPreRunE
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ~/.stellar/config.yaml)")
	rootCmd.Flags().StringVar(&startPath, "path", "/", "page to open, as an app path like /feed")

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(orderCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
