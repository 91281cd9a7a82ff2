package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/snf/qa-bot-core/qabot"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	storePath  string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "qa-bot",
	Short: "Terminal host for the Q&A chat widget core",
	Long: `A terminal host for the qa-bot widget core.

It drives the same session, history and question/answer machinery the
embeddable widget uses, against a local SQLite store.

Quick Start:
  qa-bot chat                      # Start an interactive conversation
  qa-bot list                      # List saved conversations
  qa-bot show <session-id>         # View a saved conversation
  qa-bot export --format md        # Export conversations as Markdown

Configuration is read from ~/.qa-bot/config.yaml (see --config); the
Q&A endpoint can also be set with --endpoint or the QA_BOT_ENDPOINT
environment variable.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		qabot.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.qa-bot/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Session store database (default ~/.qa-bot/qabot.db)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// loadFileConfig reads the YAML config, defaulting to ~/.qa-bot/config.yaml.
// A missing file yields the zero config.
func loadFileConfig() (qabot.FileConfig, error) {
	path := configPath
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return qabot.FileConfig{}, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, ".qa-bot", "config.yaml")
	}
	cfg, err := qabot.LoadConfigFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return cfg, nil
}

// resolveStorePath picks the database location: flag, then config, then the
// default under the user's home directory.
func resolveStorePath(cfg qabot.FileConfig) (string, error) {
	if storePath != "" {
		return storePath, nil
	}
	if cfg.StorePath != "" {
		return cfg.StorePath, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(homeDir, ".qa-bot")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return filepath.Join(dir, "qabot.db"), nil
}

// openStorage opens the session store for the read-only commands (list,
// show, export). The returned cleanup closes the database.
func openStorage() (*qabot.SessionStorage, func() error, error) {
	cfg, err := loadFileConfig()
	if err != nil {
		return nil, nil, err
	}
	path, err := resolveStorePath(cfg)
	if err != nil {
		return nil, nil, err
	}
	db, err := qabot.OpenDatabase(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open session store: %w", err)
	}
	storage := qabot.NewSessionStorage(qabot.NewSQLiteKV(db), 0)
	return storage, db.Close, nil
}
