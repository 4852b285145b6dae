// Package cli implements the command-line interface for cubeanim.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeanim/internal/config"
	"github.com/SeamusWaldron/cubeanim/internal/logging"
	"github.com/SeamusWaldron/cubeanim/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	dbPath     string
	verbose    bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubeanim",
	Short: "Animated 3x3x3 twisty puzzle",
	Long: `cubeanim - an animated 3x3x3 twisty puzzle.

Play it in the terminal, or serve it over HTTP and websockets so a renderer
can draw the per-slot transforms. Committed turns can be journaled to SQLite
and reviewed later.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.cubeanim/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Journal database path (default: ~/.cubeanim/journal.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// loadConfig loads the config file named by --config, or the default one.
func loadConfig() (config.Config, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if dbPath != "" {
		cfg.Storage.DBPath = dbPath
	}
	return cfg, nil
}

// newLogger builds the logger for a command. Terminal output goes to w,
// which is nil while a TUI owns the screen.
func newLogger(cfg config.Config, w io.Writer) (*logging.Logger, error) {
	return logging.New(logging.Options{
		Level:    cfg.Log.Level,
		Terminal: w,
		File:     cfg.Log.File,
	})
}

// journalPath returns the configured journal path or the default.
func journalPath(cfg config.Config) (string, error) {
	if cfg.Storage.DBPath != "" {
		return cfg.Storage.DBPath, nil
	}
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return storage.DefaultDBPath(dir)
}

// openDB opens and migrates the journal.
func openDB(cfg config.Config) (*storage.DB, error) {
	path, err := journalPath(cfg)
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}
