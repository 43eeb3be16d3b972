// Package cli implements the stockpile command line interface.
package cli

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/emberhollow/stockpile/internal/catalog"
	"github.com/emberhollow/stockpile/internal/item"
	platformcmd "github.com/emberhollow/stockpile/internal/platform/cmd"
	"github.com/emberhollow/stockpile/internal/service"
	"github.com/emberhollow/stockpile/internal/storage/sqlite"
)

// Config holds the engine's environment configuration. Every variable is
// read with the STOCKPILE_ prefix.
type Config struct {
	DBPath   string `env:"DB_PATH" envDefault:"stockpile.sqlite"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Logger builds the console logger used by all commands.
func Logger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).With().Timestamp().Logger().Level(parsed)
}

// NewRootCommand builds the stockpile CLI.
func NewRootCommand(version string) *cobra.Command {
	cfg := Config{}

	root := &cobra.Command{
		Use:           "stockpile",
		Short:         "Inventory storage engine: containers, item stacks, and their event journal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Env defaults first; flags set on the command line win.
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			parsed := Config{}
			if err := platformcmd.ParseConfig(&parsed); err != nil {
				return err
			}
			if !changed["db"] {
				cfg.DBPath = parsed.DBPath
			}
			if !changed["log-level"] {
				cfg.LogLevel = parsed.LogLevel
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfg.DBPath, "db", "stockpile.sqlite", "path to the SQLite database")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")

	root.AddCommand(
		newImportCatalogCommand(&cfg),
		newSeedCommand(&cfg),
		newStatsCommand(&cfg),
		newJournalCommand(&cfg),
		newReplayCommand(&cfg),
	)
	return root
}

// openService opens the store at the configured path and wires the service.
// The returned store's Close must be deferred by the caller.
func openService(cfg *Config) (*service.InventoryService, *sqlite.Store, error) {
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	svc := service.NewInventoryService(store, catalog.Default(), Logger(cfg.LogLevel))
	return svc, store, nil
}

func totalItems(slots []*item.Stack) int {
	total := 0
	for _, s := range slots {
		if s != nil {
			total += s.Count.Int()
		}
	}
	return total
}
