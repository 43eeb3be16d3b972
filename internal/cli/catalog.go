package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emberhollow/stockpile/internal/catalog"
	"github.com/emberhollow/stockpile/internal/storage/sqlite"
)

func newImportCatalogCommand(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "import-catalog <file>",
		Short: "Import item definitions from a TOML catalog file",
		Example: `  stockpile import-catalog items.toml
  stockpile --db /var/lib/stockpile.sqlite import-catalog items.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := catalog.LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}

			store, err := sqlite.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			log := Logger(cfg.LogLevel)
			for _, def := range registry.All() {
				if err := store.PutDefinition(cmd.Context(), def); err != nil {
					return fmt.Errorf("store definition %q: %w", def.ID, err)
				}
				log.Debug().Str("item_id", def.ID).Msg("definition imported")
			}
			log.Info().Int("definitions", registry.Len()).Str("file", args[0]).Msg("catalog imported")
			return nil
		},
	}
}
