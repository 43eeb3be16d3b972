package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emberhollow/stockpile/internal/catalog"
	"github.com/emberhollow/stockpile/internal/container"
)

func newSeedCommand(cfg *Config) *cobra.Command {
	var (
		ownerID  string
		skipDemo bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with the built-in catalog and a demo chest",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, store, err := openService(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			log := Logger(cfg.LogLevel)

			defaults := catalog.Default()
			for _, def := range defaults.All() {
				if err := store.PutDefinition(ctx, def); err != nil {
					return fmt.Errorf("store definition %q: %w", def.ID, err)
				}
			}
			log.Info().Int("definitions", defaults.Len()).Msg("built-in catalog seeded")

			if skipDemo {
				return nil
			}

			chest, err := svc.CreateContainer(ctx, container.NewContainerInput{
				Type:        container.TypeChest,
				OwnerID:     ownerID,
				AccessLevel: container.AccessPrivate,
			})
			if err != nil {
				return fmt.Errorf("create demo chest: %w", err)
			}
			if _, err := svc.OpenContainer(ctx, chest.ID, ownerID); err != nil {
				return fmt.Errorf("open demo chest: %w", err)
			}
			for _, seed := range []struct {
				itemID string
				count  int
			}{
				{"cobblestone", 64},
				{"oak_planks", 32},
				{"apple", 12},
			} {
				stack, err := svc.CreateStack(ctx, seed.itemID, seed.count)
				if err != nil {
					return fmt.Errorf("create %s stack: %w", seed.itemID, err)
				}
				if _, _, err := svc.AddItem(ctx, chest.ID, ownerID, stack); err != nil {
					return fmt.Errorf("stock demo chest: %w", err)
				}
			}

			log.Info().Str("container_id", chest.ID).Str("owner_id", ownerID).Msg("demo chest seeded")
			fmt.Fprintln(cmd.OutOrStdout(), chest.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&ownerID, "owner", "steve", "owner of the demo chest")
	cmd.Flags().BoolVar(&skipDemo, "catalog-only", false, "seed only the catalog, no demo container")
	return cmd
}
