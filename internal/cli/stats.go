package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/emberhollow/stockpile/internal/catalog"
	"github.com/emberhollow/stockpile/internal/stack"
)

func newStatsCommand(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <container-id>",
		Short: "Show slot usage and stack packing statistics for a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, store, err := openService(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			c, err := svc.GetContainer(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "container %s (%s, owner %s)\n", c.ID, c.Type, c.OwnerID)
			fmt.Fprintf(out, "version %d, %d/%d slots used\n", c.Version, len(c.Slots)-c.EmptySlotCount(), len(c.Slots))

			quantities := map[string][]stack.Quantity{}
			for _, s := range c.Slots {
				if s == nil {
					continue
				}
				quantities[s.ItemID] = append(quantities[s.ItemID], s.Count)
			}
			itemIDs := make([]string, 0, len(quantities))
			for itemID := range quantities {
				itemIDs = append(itemIDs, itemID)
			}
			sort.Strings(itemIDs)

			registry := catalog.Default()
			for _, itemID := range itemIDs {
				max, err := registry.MaxStackSize(itemID)
				if err != nil {
					max = stack.MaxStackLimit
				}
				stats, err := stack.Summarize(quantities[itemID], max)
				if err != nil {
					return fmt.Errorf("summarize %s: %w", itemID, err)
				}
				fmt.Fprintf(out, "  %-24s %4d items in %d stacks (optimal %d, efficiency %.2f)\n",
					itemID, stats.TotalItems, stats.TotalStacks, stats.MaxPossibleStacks, stats.Efficiency)
			}
			return nil
		},
	}
}
