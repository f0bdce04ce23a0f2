package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/relief/internal/wire"
)

// ShortageCmd returns the shortage command
func ShortageCmd() *cobra.Command {
	var resourceType string
	var criticalOnly bool

	cmd := &cobra.Command{
		Use:   "shortage",
		Short: "List current camp shortages",
		Long: `Derive the shortage list from current camp inventory: one row per
(camp, resource type) pair where the needed quantity exceeds the
available quantity. Camps of Resolved or Contained disasters are
excluded. Shortages at camps of Critical or High severity disasters
carry a severity band.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.AllocationAdapter().Shortages(context.Background(), resourceType, criticalOnly)
		},
	}

	cmd.Flags().StringVarP(&resourceType, "resource", "r", "", "Filter by resource type")
	cmd.Flags().BoolVar(&criticalOnly, "critical", false, "Only shortages in the Critical band")

	return cmd
}
