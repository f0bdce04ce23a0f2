package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/relief/internal/wire"
)

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Plan and run donation-to-camp allocations",
	Long:  "Preview the allocation plan, inspect the donation pool, and apply allocations.",
}

var allocatePoolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Show the unallocated donation pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.AllocationAdapter().Pool(context.Background())
	},
}

var allocatePlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Preview the allocation plan without applying it",
	Long: `Match the donation pool against current shortages and print the
proposed transfers. Shortages are served worst-first (disaster severity,
then deficit size); donations are consumed oldest-first. Nothing is
written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resourceType, _ := cmd.Flags().GetString("resource")
		return wire.AllocationAdapter().Plan(context.Background(), resourceType)
	},
}

var allocateRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Compute and apply the allocation plan",
	Long: `Compute the allocation plan and apply it proposal by proposal. Each
proposal is re-validated against current rows inside a transaction;
proposals invalidated by concurrent writes are skipped and reported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resourceType, _ := cmd.Flags().GetString("resource")
		return wire.AllocationAdapter().Run(context.Background(), resourceType)
	},
}

// AllocateCmd returns the allocate command
func AllocateCmd() *cobra.Command {
	allocatePlanCmd.Flags().StringP("resource", "r", "", "Limit planning to one resource type")
	allocateRunCmd.Flags().StringP("resource", "r", "", "Limit the run to one resource type")

	allocateCmd.AddCommand(allocatePoolCmd)
	allocateCmd.AddCommand(allocatePlanCmd)
	allocateCmd.AddCommand(allocateRunCmd)

	return allocateCmd
}
