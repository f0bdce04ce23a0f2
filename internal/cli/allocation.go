package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/relief/internal/wire"
)

var allocationCmd = &cobra.Command{
	Use:   "allocation",
	Short: "Inspect and advance allocation records",
	Long:  "List allocation rows and advance their delivery status.",
}

var allocationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List allocations",
	RunE: func(cmd *cobra.Command, args []string) error {
		donationID, _ := cmd.Flags().GetString("donation")
		campID, _ := cmd.Flags().GetString("camp")
		status, _ := cmd.Flags().GetString("status")

		return wire.AllocationAdapter().List(context.Background(), donationID, campID, status)
	},
}

var allocationStatusCmd = &cobra.Command{
	Use:   "status [allocation-id] [status]",
	Short: "Advance an allocation's delivery status",
	Long: `Advance an allocation's delivery status. Valid transitions:
Pending -> Delivered -> Received.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, status := args[0], args[1]

		if err := wire.AllocationService().UpdateAllocationStatus(context.Background(), id, status); err != nil {
			return fmt.Errorf("failed to update allocation status: %w", err)
		}

		fmt.Printf("✓ Allocation %s marked %s\n", id, status)
		return nil
	},
}

// AllocationCmd returns the allocation command
func AllocationCmd() *cobra.Command {
	allocationListCmd.Flags().StringP("donation", "d", "", "Filter by donation ID")
	allocationListCmd.Flags().StringP("camp", "c", "", "Filter by camp ID")
	allocationListCmd.Flags().StringP("status", "s", "", "Filter by status (Pending, Delivered, Received)")

	allocationCmd.AddCommand(allocationListCmd)
	allocationCmd.AddCommand(allocationStatusCmd)

	return allocationCmd
}
