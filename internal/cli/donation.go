package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/relief/internal/ports/primary"
	"github.com/example/relief/internal/wire"
)

var donationCmd = &cobra.Command{
	Use:   "donation",
	Short: "Manage donations",
	Long:  "Record donations, inspect their allocation state, and edit their status.",
}

var donationRecordCmd = &cobra.Command{
	Use:   "record [donor] [resource-type] [quantity]",
	Short: "Record a new donation",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %w", args[2], err)
		}

		resp, err := wire.DonationService().RecordDonation(context.Background(), primary.RecordDonationRequest{
			DonorName:       args[0],
			ResourceType:    args[1],
			QuantityDonated: quantity,
		})
		if err != nil {
			return fmt.Errorf("failed to record donation: %w", err)
		}

		fmt.Printf("✓ Recorded donation %s: %d %s from %s\n",
			resp.DonationID, resp.Donation.QuantityDonated, resp.Donation.ResourceType, resp.Donation.DonorName)
		return nil
	},
}

var donationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List donations",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		resourceType, _ := cmd.Flags().GetString("resource")

		donations, err := wire.DonationService().ListDonations(context.Background(), primary.DonationFilters{
			Status:       status,
			ResourceType: resourceType,
		})
		if err != nil {
			return fmt.Errorf("failed to list donations: %w", err)
		}

		if len(donations) == 0 {
			fmt.Println("No donations found")
			return nil
		}

		fmt.Printf("\n%-10s %-25s %-18s %8s %10s %-12s\n", "ID", "DONOR", "RESOURCE", "DONATED", "ALLOCATED", "STATUS")
		fmt.Println("────────────────────────────────────────────────────────────────────────────────────")
		for _, d := range donations {
			fmt.Printf("%-10s %-25s %-18s %8d %10d %-12s\n",
				d.ID, d.DonorName, d.ResourceType, d.QuantityDonated, d.AllocatedTotal, d.Status)
		}
		fmt.Println()

		return nil
	},
}

var donationShowCmd = &cobra.Command{
	Use:   "show [donation-id]",
	Short: "Show donation details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := wire.DonationService().GetDonation(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get donation: %w", err)
		}

		fmt.Printf("\nDonation: %s\n", d.ID)
		fmt.Printf("Donor:       %s\n", d.DonorName)
		fmt.Printf("Resource:    %s\n", d.ResourceType)
		fmt.Printf("Donated:     %d\n", d.QuantityDonated)
		fmt.Printf("Allocated:   %d\n", d.AllocatedTotal)
		fmt.Printf("Unallocated: %d\n", d.Unallocated)
		fmt.Printf("Status:      %s\n", d.Status)
		if d.CreatedAt != "" {
			fmt.Printf("Created:     %s\n", d.CreatedAt)
		}
		fmt.Println()

		return nil
	},
}

var donationStatusCmd = &cobra.Command{
	Use:   "status [donation-id] [status]",
	Short: "Edit a donation's status",
	Long: `Edit a donation's status. Manual transitions: Pending -> Received on
intake confirmation, Allocated -> Distributed on delivery. The Allocated
status itself is set by the allocation engine, not by hand.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, status := args[0], args[1]

		if err := wire.DonationService().UpdateDonationStatus(context.Background(), id, status); err != nil {
			return fmt.Errorf("failed to update donation status: %w", err)
		}

		fmt.Printf("✓ Donation %s marked %s\n", id, status)
		return nil
	},
}

// DonationCmd returns the donation command
func DonationCmd() *cobra.Command {
	donationListCmd.Flags().StringP("status", "s", "", "Filter by status (Pending, Received, Allocated, Distributed)")
	donationListCmd.Flags().StringP("resource", "r", "", "Filter by resource type")

	donationCmd.AddCommand(donationRecordCmd)
	donationCmd.AddCommand(donationListCmd)
	donationCmd.AddCommand(donationShowCmd)
	donationCmd.AddCommand(donationStatusCmd)

	return donationCmd
}
