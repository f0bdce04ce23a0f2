package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/relief/internal/ports/primary"
	"github.com/example/relief/internal/wire"
)

var campCmd = &cobra.Command{
	Use:   "camp",
	Short: "Inspect camps and update occupancy",
	Long:  "List camps, show occupancy details, and run the occupancy monitor.",
}

var campListCmd = &cobra.Command{
	Use:   "list",
	Short: "List relief camps",
	RunE: func(cmd *cobra.Command, args []string) error {
		disasterID, _ := cmd.Flags().GetString("disaster")
		status, _ := cmd.Flags().GetString("status")

		camps, err := wire.CampService().ListCamps(context.Background(), primary.CampFilters{
			DisasterID: disasterID,
			Status:     status,
		})
		if err != nil {
			return fmt.Errorf("failed to list camps: %w", err)
		}

		if len(camps) == 0 {
			fmt.Println("No camps found")
			return nil
		}

		fmt.Printf("\n%-10s %-25s %-10s %9s %10s %7s %-12s\n", "ID", "NAME", "DISASTER", "CAPACITY", "OCCUPANCY", "RATIO", "STATUS")
		fmt.Println("──────────────────────────────────────────────────────────────────────────────────────────")
		for _, c := range camps {
			fmt.Printf("%-10s %-25s %-10s %9d %10d %6.0f%% %-12s\n",
				c.ID, c.Name, c.DisasterID, c.Capacity, c.CurrentOccupancy, c.OccupancyRatio*100, c.Status)
		}
		fmt.Println()

		return nil
	},
}

var campShowCmd = &cobra.Command{
	Use:   "show [camp-id]",
	Short: "Show camp details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := wire.CampService().GetCamp(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get camp: %w", err)
		}

		fmt.Printf("\nCamp: %s\n", c.ID)
		fmt.Printf("Name:      %s\n", c.Name)
		fmt.Printf("Disaster:  %s [%s]\n", c.DisasterID, c.DisasterSeverity)
		fmt.Printf("Capacity:  %d\n", c.Capacity)
		fmt.Printf("Occupancy: %d (%.0f%%)\n", c.CurrentOccupancy, c.OccupancyRatio*100)
		fmt.Printf("Status:    %s\n", c.Status)
		fmt.Println()

		return nil
	},
}

var campOccupancyCmd = &cobra.Command{
	Use:   "occupancy [camp-id] [count]",
	Short: "Update a camp's occupancy",
	Long: `Write a new occupancy figure and run the occupancy monitor: a ratio
above the configured threshold flags the camp Overcrowded, dropping
back reverts it to Active. Closed camps keep their status.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		occupancy, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid occupancy %q: %w", args[1], err)
		}

		resp, err := wire.CampService().UpdateOccupancy(context.Background(), primary.UpdateOccupancyRequest{
			CampID:    args[0],
			Occupancy: occupancy,
		})
		if err != nil {
			return fmt.Errorf("failed to update occupancy: %w", err)
		}

		fmt.Printf("✓ Camp %s occupancy set to %d (%.0f%%)\n", resp.CampID, resp.Occupancy, resp.OccupancyRatio*100)
		if resp.StatusChanged {
			fmt.Printf("  Status changed to %s\n", resp.Status)
		}
		return nil
	},
}

// CampCmd returns the camp command
func CampCmd() *cobra.Command {
	campListCmd.Flags().StringP("disaster", "d", "", "Filter by disaster ID")
	campListCmd.Flags().StringP("status", "s", "", "Filter by status (Active, Overcrowded, Closed)")

	campCmd.AddCommand(campListCmd)
	campCmd.AddCommand(campShowCmd)
	campCmd.AddCommand(campOccupancyCmd)

	return campCmd
}
