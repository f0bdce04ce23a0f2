package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/relief/internal/ports/primary"
	"github.com/example/relief/internal/ports/secondary"
	"github.com/example/relief/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show an overview of the relief operation",
		Long: `Display a summary of the current relief operation: disasters, camp
occupancy, outstanding shortages, and the donation pool.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			fmt.Println("Relief Operation Status")
			fmt.Println()

			disasters, err := wire.DisasterRepo().List(ctx, secondary.DisasterFilters{})
			if err != nil {
				return fmt.Errorf("failed to list disasters: %w", err)
			}
			if len(disasters) == 0 {
				fmt.Println("No disasters registered.")
				fmt.Println("Run `relief disaster create \"...\"` to get started.")
				return nil
			}

			fmt.Println("Disasters:")
			for _, d := range disasters {
				fmt.Printf("  - %s: %s %s %s\n", d.ID, d.Name, severityTag(d.Severity), statusTag(d.Status))
			}
			fmt.Println()

			camps, err := wire.CampService().ListCamps(ctx, primary.CampFilters{})
			if err != nil {
				return fmt.Errorf("failed to list camps: %w", err)
			}
			if len(camps) > 0 {
				fmt.Println("Camps:")
				for _, c := range camps {
					fmt.Printf("  - %s: %s %d/%d (%.0f%%) %s\n",
						c.ID, c.Name, c.CurrentOccupancy, c.Capacity, c.OccupancyRatio*100, campStatusTag(c.Status))
				}
				fmt.Println()
			}

			shortages, err := wire.AllocationService().ListShortages(ctx, primary.ShortageFilters{})
			if err != nil {
				return fmt.Errorf("failed to list shortages: %w", err)
			}
			pool, err := wire.AllocationService().ListPool(ctx)
			if err != nil {
				return fmt.Errorf("failed to list donation pool: %w", err)
			}

			critical := 0
			for _, s := range shortages {
				if s.Band == "Critical" {
					critical++
				}
			}
			poolTotal := 0
			for _, e := range pool {
				poolTotal += e.Unallocated
			}

			if critical > 0 {
				fmt.Printf("Shortages: %d outstanding (%s critical)\n",
					len(shortages), color.New(color.FgRed).Sprintf("%d", critical))
			} else {
				fmt.Printf("Shortages: %d outstanding\n", len(shortages))
			}
			fmt.Printf("Donation pool: %d donations, %d units unallocated\n", len(pool), poolTotal)

			volunteers, err := wire.VolunteerService().ListVolunteers(ctx, primary.VolunteerFilters{AvailabilityStatus: "Available"})
			if err != nil {
				return fmt.Errorf("failed to list volunteers: %w", err)
			}
			fmt.Printf("Volunteers: %d available\n", len(volunteers))

			if len(shortages) > 0 && len(pool) > 0 {
				fmt.Println()
				fmt.Println("Run `relief allocate plan` to preview allocations.")
			}

			return nil
		},
	}
}

// severityTag renders a disaster severity with color
func severityTag(severity string) string {
	tag := fmt.Sprintf("[%s]", severity)
	switch severity {
	case "Critical":
		return color.New(color.FgRed).Sprint(tag)
	case "High":
		return color.New(color.FgYellow).Sprint(tag)
	case "Medium":
		return color.New(color.FgCyan).Sprint(tag)
	case "Low":
		return color.New(color.FgHiBlack).Sprint(tag)
	default:
		return tag
	}
}

// statusTag renders a disaster status with color
func statusTag(status string) string {
	tag := fmt.Sprintf("[%s]", status)
	switch status {
	case "Active", "Ongoing":
		return color.New(color.FgHiBlue).Sprint(tag)
	case "Contained":
		return color.New(color.FgYellow).Sprint(tag)
	case "Resolved":
		return color.New(color.FgHiGreen).Sprint(tag)
	default:
		return tag
	}
}

// campStatusTag renders a camp status with color
func campStatusTag(status string) string {
	tag := fmt.Sprintf("[%s]", status)
	switch status {
	case "Overcrowded":
		return color.New(color.FgRed).Sprint(tag)
	case "Active":
		return color.New(color.FgHiGreen).Sprint(tag)
	case "Closed":
		return color.New(color.FgHiBlack).Sprint(tag)
	default:
		return tag
	}
}
