package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/relief/internal/ports/secondary"
	"github.com/example/relief/internal/wire"
)

var disasterCmd = &cobra.Command{
	Use:   "disaster",
	Short: "Manage disaster records",
	Long:  "Create, list, and update the disasters that camps belong to.",
}

var disasterCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Register a new disaster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		severity, _ := cmd.Flags().GetString("severity")

		ctx := context.Background()
		repo := wire.DisasterRepo()

		id, err := repo.GetNextID(ctx)
		if err != nil {
			return fmt.Errorf("failed to get next disaster ID: %w", err)
		}

		disaster := &secondary.DisasterRecord{
			ID:       id,
			Name:     args[0],
			Severity: severity,
			Status:   "Active",
		}
		if err := repo.Create(ctx, disaster); err != nil {
			return fmt.Errorf("failed to create disaster: %w", err)
		}

		fmt.Printf("✓ Created disaster %s: %s [%s]\n", disaster.ID, disaster.Name, disaster.Severity)
		return nil
	},
}

var disasterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List disasters",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		severity, _ := cmd.Flags().GetString("severity")

		disasters, err := wire.DisasterRepo().List(context.Background(), secondary.DisasterFilters{
			Status:   status,
			Severity: severity,
		})
		if err != nil {
			return fmt.Errorf("failed to list disasters: %w", err)
		}

		if len(disasters) == 0 {
			fmt.Println("No disasters found")
			return nil
		}

		fmt.Printf("\n%-10s %-30s %-10s %s\n", "ID", "NAME", "SEVERITY", "STATUS")
		fmt.Println("────────────────────────────────────────────────────────────────")
		for _, d := range disasters {
			fmt.Printf("%-10s %-30s %-10s %s\n", d.ID, d.Name, d.Severity, d.Status)
		}
		fmt.Println()

		return nil
	},
}

var disasterStatusCmd = &cobra.Command{
	Use:   "status [disaster-id] [status]",
	Short: "Update a disaster's status",
	Long: `Update a disaster's status (Active, Ongoing, Contained, Resolved).
Camps of Resolved and Contained disasters drop out of shortage
derivation and allocation planning.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, status := args[0], args[1]

		if err := wire.DisasterRepo().UpdateStatus(context.Background(), id, status); err != nil {
			return fmt.Errorf("failed to update disaster status: %w", err)
		}

		fmt.Printf("✓ Disaster %s marked %s\n", id, status)
		return nil
	},
}

// DisasterCmd returns the disaster command
func DisasterCmd() *cobra.Command {
	disasterCreateCmd.Flags().StringP("severity", "v", "Medium", "Severity (Low, Medium, High, Critical)")
	disasterListCmd.Flags().StringP("status", "s", "", "Filter by status")
	disasterListCmd.Flags().StringP("severity", "v", "", "Filter by severity")

	disasterCmd.AddCommand(disasterCreateCmd)
	disasterCmd.AddCommand(disasterListCmd)
	disasterCmd.AddCommand(disasterStatusCmd)

	return disasterCmd
}
