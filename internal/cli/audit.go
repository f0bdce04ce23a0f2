package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/relief/internal/ports/secondary"
	"github.com/example/relief/internal/wire"
)

// AuditCmd returns the audit command
func AuditCmd() *cobra.Command {
	var entityType, entityID, action string
	var limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the audit trail",
		Long: `List audit trail entries, newest first. Every engine write produces
an entry; allocation runs log the allocation insert, the inventory
bump, and any donation status transition as one atomic group.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := wire.AuditLogRepo().List(context.Background(), secondary.AuditFilters{
				EntityType: entityType,
				EntityID:   entityID,
				Action:     action,
				Limit:      limit,
			})
			if err != nil {
				return fmt.Errorf("failed to list audit entries: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println("No audit entries found")
				return nil
			}

			fmt.Printf("\n%-10s %-12s %-12s %-8s %s\n", "ID", "ENTITY", "ENTITY ID", "ACTION", "CHANGE")
			fmt.Println("────────────────────────────────────────────────────────────────────────")
			for _, e := range entries {
				change := "-"
				if e.FieldName != "" {
					change = fmt.Sprintf("%s: %s -> %s", e.FieldName, e.OldValue, e.NewValue)
				}
				fmt.Printf("%-10s %-12s %-12s %-8s %s\n", e.ID, e.EntityType, e.EntityID, e.Action, change)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringVarP(&entityType, "entity", "e", "", "Filter by entity type (donation, allocation, resource, ...)")
	cmd.Flags().StringVar(&entityID, "id", "", "Filter by entity ID")
	cmd.Flags().StringVarP(&action, "action", "a", "", "Filter by action (create, update, delete)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum entries to show")

	return cmd
}
