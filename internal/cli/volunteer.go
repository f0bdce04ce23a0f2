package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/relief/internal/wire"
)

var volunteerCmd = &cobra.Command{
	Use:   "volunteer",
	Short: "Manage volunteers and assignments",
	Long:  "Register volunteers, match them to camp roles, and track assignments.",
}

var volunteerRegisterCmd = &cobra.Command{
	Use:   "register [name]",
	Short: "Register a new volunteer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		skills, _ := cmd.Flags().GetString("skills")
		return wire.VolunteerAdapter().Register(context.Background(), args[0], skills)
	},
}

var volunteerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List volunteers with assignment counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		availability, _ := cmd.Flags().GetString("availability")
		return wire.VolunteerAdapter().List(context.Background(), availability)
	},
}

var volunteerMatchCmd = &cobra.Command{
	Use:   "match [camp-id] [role]",
	Short: "Match a volunteer to a camp role",
	Long: `Find the best available volunteer for a camp role and create an Active
assignment. With --skill, only volunteers carrying that skill tag
qualify. Among qualified volunteers the least-loaded one wins (fewest
active assignments, then fewest completed, then lowest ID).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		skill, _ := cmd.Flags().GetString("skill")
		return wire.VolunteerAdapter().Match(context.Background(), args[0], args[1], skill)
	},
}

var volunteerCompleteCmd = &cobra.Command{
	Use:   "complete [assignment-id]",
	Short: "Mark an assignment completed",
	Long: `Mark an assignment Completed and stamp its end date. The volunteer
returns to Available once no other Active assignment remains.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.VolunteerAdapter().Complete(context.Background(), args[0])
	},
}

var volunteerAssignmentsCmd = &cobra.Command{
	Use:   "assignments",
	Short: "List assignments",
	RunE: func(cmd *cobra.Command, args []string) error {
		volunteerID, _ := cmd.Flags().GetString("volunteer")
		campID, _ := cmd.Flags().GetString("camp")
		status, _ := cmd.Flags().GetString("status")

		return wire.VolunteerAdapter().Assignments(context.Background(), volunteerID, campID, status)
	},
}

// VolunteerCmd returns the volunteer command
func VolunteerCmd() *cobra.Command {
	volunteerRegisterCmd.Flags().StringP("skills", "k", "", "Comma-separated skill tags (e.g. \"Medical, First Aid\")")
	volunteerListCmd.Flags().StringP("availability", "a", "", "Filter by availability (Available, Assigned, Unavailable)")
	volunteerMatchCmd.Flags().StringP("skill", "k", "", "Required skill tag for the role")
	volunteerAssignmentsCmd.Flags().StringP("volunteer", "v", "", "Filter by volunteer ID")
	volunteerAssignmentsCmd.Flags().StringP("camp", "c", "", "Filter by camp ID")
	volunteerAssignmentsCmd.Flags().StringP("status", "s", "", "Filter by status (Active, Completed, Cancelled)")

	volunteerCmd.AddCommand(volunteerRegisterCmd)
	volunteerCmd.AddCommand(volunteerListCmd)
	volunteerCmd.AddCommand(volunteerMatchCmd)
	volunteerCmd.AddCommand(volunteerCompleteCmd)
	volunteerCmd.AddCommand(volunteerAssignmentsCmd)

	return volunteerCmd
}
