package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/relief/internal/cli"
	"github.com/example/relief/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "relief",
		Short:   "relief - resource matching and allocation for disaster relief",
		Version: version.String(),
		Long: `relief tracks disasters, camps, donations, and volunteers, and matches
incoming donations against camp shortages. Allocation runs are
transactional and fully audited.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.ShortageCmd())
	rootCmd.AddCommand(cli.AllocateCmd())
	rootCmd.AddCommand(cli.AllocationCmd())
	rootCmd.AddCommand(cli.DonationCmd())
	rootCmd.AddCommand(cli.DisasterCmd())
	rootCmd.AddCommand(cli.CampCmd())
	rootCmd.AddCommand(cli.VolunteerCmd())
	rootCmd.AddCommand(cli.AuditCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
