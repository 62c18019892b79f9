package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. The session is rehydrated from
// durable storage before any subcommand runs.
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "collegeops",
		Short:         "Terminal client for the CollegeOps college portal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			app.Bootstrap()
		},
	}

	rootCmd.AddCommand(
		NewLoginCommand(app),
		NewRegisterCommand(app),
		NewLogoutCommand(app),
		NewWhoamiCommand(app),
		NewOpenCommand(app),
		NewDashboardCommand(app),
		NewNotesCommand(app),
		NewAssignmentsCommand(app),
		NewAnnouncementsCommand(app),
		NewTokenCommand(app),
	)

	return rootCmd
}
