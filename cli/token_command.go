package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/collegeops/collegeops-cli/session"
	"github.com/collegeops/collegeops-cli/token"
)

func NewTokenCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Credential diagnostics",
	}
	cmd.AddCommand(newTokenInspectCommand(app))
	return cmd
}

// newTokenInspectCommand decodes the stored credential for display.
// Purely diagnostic: nothing here feeds the session or the guard, and
// the signature is not verified.
func newTokenInspectCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Decode the stored bearer token (unverified)",
		RunE: func(*cobra.Command, []string) error {
			raw, err := app.storage.Get(session.KeyToken)
			if err != nil || raw == "" {
				fmt.Fprintln(app.out, "No stored credential.")
				return nil
			}

			details, err := token.Inspect(raw)
			if err != nil {
				app.printError("Stored credential is not a well-formed token")
				return nil
			}

			fmt.Fprintf(app.out, "Subject: %s\n", details.Subject)
			if details.Issuer != "" {
				fmt.Fprintf(app.out, "Issuer: %s\n", details.Issuer)
			}
			if details.IssuedAt != nil {
				fmt.Fprintf(app.out, "Issued: %s\n", details.IssuedAt.Format(time.RFC3339))
			}
			if details.ExpiresAt != nil {
				state := Green + "valid" + ResetColor
				if details.Expired(time.Now()) {
					state = Red + "expired" + ResetColor
				}
				fmt.Fprintf(app.out, "Expires: %s (%s)\n", details.ExpiresAt.Format(time.RFC3339), state)
			}

			keys := make([]string, 0, len(details.Claims))
			for key := range details.Claims {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			fmt.Fprintf(app.out, "Claims: %v\n", keys)
			return nil
		},
	}
}
