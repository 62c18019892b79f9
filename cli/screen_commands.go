package cli

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/collegeops/collegeops-cli/content"
	"github.com/collegeops/collegeops-cli/internal/utils"
	"github.com/collegeops/collegeops-cli/routes"
)

// NewOpenCommand navigates to an arbitrary route path, following
// whatever redirects the guard produces - the closest thing a terminal
// has to typing a URL into the address bar.
func NewOpenCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Open a screen by its route path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Navigate(cmd.Context(), args[0], screenOptions{})
		},
	}
}

func NewDashboardCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open your role's dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// "/" is a dispatch point: the guard redirects it to the
			// caller's role home and it is never rendered itself.
			return app.Navigate(cmd.Context(), routes.RouteRoot, screenOptions{})
		},
	}
}

// screenPath picks the role-specific variant of a screen. The guard
// still has the final word; an unauthenticated caller gets the student
// variant and is redirected to the login screen from there.
func (a *App) screenPath(studentPath, adminPath string) string {
	if a.store.IsAdmin() {
		return adminPath
	}
	return studentPath
}

func NewNotesCommand(app *App) *cobra.Command {
	var subject, search string

	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Browse study notes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := app.screenPath(routes.RouteStudentNotes, routes.RouteAdminNotes)
			return app.Navigate(cmd.Context(), path, screenOptions{Subject: subject, Search: search})
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "filter by subject")
	cmd.Flags().StringVar(&search, "search", "", "search term")

	cmd.AddCommand(newNotesUploadCommand(app), newNotesDeleteCommand(app))
	return cmd
}

func newNotesUploadCommand(app *App) *cobra.Command {
	var note content.Note
	var tags []string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a note (admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			allowed, err := app.requireScreen(cmd.Context(), routes.RouteAdminNotes)
			if err != nil || !allowed {
				return err
			}
			note.Tags = tags
			if err := app.client.CreateNote(cmd.Context(), note); err != nil {
				return errors.Wrap(err, "upload note")
			}
			fmt.Fprintf(app.out, "%sNote uploaded.%s\n", Green, ResetColor)
			return nil
		},
	}

	cmd.Flags().StringVar(&note.Title, "title", "", "note title")
	cmd.Flags().StringVar(&note.Description, "description", "", "description")
	cmd.Flags().StringVar(&note.Subject, "subject", "", "subject")
	cmd.Flags().StringVar(&note.FileURL, "file-url", "", "URL of the uploaded file")
	cmd.Flags().StringVar(&note.FileType, "file-type", "pdf", "file type")
	cmd.Flags().IntVar(&note.Semester, "semester", 0, "semester")
	cmd.Flags().StringVar(&note.Department, "department", "", "department")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "comma-separated tags")
	return cmd
}

func newNotesDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			allowed, err := app.requireScreen(cmd.Context(), routes.RouteAdminNotes)
			if err != nil || !allowed {
				return err
			}
			if err := app.client.DeleteNote(cmd.Context(), args[0]); err != nil {
				return errors.Wrap(err, "delete note")
			}
			fmt.Fprintln(app.out, "Note deleted.")
			return nil
		},
	}
}

func NewAssignmentsCommand(app *App) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "assignments",
		Short: "Browse assignments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := app.screenPath(routes.RouteStudentAssignments, routes.RouteAdminAssignments)
			return app.Navigate(cmd.Context(), path, screenOptions{Subject: subject})
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "filter by subject")

	cmd.AddCommand(newAssignmentCreateCommand(app), newAssignmentDeleteCommand(app))
	return cmd
}

func newAssignmentCreateCommand(app *App) *cobra.Command {
	var assignment content.Assignment
	var dueDate string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an assignment (admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			allowed, err := app.requireScreen(cmd.Context(), routes.RouteAdminAssignments)
			if err != nil || !allowed {
				return err
			}
			due, err := time.Parse(time.DateOnly, dueDate)
			if err != nil {
				app.printError("Due date must be YYYY-MM-DD")
				return nil
			}
			assignment.DueDate = due
			if err := app.client.CreateAssignment(cmd.Context(), assignment); err != nil {
				return errors.Wrap(err, "create assignment")
			}
			fmt.Fprintf(app.out, "%sAssignment created.%s\n", Green, ResetColor)
			return nil
		},
	}

	cmd.Flags().StringVar(&assignment.Title, "title", "", "assignment title")
	cmd.Flags().StringVar(&assignment.Description, "description", "", "description")
	cmd.Flags().StringVar(&assignment.Subject, "subject", "", "subject")
	cmd.Flags().StringVar(&dueDate, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&assignment.MaxMarks, "max-marks", 100, "maximum marks")
	cmd.Flags().IntVar(&assignment.Semester, "semester", 0, "semester")
	cmd.Flags().StringVar(&assignment.Department, "department", "", "department")
	cmd.Flags().StringVar(&assignment.AttachmentURL, "attachment-url", "", "attachment URL")
	return cmd
}

func newAssignmentDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an assignment (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			allowed, err := app.requireScreen(cmd.Context(), routes.RouteAdminAssignments)
			if err != nil || !allowed {
				return err
			}
			if err := app.client.DeleteAssignment(cmd.Context(), args[0]); err != nil {
				return errors.Wrap(err, "delete assignment")
			}
			fmt.Fprintln(app.out, "Assignment deleted.")
			return nil
		},
	}
}

func NewAnnouncementsCommand(app *App) *cobra.Command {
	var priority string

	cmd := &cobra.Command{
		Use:   "announcements",
		Short: "Browse announcements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := app.screenPath(routes.RouteStudentAnnouncements, routes.RouteAdminAnnouncements)
			return app.Navigate(cmd.Context(), path, screenOptions{Priority: content.PriorityType(priority)})
		},
	}
	cmd.Flags().StringVar(&priority, "priority", "", "filter by priority: low, medium or high")

	cmd.AddCommand(newAnnouncementCreateCommand(app))
	return cmd
}

func newAnnouncementCreateCommand(app *App) *cobra.Command {
	var (
		announcement content.Announcement
		priority     string
		department   string
		semester     int
		expires      string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish an announcement (admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			allowed, err := app.requireScreen(cmd.Context(), routes.RouteAdminAnnouncements)
			if err != nil || !allowed {
				return err
			}

			announcement.Priority = content.PriorityType(priority)
			announcement.TargetAudience = content.TargetAudience{All: department == "" && semester == 0}
			if department != "" {
				announcement.TargetAudience.Department = department
			}
			if semester > 0 {
				announcement.TargetAudience.Semester = utils.Ptr(semester)
			}
			if expires != "" {
				expiresAt, err := time.Parse(time.DateOnly, expires)
				if err != nil {
					app.printError("Expiry must be YYYY-MM-DD")
					return nil
				}
				announcement.ExpiresAt = &expiresAt
			}

			if err := app.client.CreateAnnouncement(cmd.Context(), announcement); err != nil {
				return errors.Wrap(err, "create announcement")
			}
			fmt.Fprintf(app.out, "%sAnnouncement published.%s\n", Green, ResetColor)
			return nil
		},
	}

	cmd.Flags().StringVar(&announcement.Title, "title", "", "announcement title")
	cmd.Flags().StringVar(&announcement.Content, "content", "", "announcement body")
	cmd.Flags().StringVar(&priority, "priority", string(content.PriorityMedium), "priority: low, medium or high")
	cmd.Flags().StringVar(&department, "department", "", "target department (empty targets everyone)")
	cmd.Flags().IntVar(&semester, "semester", 0, "target semester")
	cmd.Flags().StringVar(&expires, "expires", "", "expiry date (YYYY-MM-DD)")
	return cmd
}
