package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"

	"github.com/collegeops/collegeops-cli/api"
	"github.com/collegeops/collegeops-cli/content"
	"github.com/collegeops/collegeops-cli/routes"
)

// screenOptions carries the list filters a screen understands. Filters
// for other screens are simply ignored.
type screenOptions struct {
	Subject  string
	Search   string
	Priority content.PriorityType
}

// Navigate resolves a path through the route guard and renders
// whatever screen the guard lands on. Redirect hops are shown so a
// silently corrected navigation stays visible in the terminal.
func (a *App) Navigate(ctx context.Context, path string, opts screenOptions) error {
	target, trail, err := routes.Resolve(a.store.Current(), path)
	if err != nil {
		return errors.Wrapf(err, "[App.Navigate] resolve %q", path)
	}
	if len(trail) > 1 {
		fmt.Fprintf(a.out, "%s%s%s\n", Gray, strings.Join(trail, " -> "), ResetColor)
	}
	return a.render(ctx, target, opts)
}

// requireScreen resolves path and reports whether it may render as-is.
// When the guard redirects elsewhere, the redirect target is rendered
// instead and false is returned, so callers skip their admin action.
func (a *App) requireScreen(ctx context.Context, path string) (bool, error) {
	target, trail, err := routes.Resolve(a.store.Current(), path)
	if err != nil {
		return false, errors.Wrapf(err, "[App.requireScreen] resolve %q", path)
	}
	if target == path {
		return true, nil
	}
	if len(trail) > 1 {
		fmt.Fprintf(a.out, "%s%s%s\n", Gray, strings.Join(trail, " -> "), ResetColor)
	}
	return false, a.render(ctx, target, screenOptions{})
}

func (a *App) render(ctx context.Context, path string, opts screenOptions) error {
	switch path {
	case routes.RouteLogin:
		fmt.Fprintln(a.out, "You are not logged in. Run 'collegeops login --email ... --password ...'")
		return nil
	case routes.RouteRegister:
		fmt.Fprintln(a.out, "Run 'collegeops register' to create an account.")
		return nil
	case routes.RouteStudentHome:
		return a.renderStudentDashboard(ctx)
	case routes.RouteAdminHome:
		return a.renderAdminDashboard(ctx)
	case routes.RouteStudentNotes, routes.RouteAdminNotes:
		return a.renderNotes(ctx, opts)
	case routes.RouteStudentAssignments, routes.RouteAdminAssignments:
		return a.renderAssignments(ctx, opts)
	case routes.RouteStudentAnnouncements, routes.RouteAdminAnnouncements:
		return a.renderAnnouncements(ctx, opts)
	default:
		return errors.Errorf("[App.render] no screen for %q", path)
	}
}

func (a *App) renderStudentDashboard(ctx context.Context) error {
	notes, err := a.client.Notes(ctx, api.NotesFilter{})
	if err != nil {
		return errors.Wrap(err, "[App.renderStudentDashboard] fetch notes")
	}
	assignments, err := a.client.Assignments(ctx, api.AssignmentsFilter{})
	if err != nil {
		return errors.Wrap(err, "[App.renderStudentDashboard] fetch assignments")
	}
	announcements, err := a.client.Announcements(ctx, api.AnnouncementsFilter{})
	if err != nil {
		return errors.Wrap(err, "[App.renderStudentDashboard] fetch announcements")
	}

	user := a.store.Current()
	fmt.Fprintf(a.out, "%sStudent Dashboard%s - %s\n\n", Cyan, ResetColor, user.Name)
	fmt.Fprintf(a.out, "Notes: %d  Assignments: %d  Announcements: %d\n", len(notes), len(assignments), len(announcements))

	if len(announcements) > 0 {
		fmt.Fprintf(a.out, "\nRecent announcements:\n")
		for i, announcement := range announcements {
			if i == 3 {
				break
			}
			fmt.Fprintf(a.out, "  [%s] %s\n", colourPriority(announcement.Priority), announcement.Title)
		}
	}
	return nil
}

func (a *App) renderAdminDashboard(ctx context.Context) error {
	notes, err := a.client.Notes(ctx, api.NotesFilter{})
	if err != nil {
		return errors.Wrap(err, "[App.renderAdminDashboard] fetch notes")
	}
	assignments, err := a.client.Assignments(ctx, api.AssignmentsFilter{})
	if err != nil {
		return errors.Wrap(err, "[App.renderAdminDashboard] fetch assignments")
	}
	announcements, err := a.client.Announcements(ctx, api.AnnouncementsFilter{})
	if err != nil {
		return errors.Wrap(err, "[App.renderAdminDashboard] fetch announcements")
	}
	subjects, err := a.client.Subjects(ctx)
	if err != nil {
		return errors.Wrap(err, "[App.renderAdminDashboard] fetch subjects")
	}

	user := a.store.Current()
	fmt.Fprintf(a.out, "%sAdmin Dashboard%s - %s\n\n", Magenta, ResetColor, user.Name)
	fmt.Fprintf(a.out, "Notes: %d  Assignments: %d  Announcements: %d  Subjects: %d\n",
		len(notes), len(assignments), len(announcements), len(subjects))
	return nil
}

func (a *App) renderNotes(ctx context.Context, opts screenOptions) error {
	notes, err := a.client.Notes(ctx, api.NotesFilter{Subject: opts.Subject, Search: opts.Search})
	if err != nil {
		return errors.Wrap(err, "[App.renderNotes] fetch notes")
	}

	if len(notes) == 0 {
		fmt.Fprintln(a.out, "No notes found.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSUBJECT\tSEM\tTYPE\tTAGS")
	for _, note := range notes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			note.ID, note.Title, note.Subject, note.Semester, note.FileType, strings.Join(note.Tags, ","))
	}
	return w.Flush()
}

func (a *App) renderAssignments(ctx context.Context, opts screenOptions) error {
	assignments, err := a.client.Assignments(ctx, api.AssignmentsFilter{Subject: opts.Subject})
	if err != nil {
		return errors.Wrap(err, "[App.renderAssignments] fetch assignments")
	}

	if len(assignments) == 0 {
		fmt.Fprintln(a.out, "No assignments found.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSUBJECT\tDUE\tMARKS")
	for _, assignment := range assignments {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			assignment.ID, assignment.Title, assignment.Subject,
			assignment.DueDate.Format("2006-01-02"), assignment.MaxMarks)
	}
	return w.Flush()
}

func (a *App) renderAnnouncements(ctx context.Context, opts screenOptions) error {
	announcements, err := a.client.Announcements(ctx, api.AnnouncementsFilter{Priority: opts.Priority})
	if err != nil {
		return errors.Wrap(err, "[App.renderAnnouncements] fetch announcements")
	}

	if len(announcements) == 0 {
		fmt.Fprintln(a.out, "No announcements found.")
		return nil
	}

	for _, announcement := range announcements {
		fmt.Fprintf(a.out, "[%s] %s\n", colourPriority(announcement.Priority), announcement.Title)
		if announcement.Content != "" {
			fmt.Fprintf(a.out, "    %s\n", announcement.Content)
		}
		audience := "everyone"
		if !announcement.TargetAudience.All {
			audience = announcement.TargetAudience.Department
			if announcement.TargetAudience.Semester != nil {
				audience = fmt.Sprintf("%s, semester %d", audience, *announcement.TargetAudience.Semester)
			}
		}
		line := fmt.Sprintf("    for %s", audience)
		if announcement.ExpiresAt != nil {
			line += ", expires " + announcement.ExpiresAt.Format(time.DateOnly)
		}
		fmt.Fprintf(a.out, "%s%s%s\n", Gray, line, ResetColor)
	}
	return nil
}
