package routes

// Route path constants
// All navigable screens are defined here to ensure consistency and prevent typos
const (
	RouteRoot     = "/"
	RouteLogin    = "/login"
	RouteRegister = "/register"

	// Student screens
	RouteStudentHome          = "/student"
	RouteStudentNotes         = "/student/notes"
	RouteStudentAssignments   = "/student/assignments"
	RouteStudentAnnouncements = "/student/announcements"

	// Admin screens
	RouteAdminHome          = "/admin"
	RouteAdminNotes         = "/admin/notes"
	RouteAdminAssignments   = "/admin/assignments"
	RouteAdminAnnouncements = "/admin/announcements"
)
