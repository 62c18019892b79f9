package users

// RoleType represents a user role as issued by the CollegeOps backend
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleAdmin   RoleType = "admin"
)

// User is the authenticated identity returned by the backend at login
// or registration. It is created server-side and read-only here; the
// client never mutates it, only stores and displays it.
type User struct {
	ID    string   `json:"id,omitempty"`
	Name  string   `json:"name,omitempty"`
	Email string   `json:"email,omitempty"`
	Role  RoleType `json:"role,omitempty"`

	// Student profile fields, absent for admins
	RollNumber string `json:"rollNumber,omitempty"`
	Department string `json:"department,omitempty"`
	Semester   int    `json:"semester,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func (u *User) IsStudent() bool {
	return u != nil && u.Role == RoleStudent
}

// Registration is the payload sent to POST /auth/register. Student
// registrations carry the roll number, department and semester; admin
// registrations carry none of them.
type Registration struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Role     RoleType `json:"role" validate:"required,oneof=student admin"`

	RollNumber string `json:"rollNumber,omitempty" validate:"required_if=Role student"`
	Department string `json:"department,omitempty" validate:"required_if=Role student"`
	Semester   *int   `json:"semester,omitempty" validate:"omitempty,min=1,max=12"`
}

// Credentials is the payload sent to POST /auth/login.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
