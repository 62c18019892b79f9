package cli

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/collegeops/collegeops-cli/internal/utils"
	"github.com/collegeops/collegeops-cli/routes"
	"github.com/collegeops/collegeops-cli/users"
)

func NewLoginCommand(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and land on your dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			creds := users.Credentials{Email: email, Password: password}
			if err := app.validate.Struct(creds); err != nil {
				app.printError(validationMessage(err))
				return nil
			}

			result := app.store.Login(cmd.Context(), email, password)
			if !result.Success {
				app.printError(result.Error)
				return nil
			}

			fmt.Fprintf(app.out, "%sLogged in as %s (%s)%s\n", Green, result.User.Name, result.User.Role, ResetColor)
			return app.Navigate(cmd.Context(), routes.HomeFor(result.User.Role), screenOptions{})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email address")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func NewRegisterCommand(app *App) *cobra.Command {
	var (
		name, email, password string
		role                  string
		rollNumber            string
		department            string
		semester              int
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			registration := users.Registration{
				Name:     name,
				Email:    email,
				Password: password,
				Role:     users.RoleType(role),
			}
			if registration.Role == users.RoleStudent {
				registration.RollNumber = rollNumber
				registration.Department = department
				if semester > 0 {
					registration.Semester = utils.Ptr(semester)
				}
			}

			if err := app.validate.Struct(registration); err != nil {
				app.printError(validationMessage(err))
				return nil
			}

			result := app.store.Register(cmd.Context(), registration)
			if !result.Success {
				app.printError(result.Error)
				return nil
			}

			fmt.Fprintf(app.out, "%sWelcome, %s! Your %s account is ready.%s\n", Green, result.User.Name, result.User.Role, ResetColor)
			return app.Navigate(cmd.Context(), routes.HomeFor(result.User.Role), screenOptions{})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (at least 6 characters)")
	cmd.Flags().StringVar(&role, "role", string(users.RoleStudent), "account role: student or admin")
	cmd.Flags().StringVar(&rollNumber, "roll-number", "", "roll number (students)")
	cmd.Flags().StringVar(&department, "department", "", "department (students)")
	cmd.Flags().IntVar(&semester, "semester", 0, "semester (students)")
	return cmd
}

func NewLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Run: func(*cobra.Command, []string) {
			app.store.Logout()
			fmt.Fprintln(app.out, "Logged out.")
		},
	}
}

func NewWhoamiCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current identity",
		Run: func(*cobra.Command, []string) {
			user := app.store.Current()
			if user == nil {
				fmt.Fprintln(app.out, "Not logged in.")
				return
			}
			fmt.Fprintf(app.out, "%s <%s> - %s\n", user.Name, user.Email, user.Role)
			if user.IsStudent() {
				fmt.Fprintf(app.out, "Roll %s, %s, semester %d\n", user.RollNumber, user.Department, user.Semester)
			}
		},
	}
}

func (a *App) printError(message string) {
	fmt.Fprintf(a.out, "%s%s%s\n", Red, message, ResetColor)
}

// validationMessage maps the first failed field rule onto the message
// an inline form error would show.
func validationMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return "Invalid input"
	}

	fe := fieldErrors[0]
	switch fe.Tag() {
	case "required", "required_if":
		return "Please fill in all required fields"
	case "email":
		return "Please enter a valid email address"
	case "min":
		if fe.Field() == "Password" {
			return "Password must be at least 6 characters"
		}
		return fmt.Sprintf("%s is too small", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
