package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/userportal/internal/model"
	"github.com/mcoot/userportal/internal/services/accounts"
	"github.com/mcoot/userportal/internal/services/session"
)

// ErrRedirected is returned when a page sent the user elsewhere instead of
// showing anything
var ErrRedirected = errors.New(session.MsgAuthRequired)

func newRegisterCmd() *cobra.Command {
	var cred model.Credential

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		Long: `Register a new account. All fields are checked locally before anything is
sent to the server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := app.Accounts.Register(cmd.Context(), cred)
			return render(cmd, view, "Registration successful")
		},
	}

	cmd.Flags().StringVar(&cred.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&cred.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&cred.Password, "password", "", "Password")
	cmd.Flags().StringVar(&cred.IdentityNumber, "identity-number", "", "16 digit identity number")
	cmd.Flags().StringVar(&cred.DateOfBirth, "dob", "", "Date of birth (YYYY-MM-DD)")

	return cmd
}

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := app.Accounts.Login(cmd.Context(), email, password)
			return render(cmd, view, "Login successful")
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Accounts.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			newOutput(cmd).PrintMessage("Logged out")
			return nil
		},
	}
}

func newUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(cmd, app.Accounts.ListUsers(cmd.Context()), "")
		},
	}
}

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in user's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(cmd, app.Accounts.Profile(cmd.Context()), "")
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a session is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			newOutput(cmd).Print(app.Accounts.Status(cmd.Context()))
			return nil
		},
	}
}

// render prints a resolved page. Error and redirected pages become command
// errors so the process exits non-zero.
func render[T any](cmd *cobra.Command, view accounts.View[T], success string) error {
	out := newOutput(cmd)

	switch view.Status {
	case accounts.StatusContent:
		if success != "" {
			out.PrintNotice(success)
		}
		out.Print(view.Data)
		return nil
	case accounts.StatusEmpty:
		out.PrintMessage(view.Message)
		return nil
	case accounts.StatusRedirected:
		return ErrRedirected
	case accounts.StatusError:
		return errors.New(view.Error)
	default:
		return fmt.Errorf("page did not resolve (%s)", view.Status)
	}
}

func newOutput(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
