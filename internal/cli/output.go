package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mcoot/userportal/internal/model"
	"github.com/mcoot/userportal/internal/services/accounts"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == OutputJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == OutputJSON {
		data, _ := json.Marshal(map[string]string{"message": err.Error()})
		fmt.Fprintln(o.errOut, string(data))
	} else {
		fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == OutputJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.out, string(data))
	} else {
		fmt.Fprintln(o.out, msg)
	}
}

// PrintNotice outputs a text-only status line; JSON output stays a single
// document
func (o *Output) PrintNotice(msg string) {
	if o.format != OutputJSON {
		fmt.Fprintln(o.out, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case model.AuthResult:
		o.printAuthResult(v)
	case model.User:
		o.printUser(v)
	case []model.User:
		o.printUsers(v)
	case accounts.SessionStatus:
		o.printSessionStatus(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printAuthResult(a model.AuthResult) {
	if a.UserID != "" {
		fmt.Fprintf(o.out, "User ID: %s\n", a.UserID)
	}
	fmt.Fprintln(o.out, "Session saved")
}

func (o *Output) printUser(u model.User) {
	fmt.Fprintf(o.out, "Name: %s\n", u.Name)
	fmt.Fprintf(o.out, "Email: %s\n", u.Email)
	fmt.Fprintf(o.out, "Identity Number: %s\n", u.IdentityNumber)
	fmt.Fprintf(o.out, "Date of Birth: %s\n", u.DateOfBirth)
}

func (o *Output) printUsers(users []model.User) {
	fmt.Fprintf(o.out, "Users (%d):\n", len(users))
	for _, u := range users {
		fmt.Fprintf(o.out, "  - %s <%s> born %s, identity %s\n", u.Name, u.Email, u.DateOfBirth, u.IdentityNumber)
	}
}

func (o *Output) printSessionStatus(s accounts.SessionStatus) {
	if !s.SignedIn {
		fmt.Fprintln(o.out, "Not signed in")
		return
	}
	if s.UserID == "" {
		fmt.Fprintln(o.out, "Signed in")
		return
	}
	fmt.Fprintf(o.out, "Signed in as %s\n", s.UserID)
}
