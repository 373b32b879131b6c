package navigation

import (
	"context"
	"fmt"
	"io"
)

// Routes a page can be sent to
const (
	RouteLogin = "/login"
	RouteHome  = "/"
)

// Navigator performs navigation away from the current page.
// Deciding whether to navigate is the caller's job.
type Navigator interface {
	Navigate(ctx context.Context, route string) error
}

// WriterNavigator is the CLI's Navigator. There is nothing to navigate in a
// terminal, so it tells the user which command leads to the requested route.
type WriterNavigator struct {
	w io.Writer
}

// NewWriterNavigator creates a navigator printing hints to w
func NewWriterNavigator(w io.Writer) *WriterNavigator {
	return &WriterNavigator{w: w}
}

// Navigate prints the hint for route
func (n *WriterNavigator) Navigate(_ context.Context, route string) error {
	_, err := fmt.Fprintln(n.w, Hint(route))
	return err
}

// Hint returns the user-facing instruction for a route
func Hint(route string) string {
	switch route {
	case RouteLogin:
		return "Please sign in: userctl login --email <email> --password <password>"
	case RouteHome:
		return "Signed in. List users with: userctl users"
	default:
		return "Continue at " + route
	}
}
