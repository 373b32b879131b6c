package mocks

import (
	"context"

	"github.com/mcoot/userportal/internal/dependencies/navigation"
)

// RecordingNavigator records every route it is asked to navigate to
type RecordingNavigator struct {
	Routes []string
	Err    error
}

var _ navigation.Navigator = (*RecordingNavigator)(nil)

// NewRecordingNavigator creates an empty RecordingNavigator
func NewRecordingNavigator() *RecordingNavigator {
	return &RecordingNavigator{}
}

// Navigate records route and returns the configured error
func (n *RecordingNavigator) Navigate(_ context.Context, route string) error {
	n.Routes = append(n.Routes, route)
	return n.Err
}

// Last returns the most recent route, or "" if none
func (n *RecordingNavigator) Last() string {
	if len(n.Routes) == 0 {
		return ""
	}
	return n.Routes[len(n.Routes)-1]
}
