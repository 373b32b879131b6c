package factory

import (
	"time"

	"github.com/mcoot/userportal/internal/client"
	"github.com/mcoot/userportal/internal/dependencies/mocks"
	"github.com/mcoot/userportal/internal/storage/memory"
	"github.com/mcoot/userportal/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock     *mocks.MockClock
	MockNavigator *mocks.RecordingNavigator
	MemoryStore   *memory.Storage
}

// NewTestApp creates an App talking to serverURL with a memory session
// store, a mock clock and a recording navigator
func NewTestApp(serverURL string) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	mockNav := mocks.NewRecordingNavigator()
	httpClient := client.New(serverURL)

	app := newWithDependencies(store, mockClock, httpClient, mockNav, testutil.NopLogger())

	return &TestApp{
		App:           app,
		MockClock:     mockClock,
		MockNavigator: mockNav,
		MemoryStore:   store,
	}
}
