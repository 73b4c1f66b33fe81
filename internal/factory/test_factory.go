package factory

import (
	"time"

	"github.com/gridsnake/gridsnake/internal/dependencies/mocks"
	"github.com/gridsnake/gridsnake/internal/services/auth"
	"github.com/gridsnake/gridsnake/internal/services/game"
	"github.com/gridsnake/gridsnake/internal/storage/memory"
	"github.com/gridsnake/gridsnake/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithRules(game.DefaultRules())
}

// NewTestAppWithRules creates a test App with custom simulation rules
func NewTestAppWithRules(rules game.Rules) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, rules, auth.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
