package mock

import "context"

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via a function field.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, returns a canned answer.
	GenerateFunc func(ctx context.Context, system, user string) (string, error)

	callCount  int
	lastSystem string
	lastUser   string
}

// NewMockGenerator creates a mock generator returning a canned answer.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate records the prompts and returns the injected or canned answer.
func (m *MockGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	m.callCount++
	m.lastSystem = system
	m.lastUser = user

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, system, user)
	}
	return "mock answer", nil
}

// CallCount returns the number of times Generate was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// LastPrompts returns the system and user prompts of the most recent call.
func (m *MockGenerator) LastPrompts() (system, user string) {
	return m.lastSystem, m.lastUser
}

// Reset clears the call count, recorded prompts and injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.lastSystem = ""
	m.lastUser = ""
	m.GenerateFunc = nil
}
