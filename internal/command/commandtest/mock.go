// Package commandtest provides a testify mock for command.Runner.
package commandtest

import (
	"context"

	"github.com/AndrewLester/timewarp/internal/command"
	"github.com/stretchr/testify/mock"
)

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, spec command.Spec) error {
	args := m.Called(ctx, spec)
	return args.Error(0)
}

// Spec matches a command by program name and arguments, ignoring Interactive.
func Spec(name string, args ...string) interface{} {
	return mock.MatchedBy(func(spec command.Spec) bool {
		if spec.Name != name || len(spec.Args) != len(args) {
			return false
		}
		for i := range args {
			if spec.Args[i] != args[i] {
				return false
			}
		}
		return true
	})
}
