package privilege_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AndrewLester/timewarp/internal/command"
	"github.com/AndrewLester/timewarp/internal/command/commandtest"
	"github.com/AndrewLester/timewarp/internal/privilege"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const waitTimeout = 2 * time.Second

func newSession(runner command.Runner, clock clockwork.Clock, goos string) *privilege.Session {
	return privilege.NewSession(privilege.Config{
		Runner:          runner,
		Clock:           clock,
		RefreshInterval: time.Minute,
		GOOS:            goos,
	})
}

func TestSession_Acquire_Denied(t *testing.T) {
	runner := new(commandtest.MockRunner)
	runner.On("Run", mock.Anything, commandtest.Spec("sudo", "-v")).
		Return(errors.New("sudo: 3 incorrect password attempts"))

	s := newSession(runner, clockwork.NewFakeClock(), "linux")
	err := s.Acquire(context.Background())

	assert.ErrorIs(t, err, privilege.ErrDenied)
	assert.Contains(t, err.Error(), "incorrect password")
	assert.Nil(t, s.Done())
	s.Stop()
	runner.AssertExpectations(t)
}

func TestSession_Acquire_PromptsInteractively(t *testing.T) {
	runner := new(commandtest.MockRunner)
	runner.On("Run", mock.Anything, mock.MatchedBy(func(spec command.Spec) bool {
		return spec.Name == "sudo" && spec.Interactive
	})).Return(nil)

	s := newSession(runner, clockwork.NewFakeClock(), "darwin")
	require.NoError(t, s.Acquire(context.Background()))
	s.Stop()

	runner.AssertExpectations(t)
}

func TestSession_Acquire_WindowsIsNoop(t *testing.T) {
	runner := new(commandtest.MockRunner)

	s := newSession(runner, clockwork.NewFakeClock(), "windows")
	require.NoError(t, s.Acquire(context.Background()))
	s.Stop()

	assert.Nil(t, s.Done())
	runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

func TestSession_RefreshesEveryInterval(t *testing.T) {
	clock := clockwork.NewFakeClock()
	refreshed := make(chan struct{}, 10)

	runner := new(commandtest.MockRunner)
	runner.On("Run", mock.Anything, commandtest.Spec("sudo", "-v")).Return(nil).Once()
	runner.On("Run", mock.Anything, commandtest.Spec("sudo", "-n", "-v")).
		Return(nil).
		Run(func(mock.Arguments) { refreshed <- struct{}{} })

	s := newSession(runner, clock, "linux")
	require.NoError(t, s.Acquire(context.Background()))
	defer s.Stop()

	for i := 0; i < 2; i++ {
		clock.BlockUntil(1)
		clock.Advance(time.Minute)
		select {
		case <-refreshed:
		case <-time.After(waitTimeout):
			t.Fatalf("refresh %d did not run", i+1)
		}
	}

	runner.AssertNumberOfCalls(t, "Run", 3)
}

func TestSession_RefreshFailureStopsQuietly(t *testing.T) {
	clock := clockwork.NewFakeClock()

	runner := new(commandtest.MockRunner)
	runner.On("Run", mock.Anything, commandtest.Spec("sudo", "-v")).Return(nil).Once()
	runner.On("Run", mock.Anything, commandtest.Spec("sudo", "-n", "-v")).
		Return(errors.New("sudo: a password is required")).Once()

	s := newSession(runner, clock, "linux")
	require.NoError(t, s.Acquire(context.Background()))

	clock.BlockUntil(1)
	clock.Advance(time.Minute)

	select {
	case <-s.Done():
	case <-time.After(waitTimeout):
		t.Fatal("refresh goroutine did not stop after failure")
	}

	// Further ticks issue no more commands.
	clock.Advance(5 * time.Minute)
	s.Stop()
	runner.AssertNumberOfCalls(t, "Run", 2)
}

func TestSession_StopEndsRefresh(t *testing.T) {
	runner := new(commandtest.MockRunner)
	runner.On("Run", mock.Anything, commandtest.Spec("sudo", "-v")).Return(nil).Once()

	s := newSession(runner, clockwork.NewFakeClock(), "linux")
	require.NoError(t, s.Acquire(context.Background()))

	s.Stop()
	s.Stop()

	select {
	case <-s.Done():
	default:
		t.Fatal("refresh goroutine still running after Stop")
	}
	runner.AssertExpectations(t)
}

func TestSession_ContextCancelEndsRefresh(t *testing.T) {
	runner := new(commandtest.MockRunner)
	runner.On("Run", mock.Anything, commandtest.Spec("sudo", "-v")).Return(nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	s := newSession(runner, clockwork.NewFakeClock(), "linux")
	require.NoError(t, s.Acquire(ctx))

	cancel()

	select {
	case <-s.Done():
	case <-time.After(waitTimeout):
		t.Fatal("refresh goroutine did not observe cancellation")
	}
}
