// Package privilege obtains sudo credentials once and keeps them fresh for
// the life of the process so later clock commands never re-prompt.
package privilege

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/AndrewLester/timewarp/internal/command"
	"github.com/hashicorp/go-hclog"
	"github.com/jonboulle/clockwork"
)

const DefaultRefreshInterval = time.Minute

var ErrDenied = errors.New("sudo privileges could not be obtained")

type Config struct {
	Runner          command.Runner
	Logger          hclog.Logger
	Clock           clockwork.Clock
	RefreshInterval time.Duration
	GOOS            string
}

type Session struct {
	runner   command.Runner
	logger   hclog.Logger
	clock    clockwork.Clock
	interval time.Duration
	goos     string

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSession(config Config) *Session {
	s := &Session{
		runner:   config.Runner,
		logger:   config.Logger,
		clock:    config.Clock,
		interval: config.RefreshInterval,
		goos:     config.GOOS,
	}
	if s.logger == nil {
		s.logger = hclog.NewNullLogger()
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.interval <= 0 {
		s.interval = DefaultRefreshInterval
	}
	if s.goos == "" {
		s.goos = runtime.GOOS
	}
	return s
}

// Acquire validates sudo credentials, prompting the operator if needed, and
// starts the background refresh. On Windows it does nothing.
func (s *Session) Acquire(ctx context.Context) error {
	if s.goos == "windows" {
		s.logger.Debug("privilege elevation is implicit on windows", "elevated", isElevated())
		return nil
	}

	err := s.runner.Run(ctx, command.Spec{Name: "sudo", Args: []string{"-v"}, Interactive: true})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDenied, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return nil
	}

	refreshCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.refresh(refreshCtx, s.done)

	return nil
}

func (s *Session) refresh(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			err := s.runner.Run(ctx, command.Spec{Name: "sudo", Args: []string{"-n", "-v"}})
			if err != nil {
				if ctx.Err() == nil {
					s.logger.Debug("sudo refresh failed, stopping refresh", "error", err)
				}
				return
			}
			s.logger.Trace("sudo credentials refreshed")
		}
	}
}

// Done is closed once the refresh goroutine has exited. It is nil before a
// successful Acquire and on Windows.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Stop cancels the refresh and waits for it to finish. Safe to call more
// than once, and before Acquire.
func (s *Session) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
