// Package clock changes the machine's wall clock, either by resyncing with a
// network time authority or by stepping it to an explicit timestamp.
package clock

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/AndrewLester/timewarp/internal/sugar"
	"github.com/AndrewLester/timewarp/internal/ui"
	"github.com/hashicorp/go-hclog"
)

// FatalError means the clock could not be set. The process should exit.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return sugar.UserError{
		Message: "Error setting system time. Make sure you have necessary permissions.",
		Hint:    "On macOS/Linux systems, run with sudo.",
		Err:     e.Err,
	}.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

type SkewReporter interface {
	Report(ctx context.Context) (string, error)
}

type Setter struct {
	Platform Platform
	Skew     SkewReporter
	Out      io.Writer
	Err      io.Writer
	Logger   hclog.Logger
}

// SetTime resyncs against network time when useNetworkTime is set, falling
// back to stepping the clock to target if the resync fails. Otherwise it
// steps the clock to target directly. Step failures are returned as
// *FatalError and are never retried.
func (s *Setter) SetTime(ctx context.Context, target time.Time, useNetworkTime bool) error {
	logger := s.logger()

	if useNetworkTime {
		err := s.Platform.Resync(ctx)
		if err == nil {
			logger.Debug("resynced with network time", "platform", s.Platform.Name())
			fmt.Fprintln(s.Out, ui.Success("Time reset to current network time"))
			s.reportSkew(ctx)
			return nil
		}
		logger.Debug("network resync failed", "platform", s.Platform.Name(), "error", err)
		fmt.Fprintln(s.Err, ui.Warning("Failed to sync with time server. Falling back to system time..."))
	}

	logger.Debug("stepping clock", "platform", s.Platform.Name(), "target", target)
	if err := s.Platform.SetAbsoluteTime(ctx, target); err != nil {
		return &FatalError{Err: err}
	}

	fmt.Fprintln(s.Out, ui.Success("Time set to: "+HumanTime(target)))
	s.reportSkew(ctx)
	return nil
}

func (s *Setter) reportSkew(ctx context.Context) {
	if s.Skew == nil {
		return
	}
	line, err := s.Skew.Report(ctx)
	if err != nil {
		s.logger().Debug("skew query failed", "error", err)
		return
	}
	fmt.Fprintln(s.Out, ui.Help(line))
}

func (s *Setter) logger() hclog.Logger {
	if s.Logger == nil {
		return hclog.NewNullLogger()
	}
	return s.Logger
}

// HumanTime renders t in local time the way the confirmation line shows it.
func HumanTime(t time.Time) string {
	return t.Local().Format("1/2/2006, 3:04:05 PM")
}
