package clock

import (
	"context"
	"fmt"
	"time"

	"github.com/AndrewLester/timewarp/internal/command"
	"github.com/AndrewLester/timewarp/internal/system/settimeofday"
)

const (
	DefaultNTPServer       = "pool.ntp.org"
	DefaultDarwinNTPServer = "time.apple.com"
)

// Platform hides how a particular operating system resyncs and steps its
// wall clock.
type Platform interface {
	Name() string
	Resync(ctx context.Context) error
	SetAbsoluteTime(ctx context.Context, t time.Time) error
}

type PlatformConfig struct {
	GOOS            string
	Runner          command.Runner
	NTPServer       string
	DarwinNTPServer string
}

// NewPlatform picks the strategy for goos. Anything that is neither darwin
// nor windows is treated like linux.
func NewPlatform(config PlatformConfig) Platform {
	var direct func(time.Time) error
	if settimeofday.Permitted() {
		direct = settimeofday.Set
	}

	switch config.GOOS {
	case "darwin":
		return &Darwin{
			Runner: config.Runner,
			Server: orDefault(config.DarwinNTPServer, DefaultDarwinNTPServer),
			Direct: direct,
		}
	case "windows":
		return &Windows{Runner: config.Runner}
	default:
		return &Linux{
			Runner: config.Runner,
			Server: orDefault(config.NTPServer, DefaultNTPServer),
			Direct: direct,
		}
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func localize(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc)
}

// Linux resyncs with ntpdate and steps the clock with GNU date.
type Linux struct {
	Runner   command.Runner
	Server   string
	Location *time.Location

	// Direct, when set, replaces the date invocation. Used when already root.
	Direct func(time.Time) error
}

func (p *Linux) Name() string { return "linux" }

func (p *Linux) Resync(ctx context.Context) error {
	return p.Runner.Run(ctx, command.Spec{Name: "sudo", Args: []string{"ntpdate", p.Server}})
}

func (p *Linux) SetAbsoluteTime(ctx context.Context, t time.Time) error {
	if p.Direct != nil {
		return p.Direct(t)
	}
	stamp := localize(t, p.Location).Format("2006-01-02 15:04:05")
	return p.Runner.Run(ctx, command.Spec{Name: "sudo", Args: []string{"date", "-s", stamp}})
}

// Darwin resyncs with sntp and steps the clock with BSD date.
type Darwin struct {
	Runner   command.Runner
	Server   string
	Location *time.Location
	Direct   func(time.Time) error
}

func (p *Darwin) Name() string { return "darwin" }

func (p *Darwin) Resync(ctx context.Context) error {
	return p.Runner.Run(ctx, command.Spec{Name: "sudo", Args: []string{"sntp", "-sS", p.Server}})
}

func (p *Darwin) SetAbsoluteTime(ctx context.Context, t time.Time) error {
	if p.Direct != nil {
		return p.Direct(t)
	}
	return p.Runner.Run(ctx, command.Spec{Name: "sudo", Args: []string{"date", DarwinStamp(localize(t, p.Location))}})
}

// DarwinStamp formats t as MMDDhhmmYYYY.SS, the argument BSD date takes.
func DarwinStamp(t time.Time) string {
	return fmt.Sprintf("%02d%02d%02d%02d%04d.%02d",
		int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Year(), t.Second())
}

// Windows uses the w32tm service for resync and the cmd date/time builtins,
// which need one invocation each.
type Windows struct {
	Runner   command.Runner
	Location *time.Location
}

func (p *Windows) Name() string { return "windows" }

func (p *Windows) Resync(ctx context.Context) error {
	return p.Runner.Run(ctx, command.Spec{Name: "w32tm", Args: []string{"/resync", "/force"}})
}

func (p *Windows) SetAbsoluteTime(ctx context.Context, t time.Time) error {
	t = localize(t, p.Location)

	err := p.Runner.Run(ctx, command.Spec{Name: "cmd", Args: []string{"/C", "date", t.Format("01/02/2006")}})
	if err != nil {
		return err
	}
	return p.Runner.Run(ctx, command.Spec{Name: "cmd", Args: []string{"/C", "time", t.Format("15:04:05")}})
}
