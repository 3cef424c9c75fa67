package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/jonboulle/clockwork"

	"github.com/AndrewLester/timewarp/internal/clock"
	"github.com/AndrewLester/timewarp/internal/command"
	"github.com/AndrewLester/timewarp/internal/config"
	"github.com/AndrewLester/timewarp/internal/menu"
	"github.com/AndrewLester/timewarp/internal/privilege"
	"github.com/AndrewLester/timewarp/internal/skew"
	"github.com/AndrewLester/timewarp/internal/sugar"
	"github.com/AndrewLester/timewarp/internal/ui"
)

const interruptExitCode = 130

type app struct {
	config *config.Config
	logger hclog.Logger
	runner command.Runner
	clock  clockwork.Clock
	goos   string

	// platform overrides the GOOS strategy when set.
	platform clock.Platform

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// interrupts delivers operator signals; exit ends the process.
	interrupts <-chan os.Signal
	exit       func(code int)
}

func newApp(cfg *config.Config, logger hclog.Logger) *app {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	return &app{
		config:     cfg,
		logger:     logger,
		runner:     command.NewExecRunner(logger.Named("command")),
		clock:      clockwork.NewRealClock(),
		goos:       runtime.GOOS,
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		interrupts: signals,
		exit:       os.Exit,
	}
}

// handleWarp acquires privileges, runs the menu and returns the exit code.
func handleWarp(a *app) int {
	fmt.Fprintln(a.stdout, ui.Title("🌟 Welcome to Time Warp CLI! 🌟"))
	if a.goos != "windows" {
		fmt.Fprintln(a.stdout, "Requesting sudo privileges to modify system time...")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session := privilege.NewSession(privilege.Config{
		Runner:          a.runner,
		Logger:          a.logger.Named("privilege"),
		Clock:           a.clock,
		RefreshInterval: a.config.RefreshInterval,
		GOOS:            a.goos,
	})

	// Watch for interrupts before sudo prompts so Ctrl-C at the password
	// prompt ends the process instead of reading as a denial.
	interrupted := make(chan struct{})
	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case sig := <-a.interrupts:
			a.logger.Debug("interrupted", "signal", sig)
			session.Stop()
			fmt.Fprintln(a.stderr)
			close(interrupted)
			a.exit(interruptExitCode)
		case <-finished:
		}
	}()

	if err := session.Acquire(ctx); err != nil {
		select {
		case <-interrupted:
			return interruptExitCode
		default:
		}
		fmt.Fprintln(a.stderr, ui.Error(sugar.UserError{
			Message: "This program requires sudo privileges to modify system time.",
			Err:     err,
		}.Error()))
		return 1
	}
	defer session.Stop()

	loop := menu.New(a.stdin, a.stdout, a.setter(), a.clock, a.logger.Named("menu"))
	err := loop.Run(ctx)

	var fatal *clock.FatalError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &fatal):
		fmt.Fprintln(a.stderr, ui.Error(fatal.Error()))
		return 1
	default:
		fmt.Fprintln(a.stderr, ui.Error(fmt.Sprintf("error: %v", err)))
		return 1
	}
}

func (a *app) setter() *clock.Setter {
	platform := a.platform
	if platform == nil {
		platform = clock.NewPlatform(clock.PlatformConfig{
			GOOS:            a.goos,
			Runner:          a.runner,
			NTPServer:       a.config.NTPServer,
			DarwinNTPServer: a.config.DarwinNTPServer,
		})
	}

	setter := &clock.Setter{
		Platform: platform,
		Out:      a.stdout,
		Err:      a.stderr,
		Logger:   a.logger.Named("clock"),
	}
	if a.config.SkewEnabled() {
		server := a.config.NTPServer
		if a.goos == "darwin" {
			server = a.config.DarwinNTPServer
		}
		setter.Skew = skew.NewReporter(server, a.config.QueryTimeout, a.logger.Named("skew"))
	}
	return setter
}
