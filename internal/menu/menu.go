// Package menu drives the interactive numeric menu.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/AndrewLester/timewarp/internal/interval"
	"github.com/AndrewLester/timewarp/internal/ui"
	"github.com/hashicorp/go-hclog"
	"github.com/jonboulle/clockwork"
)

type Setter interface {
	SetTime(ctx context.Context, target time.Time, useNetworkTime bool) error
}

type StateKind int

const (
	MainMenu StateKind = iota
	IntervalMenu
	Terminated
)

type State struct {
	Kind      StateKind
	Direction interval.Direction
}

const (
	optionForward  = "1"
	optionBackward = "2"
	optionReset    = "3"
	optionExit     = "4"
)

type Loop struct {
	in     *bufio.Reader
	out    io.Writer
	setter Setter
	clock  clockwork.Clock
	logger hclog.Logger
}

func New(in io.Reader, out io.Writer, setter Setter, clock clockwork.Clock, logger hclog.Logger) *Loop {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Loop{
		in:     bufio.NewReader(in),
		out:    out,
		setter: setter,
		clock:  clock,
		logger: logger,
	}
}

// Run shows the main menu until the operator exits or input ends. A clock
// setting failure, a stdin read error or context cancellation produce an
// error.
func (l *Loop) Run(ctx context.Context) error {
	state := State{Kind: MainMenu}
	for state.Kind != Terminated {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch state.Kind {
		case MainMenu:
			state, err = l.mainMenu(ctx)
		case IntervalMenu:
			state, err = l.intervalMenu(ctx, state.Direction)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *Loop) mainMenu(ctx context.Context) (State, error) {
	fmt.Fprintln(l.out)
	fmt.Fprintln(l.out, ui.Title("🕒 Time Warp Menu:"))
	fmt.Fprintln(l.out, "1. Jump Forward")
	fmt.Fprintln(l.out, "2. Jump Backward")
	fmt.Fprintln(l.out, "3. Reset to Current Time")
	fmt.Fprintln(l.out, "4. Exit")

	answer, err := l.prompt("\nSelect an option (1-4): ")
	if errors.Is(err, io.EOF) {
		return State{Kind: Terminated}, nil
	}
	if err != nil {
		return State{}, err
	}

	switch answer {
	case optionForward:
		return State{Kind: IntervalMenu, Direction: interval.Forward}, nil
	case optionBackward:
		return State{Kind: IntervalMenu, Direction: interval.Backward}, nil
	case optionReset:
		if err := l.setter.SetTime(ctx, l.clock.Now(), true); err != nil {
			return State{}, err
		}
		return State{Kind: MainMenu}, nil
	case optionExit:
		fmt.Fprintln(l.out, "Goodbye! 👋")
		return State{Kind: Terminated}, nil
	default:
		fmt.Fprintln(l.out, ui.Warning("Invalid option. Please try again."))
		return State{Kind: MainMenu}, nil
	}
}

func (l *Loop) intervalMenu(ctx context.Context, direction interval.Direction) (State, error) {
	entries := interval.Table()

	fmt.Fprintln(l.out)
	fmt.Fprintln(l.out, ui.Title("Select time interval:"))
	for i, entry := range entries {
		fmt.Fprintf(l.out, "%d. %s\n", i+1, entry.Label)
	}
	fmt.Fprintf(l.out, "%d. Back to main menu\n", interval.Len()+1)

	answer, err := l.prompt("\nSelect an option: ")
	if errors.Is(err, io.EOF) {
		return State{Kind: Terminated}, nil
	}
	if err != nil {
		return State{}, err
	}

	// Out of range, non-numeric and "back" all return to the main menu
	// without a message.
	selection, convErr := strconv.Atoi(answer)
	if convErr != nil || selection < 1 || selection > interval.Len() {
		l.logger.Trace("interval selection ignored", "input", answer)
		return State{Kind: MainMenu}, nil
	}

	entry := entries[selection-1]
	target := interval.Target(l.clock.Now(), entry, direction)
	l.logger.Debug("warping clock", "direction", direction, "interval", entry.Label, "target", target)

	if err := l.setter.SetTime(ctx, target, false); err != nil {
		return State{}, err
	}
	return State{Kind: MainMenu}, nil
}

// prompt reads one line of any length. A final line without a newline is
// still returned; io.EOF is reported once nothing is left.
func (l *Loop) prompt(question string) (string, error) {
	fmt.Fprint(l.out, question)
	line, err := l.in.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line != "":
	case errors.Is(err, io.EOF):
		fmt.Fprintln(l.out)
		return "", io.EOF
	default:
		fmt.Fprintln(l.out)
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
