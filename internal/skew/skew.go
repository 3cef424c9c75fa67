// Package skew tells the operator how far the system clock sits from a
// network time server after it has been warped.
package skew

import (
	"context"
	"fmt"
	"time"

	"github.com/beevik/ntp"
	"github.com/hashicorp/go-hclog"
)

const DefaultTimeout = 5 * time.Second

type QueryFunc func(host string, opt ntp.QueryOptions) (*ntp.Response, error)

type Reporter struct {
	Server  string
	Timeout time.Duration
	Query   QueryFunc
	Logger  hclog.Logger
}

func NewReporter(server string, timeout time.Duration, logger hclog.Logger) *Reporter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Reporter{
		Server:  server,
		Timeout: timeout,
		Query:   ntp.QueryWithOptions,
		Logger:  logger,
	}
}

// Offset returns how far the local clock is ahead of the server (negative
// when behind). The query cannot be interrupted once sent, so it waits at
// most the shorter of Timeout and the time left before ctx's deadline.
func (r *Reporter) Offset(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	timeout := r.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, context.DeadlineExceeded
		}
		if remaining < timeout {
			timeout = remaining
		}
	}

	resp, err := r.Query(r.Server, ntp.QueryOptions{Timeout: timeout})
	if err != nil {
		return 0, fmt.Errorf("query %s: %w", r.Server, err)
	}
	if err := resp.Validate(); err != nil {
		return 0, fmt.Errorf("invalid response from %s: %w", r.Server, err)
	}

	if r.Logger != nil {
		r.Logger.Trace("ntp response", "server", r.Server, "offset", resp.ClockOffset, "rtt", resp.RTT, "stratum", resp.Stratum)
	}

	// ClockOffset is what must be added to the local clock to match the server.
	return -resp.ClockOffset, nil
}

func (r *Reporter) Report(ctx context.Context) (string, error) {
	offset, err := r.Offset(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Clock is now %s from %s", FormatOffset(offset), r.Server), nil
}

// FormatOffset renders d with an explicit sign, rounded to milliseconds.
func FormatOffset(d time.Duration) string {
	d = d.Round(time.Millisecond)
	if d < 0 {
		return d.String()
	}
	return "+" + d.String()
}
