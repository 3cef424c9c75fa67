//go:build unix

package settimeofday

import (
	"time"

	"golang.org/x/sys/unix"
)

// Set steps the wall clock to t. Needs root or CAP_SYS_TIME.
func Set(t time.Time) error {
	timeVal := unix.NsecToTimeval(t.UnixNano())
	return unix.Settimeofday(&timeVal)
}

// Permitted reports whether the process runs as root and can call Set
// without going through sudo.
func Permitted() bool {
	return unix.Geteuid() == 0
}
