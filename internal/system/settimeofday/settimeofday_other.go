//go:build !unix

package settimeofday

import (
	"errors"
	"time"
)

func Set(t time.Time) error {
	return errors.ErrUnsupported
}

func Permitted() bool {
	return false
}
