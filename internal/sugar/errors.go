package sugar

import "strings"

// UserError is an error meant to be shown to the operator as-is: a short
// message, an optional remediation hint and the underlying cause.
type UserError struct {
	Message string
	Hint    string
	Err     error
}

func (e UserError) Error() string {
	var buf strings.Builder
	buf.WriteString(e.Message)
	if e.Hint != "" {
		buf.WriteString("\n  Hint: " + e.Hint)
	}
	if e.Err != nil {
		buf.WriteString("\n  Details: " + e.Err.Error())
	}
	return buf.String()
}

func (e UserError) Unwrap() error {
	return e.Err
}
