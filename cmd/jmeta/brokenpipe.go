package main

import (
	"errors"
	"syscall"
)

// isBrokenPipe reports whether err is (or wraps) EPIPE, the error stdout
// produces when its reader goes away (e.g. the output is piped into
// `head`). Spec §6 requires this case not to be treated as a failure.
func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE)
}
