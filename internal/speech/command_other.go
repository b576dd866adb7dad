//go:build !unix

package speech

import (
	"errors"
	"os"
)

var errSignalsUnsupported = errors.New("pause and resume are not supported on this platform")

func suspend(p *os.Process) error {
	return errSignalsUnsupported
}

func resume(p *os.Process) error {
	return errSignalsUnsupported
}
