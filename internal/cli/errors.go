package cli

import (
	"errors"
	"fmt"

	"github.com/sprite-ai/gerrit-cli/internal/gerrit"
	"github.com/sprite-ai/gerrit-cli/internal/model"
)

// Process exit codes.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitUsage         = 2
	ExitConfiguration = 3
	ExitData          = 4
	ExitRemote        = 5
)

// usageError marks a bad command line.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	var (
		ue   *usageError
		cerr *gerrit.CommandError
	)
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &ue):
		return ExitUsage
	case errors.Is(err, model.ErrConfiguration):
		return ExitConfiguration
	case errors.Is(err, model.ErrDataIntegrity),
		errors.Is(err, model.ErrProtocol),
		errors.Is(err, model.ErrMissingField):
		return ExitData
	case errors.As(err, &cerr):
		return ExitRemote
	default:
		return ExitFailure
	}
}
