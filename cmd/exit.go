package cmd

import (
	"errors"
	"fmt"

	"tasnim.dev/lbcheck/internal/inventory"
)

// Process exit codes. Severity codes 0-2 come straight from the result.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUpstream = 3
	ExitConfig   = 99
)

// ConfigError reports invalid flags or configuration, detected before any
// upstream call.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

func configErrorf(format string, args ...any) error {
	return &ConfigError{Err: fmt.Errorf(format, args...)}
}

// StatusError carries a non-zero monitoring status out of a command. It has
// already been reported on stdout and is not printed again.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

// statusResult turns an action exit code into a command error.
func statusResult(code int) error {
	if code == ExitOK {
		return nil
	}
	return &StatusError{Code: code}
}

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var status *StatusError
	if errors.As(err, &status) {
		return status.Code
	}
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return ExitConfig
	}
	if errors.Is(err, inventory.ErrUpstreamUnavailable) || errors.Is(err, inventory.ErrBalancerNotFound) {
		return ExitUpstream
	}
	return ExitFailure
}

// Reported reports whether err has already been written to the user.
func Reported(err error) bool {
	var status *StatusError
	return errors.As(err, &status)
}
