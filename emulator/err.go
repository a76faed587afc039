package emulator

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrNoSignal      = errors.New(f("network produced no signal"))
	ErrNoPhases      = errors.New(f("network has no phases"))
	ErrNoProgram     = errors.New(f("no program specified"))
	ErrConfigUnknown = errors.New(f("unknown configuration key"))
)

// ErrRuntime indicates which machine, and where in it, a runtime error occurred.
type ErrRuntime struct {
	Machine int
	Ip      int64
	LineNo  int
	Err     error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo > 0 {
		return f("machine %d: line %d: %v", err.Machine, err.LineNo, err.Err)
	}
	return f("machine %d: ip %d: %v", err.Machine, err.Ip, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrConfigKey is an unrecognized key in a configuration file.
type ErrConfigKey string

func (err ErrConfigKey) Error() string {
	return f("config: %v: %v", string(err), ErrConfigUnknown)
}

func (err ErrConfigKey) Unwrap() error {
	return ErrConfigUnknown
}
