package memory

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrNegativeAddress = errors.New(f("negative address"))
)

// ErrAddress reports the offending address of a negative memory access.
type ErrAddress int64

func (ea ErrAddress) Error() string {
	return f("address %d is negative", int64(ea))
}

func (ea ErrAddress) Unwrap() error {
	return ErrNegativeAddress
}
