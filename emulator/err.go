package emulator

import (
	"errors"

	"github.com/ezrec/eckert/translate"
)

var f = translate.From

var (
	ErrCycleLimit = errors.New(f("cycle limit reached"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	UAddr uint8
	Cycle int
	Err   error
}

func (err *ErrRuntime) Error() string {
	return f("µaddr %02x cycle %v %v", err.UAddr, err.Cycle, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
