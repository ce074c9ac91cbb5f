package monitor

import (
	"errors"

	"github.com/ezrec/eckert/translate"
)

var f = translate.From

var (
	ErrCommandUnknown   = errors.New(f("command not found"))
	ErrCommandAmbiguous = errors.New(f("command not unique"))
	ErrArgument         = errors.New(f("invalid argument"))
)

// ErrCommand is an error from a monitor command.
type ErrCommand struct {
	Name string
	Err  error
}

func (err *ErrCommand) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrCommand) Unwrap() error {
	return err.Err
}
