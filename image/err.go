package image

import (
	"errors"

	"github.com/ezrec/eckert/translate"
)

var f = translate.From

var (
	ErrValueSyntax = errors.New(f("not a hexadecimal value"))
	ErrValueRange  = errors.New(f("value out of range"))
	ErrTooLong     = errors.New(f("too many lines"))
)

// ErrLine is an error at a specific line of an image file.
type ErrLine struct {
	Name   string
	LineNo int
	Err    error
}

func (err *ErrLine) Error() string {
	return f("%v:%v: %v", err.Name, err.LineNo, err.Err)
}

func (err *ErrLine) Unwrap() error {
	return err.Err
}
