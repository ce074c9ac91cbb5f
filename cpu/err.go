package cpu

import (
	"errors"

	"github.com/ezrec/eckert/translate"
)

var f = translate.From

var (
	// Control word content errors
	ErrWordAmbiguous   = errors.New(f("map and conditional dispatch both set"))
	ErrWordMultiSelect = errors.New(f("more than one load signal"))
	ErrWordReserved    = errors.New(f("bits set outside the control word"))

	// Assembler errors
	ErrEquateSyntax     = errors.New(f(".equ syntax"))
	ErrEquateDuplicate  = errors.New(f(".equ duplicated"))
	ErrOrgSyntax        = errors.New(f(".org syntax"))
	ErrMapSyntax        = errors.New(f(".map syntax"))
	ErrMapDuplicate     = errors.New(f(".map duplicated"))
	ErrWordSyntax       = errors.New(f(".word syntax"))
	ErrLabelDuplicate   = errors.New(f("label duplicated"))
	ErrAddressDuplicate = errors.New(f("micro-address already assembled"))
	ErrAddressRange     = errors.New(f("micro-address out of range"))
	ErrOpcodeInvalid    = errors.New(f("opcode invalid"))
	ErrTargetMissing    = errors.New(f("target missing"))
	ErrTargetDuplicate  = errors.New(f("next address already set"))
	ErrSignalDuplicate  = errors.New(f("signal duplicated"))
	ErrTokenInvalid     = errors.New(f("token invalid"))
	ErrControlFull      = errors.New(f("control store full"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrWord reports a problem with the control word at a micro-address.
type ErrWord struct {
	Address uint8
	Raw     uint32
	Err     error
}

func (err *ErrWord) Error() string {
	return f("control word %02x (%06x): %v", err.Address, err.Raw, err.Err)
}

func (err *ErrWord) Unwrap() error {
	return err.Err
}
