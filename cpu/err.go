package cpu

import (
	"errors"

	"github.com/ezrec/yb60/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrBreak        = errors.New(f("ebreak"))
	ErrPcEnd        = errors.New(f("pc at end of memory"))
	ErrDivideByZero = errors.New(f("divide by zero"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrOrgSyntax          = errors.New(f(".org syntax"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrAddressSyntax      = errors.New(f("address syntax"))
	ErrOverlap            = errors.New(f("code overlaps"))
)

// ErrOpcode is an instruction word that does not decode.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%08x (%v)", uint32(eo), Code(eo).Group())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrImmediateRange is an immediate that does not fit its encoding.
type ErrImmediateRange struct {
	Value int64
	Width uint
}

func (err ErrImmediateRange) Error() string {
	return f("immediate %d does not fit in %d bits", err.Value, err.Width)
}

func (err ErrImmediateRange) Is(target error) (ok bool) {
	_, ok = target.(ErrImmediateRange)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseRegister string

func (err ErrParseRegister) Error() string {
	return f("'%v' is not a register", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
