package emulator

import (
	"errors"

	"github.com/ezrec/yb60/translate"
)

var f = translate.From

var (
	ErrStepLimit = errors.New(f("step limit reached"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc     uint32 // Address of the failing instruction.
	Code   uint32 // Instruction word, if it was fetched.
	LineNo int    // Source line, when running an assembled program.
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo > 0 {
		return f("pc %05X code %08X line %d: %v", err.Pc, err.Code, err.LineNo, err.Err)
	}
	return f("pc %05X code %08X: %v", err.Pc, err.Code, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
