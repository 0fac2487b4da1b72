package objfile

import (
	"errors"

	"github.com/ezrec/yb60/translate"
)

var f = translate.From

var (
	ErrRecordType   = errors.New(f("unknown record type"))
	ErrChecksum     = errors.New(f("checksum mismatch"))
	ErrRecordSyntax = errors.New(f("malformed record"))
)

// ErrLine indicates the object file line of an error.
type ErrLine struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrLine) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrLine) Unwrap() error {
	return err.Err
}
