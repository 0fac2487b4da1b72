package main

import (
	"github.com/ezrec/yb60/translate"
)

var f = translate.From

// ErrInputFile is a failure to load the object file given on the command line.
type ErrInputFile struct {
	Path string
	Err  error
}

func (err *ErrInputFile) Error() string {
	return f("Format error input file: %v: %v", err.Path, err.Err)
}

func (err *ErrInputFile) Unwrap() error {
	return err.Err
}
