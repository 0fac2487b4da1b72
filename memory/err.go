package memory

import (
	"github.com/ezrec/yb60/translate"
)

var f = translate.From

// ErrAddress is an access outside of the emulated address space.
type ErrAddress uint32

func (err ErrAddress) Error() string {
	return f("address 0x%05X out of range", uint32(err))
}

func (err ErrAddress) Is(target error) (ok bool) {
	_, ok = target.(ErrAddress)
	return
}
