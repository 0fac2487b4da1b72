package monitor

import (
	"github.com/ezrec/yb60/translate"
)

var f = translate.From

type ErrAddressSyntax string

func (err ErrAddressSyntax) Error() string {
	return f("'%v' is not an address", string(err))
}

type ErrByteSyntax string

func (err ErrByteSyntax) Error() string {
	return f("'%v' is not a byte", string(err))
}
