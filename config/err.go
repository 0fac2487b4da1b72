package config

import (
	"errors"

	"github.com/ezrec/yb60/translate"
)

var f = translate.From

var (
	ErrConfigFile = errors.New(f("unable to read configuration"))
)
