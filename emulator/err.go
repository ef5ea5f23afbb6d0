package emulator

import (
	"github.com/ezrec/tribit/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Ip  int
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("ip %02d %v", err.Ip, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
