package search

import (
	"errors"

	"github.com/ezrec/tribit/translate"
)

var f = translate.From

var (
	ErrOverflow = errors.New(f("candidate exceeds 64 bits"))
)

// ErrTrial is a machine error raised while evaluating a candidate A.
type ErrTrial struct {
	A   uint64
	Err error
}

func (err *ErrTrial) Error() string {
	return f("trial a=%#o: %v", err.A, err.Err)
}

func (err *ErrTrial) Unwrap() error {
	return err.Err
}
