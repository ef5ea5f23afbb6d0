// Package search finds the smallest initial A register that makes a tribit
// program print its own listing.
//
// The search treats A as a string of octal digits, most significant first.
// It only works for programs shaped like a single loop that emits one value
// per iteration, derived from the low bits of A, and then shifts A right by
// three bits. Each output then depends only on the digits of A fixed so far,
// so a digit at position p can be checked by running the program once and
// comparing the first output value with the p'th listing value.
package search

import (
	"log"

	"github.com/ezrec/tribit/cpu"
)

// DIGIT_BITS is the width of one octal digit of A.
const DIGIT_BITS = 3

// Machine runs a program with register A set to a, returning its output.
type Machine interface {
	RunProgram(a uint64) (output []uint8, err error)
}

var _ Machine = (*cpu.Cpu)(nil)

// Searcher is the state of a quine search.
type Searcher struct {
	Verbose bool        // If set, logs every search frame.
	Machine Machine     // Machine used to evaluate candidates.
	Program cpu.Program // Listing the output must reproduce.

	Trials int // Number of candidate runs so far.
}

// NewSearcher creates a searcher for prog, evaluated on m.
func NewSearcher(m Machine, prog cpu.Program) (s *Searcher) {
	s = &Searcher{
		Machine: m,
		Program: prog,
	}

	return
}

// Quine returns the smallest A for which the program outputs itself.
// If no such A exists, ok is false and err is nil. Any machine error
// aborts the search, as does a candidate wider than 64 bits.
func (s *Searcher) Quine() (a uint64, ok bool, err error) {
	s.Trials = 0

	return s.From(len(s.Program)-1, 0)
}

// From continues the search at listing position, with the higher
// digits of A already fixed to prefix.
func (s *Searcher) From(position int, prefix uint64) (a uint64, ok bool, err error) {
	if position < 0 {
		if s.Verbose {
			log.Printf("search: found %#o", prefix)
		}
		return prefix, true, nil
	}

	if prefix>>(64-DIGIT_BITS) != 0 {
		err = ErrOverflow
		return
	}

	target := s.Program[position]
	base := prefix << DIGIT_BITS

	for digit := range uint64(1 << DIGIT_BITS) {
		candidate := base | digit

		var output []uint8
		output, err = s.Machine.RunProgram(candidate)
		s.Trials += 1
		if err != nil {
			err = &ErrTrial{A: candidate, Err: err}
			return
		}

		if len(output) == 0 || output[0] != target {
			continue
		}

		if s.Verbose {
			log.Printf("search: position %d digit %d matches (a=%#o)", position, digit, candidate)
		}

		a, ok, err = s.From(position-1, candidate)
		if err != nil || ok {
			return
		}
	}

	if s.Verbose {
		log.Printf("search: position %d backtrack (prefix=%#o)", position, prefix)
	}

	return
}

// Quine searches for the smallest A that makes m output prog.
func Quine(m Machine, prog cpu.Program) (a uint64, ok bool, err error) {
	return NewSearcher(m, prog).Quine()
}

// Verify runs the program once with A set to a, and reports whether
// the output reproduces the listing.
func Verify(m Machine, prog cpu.Program, a uint64) (ok bool, err error) {
	output, err := m.RunProgram(a)
	if err != nil {
		return
	}

	ok = prog.Equal(output)
	return
}
