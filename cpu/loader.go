// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Listing is a loaded machine image: initial registers and the program.
type Listing struct {
	Register [3]uint64
	Program  Program
}

// Predefined system equates
var sysEquate = map[string]string{
	"REG_BITS":   "64",
	"TICK_LIMIT": fmt.Sprintf("%d", TICK_LIMIT),
}

// regMap maps listing register names to register bank indexes.
var regMap = map[string]int{
	"Register A": REG_A,
	"Register B": REG_B,
	"Register C": REG_C,
}

// Loader reads the textual listing form of a program:
//
//	Register A: 729
//	Register B: 0
//	Register C: 0
//
//	Program: 0,1,5,4,3,0
//
// Register values may be integers in any Go base notation, equate names,
// or $(...) expressions evaluated at load time.
type Loader struct {
	Verbose bool              // If set, verbosely logs the loader actions.
	Equate  map[string]string // Map of equates.

	predefine map[string]string // Predefines
}

// Predefine defines a new equate or redefines an existing equate.
func (ld *Loader) Predefine(equ string, value string) {
	if ld.predefine == nil {
		ld.predefine = map[string]string{equ: value}
	} else {
		ld.predefine[equ] = value
	}
}

// reset restores the equates to the system and user predefines.
func (ld *Loader) reset() {
	ld.Equate = maps.Clone(sysEquate)
	for attr, val := range ld.predefine {
		ld.Equate[attr] = val
	}
}

// Evaluate returns the value of a register word, outside of a listing.
func (ld *Loader) Evaluate(word string) (value uint64, err error) {
	ld.reset()
	return ld.valueOf(word)
}

// valueOf returns the value of a simple word.
func (ld *Loader) valueOf(word string) (value uint64, err error) {
	word = strings.TrimSpace(word)

	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		return ld.parenEval(word[2 : len(word)-1])
	}

	equate, ok := ld.Equate[word]
	if ok {
		word = equate
	}

	value, err = strconv.ParseUint(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// parenEval does load-time $(...) evaluations
func (ld *Loader) parenEval(expr string) (value uint64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range ld.Equate {
		value64, err := strconv.ParseUint(str, 0, 64)
		if err != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeUint64(value64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Uint64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// Parse parses an input stream into a Listing.
func (ld *Loader) Parse(input io.Reader) (listing *Listing, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			listing = nil
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	ld.reset()

	listing = &Listing{}
	var seen [3]bool
	var program bool

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if ld.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		if len(line) == 0 {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			err = ErrLineUnknown
			return
		}
		key = strings.Join(strings.Fields(key), " ")

		if key == "Program" {
			if program {
				err = ErrProgramDuplicate
				return
			}
			listing.Program, err = ParseProgram(value)
			if err != nil {
				return
			}
			program = true
			continue
		}

		if strings.HasPrefix(key, "Register") {
			reg, ok := regMap[key]
			if !ok {
				err = ErrRegisterSyntax
				return
			}
			if seen[reg] {
				err = ErrRegisterDuplicate
				return
			}
			listing.Register[reg], err = ld.valueOf(value)
			if err != nil {
				return
			}
			seen[reg] = true
			continue
		}

		err = ErrLineUnknown
		return
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	line = ""
	for _, ok := range seen {
		if !ok {
			err = ErrRegisterMissing
			return
		}
	}

	if !program {
		err = ErrProgramMissing
		return
	}

	return
}
