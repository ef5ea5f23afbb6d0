package cpu

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"
)

// Program is a listing of 3-bit values, as (opcode, operand) pairs.
type Program []uint8

// String returns the listing as comma separated values.
func (prog Program) String() string {
	return Join(prog)
}

// Equal returns true if output reproduces the program exactly.
func (prog Program) Equal(output []uint8) bool {
	return slices.Equal([]uint8(prog), output)
}

// Instructions iterates over the (opcode, operand) pairs of the program,
// keyed by instruction pointer. Pairs are not validated; a trailing odd
// value is skipped.
func (prog Program) Instructions() iter.Seq2[int, Instruction] {
	return func(yield func(ip int, inst Instruction) bool) {
		for ip := 0; ip+1 < len(prog); ip += 2 {
			inst := Instruction{Op: Opcode(prog[ip]), Operand: Operand(prog[ip+1])}
			if !yield(ip, inst) {
				return
			}
		}
	}
}

// Disassemble returns one line of assembly per instruction.
func (prog Program) Disassemble() (lines []string, err error) {
	if len(prog)%2 != 0 {
		err = ErrProgramOdd
		return
	}

	for ip, inst := range prog.Instructions() {
		_, err = Decode(uint8(inst.Op), uint8(inst.Operand))
		if err != nil {
			err = errors.Join(ErrInstruction(inst), err)
			return
		}
		lines = append(lines, fmt.Sprintf("%02d: %v", ip, inst))
	}

	return
}

// ParseProgram parses a comma separated listing of 3-bit values.
func ParseProgram(text string) (prog Program, err error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return
	}

	for _, word := range strings.Split(text, ",") {
		word = strings.TrimSpace(word)
		var value uint64
		value, err = strconv.ParseUint(word, 10, 8)
		if err != nil {
			err = ErrParseNumber(word)
			return
		}
		if value > 7 {
			err = ErrProgramValue
			return
		}
		prog = append(prog, uint8(value))
	}

	if len(prog)%2 != 0 {
		err = ErrProgramOdd
		return
	}

	return
}
