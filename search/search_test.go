package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/tribit/cpu"
)

// machineFunc adapts a function to the Machine interface.
type machineFunc func(a uint64) ([]uint8, error)

func (fn machineFunc) RunProgram(a uint64) ([]uint8, error) {
	return fn(a)
}

func TestSearchQuine(t *testing.T) {
	assert := assert.New(t)

	prog := cpu.Program{0, 3, 5, 4, 3, 0}
	m := cpu.NewCpu(prog)

	s := NewSearcher(m, prog)
	a, ok, err := s.Quine()
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(uint64(117440), a)
	assert.Greater(s.Trials, 0)

	output, err := m.RunProgram(a)
	assert.NoError(err)
	assert.Equal([]uint8(prog), output)

	ok, err = Verify(m, prog, a)
	assert.NoError(err)
	assert.True(ok)

	ok, err = Verify(m, prog, a+8)
	assert.NoError(err)
	assert.False(ok)
}

func TestSearchBruteForce(t *testing.T) {
	assert := assert.New(t)

	prog := cpu.Program{0, 3, 5, 4, 3, 0}
	m := cpu.NewCpu(prog)

	a, ok, err := Quine(m, prog)
	assert.NoError(err)
	assert.True(ok)

	for smaller := range a {
		ok, err := Verify(m, prog, smaller)
		assert.NoError(err)
		if ok {
			t.Fatalf("a=%d also reproduces the program", smaller)
		}
	}
}

func TestSearchMinimalDigits(t *testing.T) {
	assert := assert.New(t)

	prog := cpu.Program{0, 3, 5, 4, 3, 0}
	m := cpu.NewCpu(prog)

	a, ok, err := Quine(m, prog)
	assert.NoError(err)
	assert.True(ok)

	// Every smaller digit at every position either fails the first
	// output match, or leads to a subtree with no solution.
	s := NewSearcher(m, prog)
	for position := range len(prog) {
		shift := DIGIT_BITS * position
		prefix := a >> (shift + DIGIT_BITS)
		digit := (a >> shift) & 7

		for smaller := range digit {
			candidate := prefix<<DIGIT_BITS | smaller
			output, err := m.RunProgram(candidate)
			assert.NoError(err)
			if len(output) == 0 || output[0] != prog[position] {
				continue
			}
			_, ok, err := s.From(position-1, candidate)
			assert.NoError(err)
			assert.False(ok, "position %d digit %d", position, smaller)
		}
	}
}

func TestSearchNoSolution(t *testing.T) {
	assert := assert.New(t)

	// adv 3; out b; jnz 0 -- always outputs 0, so '5' is unreachable.
	prog := cpu.Program{0, 3, 5, 5, 3, 0}
	m := cpu.NewCpu(prog)

	s := NewSearcher(m, prog)
	a, ok, err := s.Quine()
	assert.NoError(err)
	assert.False(ok)
	assert.Equal(uint64(0), a)
	assert.Equal(8+8*8, s.Trials)
}

func TestSearchEmpty(t *testing.T) {
	assert := assert.New(t)

	a, ok, err := Quine(cpu.NewCpu(nil), nil)
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(uint64(0), a)
}

func TestSearchMachineError(t *testing.T) {
	assert := assert.New(t)

	// out reserved
	prog := cpu.Program{5, 7}
	m := cpu.NewCpu(prog)

	s := NewSearcher(m, prog)
	_, ok, err := s.Quine()
	assert.False(ok)
	assert.ErrorIs(err, cpu.ErrOperandInvalid)
	assert.Equal(1, s.Trials)

	var trial *ErrTrial
	if assert.True(errors.As(err, &trial)) {
		assert.Equal(uint64(0), trial.A)
	}
}

func TestSearchStub(t *testing.T) {
	assert := assert.New(t)

	fault := errors.New("fault")

	table := [](struct {
		name    string
		machine machineFunc
		program cpu.Program
		a       uint64
		ok      bool
		err     error
		trials  int
	}){
		{"empty_output", func(a uint64) ([]uint8, error) {
			return nil, nil
		}, cpu.Program{0, 0}, 0, false, nil, 8},
		{"low_digit", func(a uint64) ([]uint8, error) {
			return []uint8{uint8(a & 7)}, nil
		}, cpu.Program{1, 2, 3}, 0o321, true, nil, 4 + 3 + 2},
		{"fault", func(a uint64) ([]uint8, error) {
			if a == 3 {
				return nil, fault
			}
			return []uint8{7}, nil
		}, cpu.Program{0, 0}, 0, false, fault, 4},
		{"overflow", func(a uint64) ([]uint8, error) {
			return []uint8{uint8(a & 7)}, nil
		}, cpu.Program{
			7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7,
			7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7,
		}, 0, false, ErrOverflow, 21 * 8},
	}

	for _, entry := range table {
		s := NewSearcher(entry.machine, entry.program)
		a, ok, err := s.Quine()
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, entry.name)
		} else {
			assert.NoError(err, entry.name)
		}
		assert.Equal(entry.ok, ok, entry.name)
		assert.Equal(entry.a, a, entry.name)
		assert.Equal(entry.trials, s.Trials, entry.name)
	}
}

func TestSearchCarryProgram(t *testing.T) {
	assert := assert.New(t)

	// bst a; bxl 1; cdv b; bxl 5; bxc; out b; adv 3; jnz 0
	//
	// B and C are recomputed from A at the top of every iteration, so
	// whatever the previous trial left in them does not matter.
	prog := cpu.Program{2, 4, 1, 1, 7, 5, 1, 5, 4, 0, 5, 5, 0, 3, 3, 0}
	m := cpu.NewCpu(prog)

	a, ok, err := Quine(m, prog)
	assert.NoError(err)
	if ok {
		m.Load(0, 0, 0)
		output, err := m.RunProgram(a)
		assert.NoError(err)
		assert.Equal([]uint8(prog), output)
	}
}
