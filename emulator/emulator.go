// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"log"

	"github.com/ezrec/tribit/cpu"
	"github.com/ezrec/tribit/search"
)

// Emulator state. CPU + the listing it was loaded from.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Listing  *cpu.Listing // Reference to the loaded listing.

	// If set, registers B and C are restored from the listing before
	// every RunProgram, instead of carrying over from the previous run.
	Isolate bool

	Trials int // Candidate runs made by the last Quine search.
}

// NewEmulator creates a new emulator for a listing.
func NewEmulator(listing *cpu.Listing) (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(listing.Program),
		Listing: listing,
	}

	return
}

// Reset the emulator to the listing's initial registers.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Program = emu.Listing.Program

	reg := emu.Listing.Register
	emu.Cpu.Load(reg[cpu.REG_A], reg[cpu.REG_B], reg[cpu.REG_C])

	if emu.Verbose {
		log.Printf("emulator: reset a=%d b=%d c=%d", reg[cpu.REG_A], reg[cpu.REG_B], reg[cpu.REG_C])
	}
}

// Ip returns current instruction pointer.
func (emu *Emulator) Ip() int {
	return emu.Cpu.Ip
}

// Code returns the current instruction.
func (emu *Emulator) Code() cpu.Instruction {
	for ip, inst := range emu.Listing.Program.Instructions() {
		if ip == emu.Cpu.Ip {
			return inst
		}
	}

	return cpu.Instruction{}
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	ip := emu.Cpu.Ip
	defer func() {
		if err != nil {
			err = &ErrRuntime{Ip: ip, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrIpEmpty) {
		err = nil
		done = true
		return
	}
	if err != nil {
		return
	}

	done = emu.Cpu.Halted()
	return
}

// Run resets the emulator, runs the listing to completion, and returns
// the output as comma separated values.
func (emu *Emulator) Run() (output string, err error) {
	emu.Reset()

	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	output = emu.Cpu.OutputString()
	return
}

// RunProgram runs the listing with register A set to a.
func (emu *Emulator) RunProgram(a uint64) (output []uint8, err error) {
	if emu.Isolate {
		emu.Cpu.Register[cpu.REG_B] = emu.Listing.Register[cpu.REG_B]
		emu.Cpu.Register[cpu.REG_C] = emu.Listing.Register[cpu.REG_C]
	}

	output, err = emu.Cpu.RunProgram(a)
	if err != nil {
		err = &ErrRuntime{Ip: emu.Cpu.Ip, Err: err}
		return
	}

	return
}

// Quine searches for the smallest register A that makes the listing
// output itself.
func (emu *Emulator) Quine() (a uint64, ok bool, err error) {
	emu.Reset()

	s := search.NewSearcher(emu, emu.Listing.Program)
	s.Verbose = emu.Verbose

	a, ok, err = s.Quine()
	emu.Trials = s.Trials

	if emu.Verbose {
		log.Printf("emulator: quine search made %d trials", s.Trials)
	}

	return
}

// Disassemble returns the listing's program as assembly.
func (emu *Emulator) Disassemble() (lines []string, err error) {
	return emu.Listing.Program.Disassemble()
}
