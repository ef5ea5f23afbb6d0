package cpu

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strconv"
	"strings"
)

// Register bank indexes.
const (
	REG_A = 0 // Accumulator.
	REG_B = 1
	REG_C = 2
)

// TICK_LIMIT is the default number of instructions a single run may execute.
const TICK_LIMIT = 1 << 20

// Cpu is the simulation context for the tribit machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Program Program // Program being executed. Never modified by the Cpu.

	Ip       int       // Current instruction pointer.
	Register [3]uint64 // Register bank (A, B, C).
	Output   []uint8   // Values emitted by 'out', in order.

	TickLimit int // Maximum ticks per run; 0 disables the limit.
	Ticks     int // Ticks counter since the last run started.
}

// NewCpu creates a new CPU executing prog.
func NewCpu(prog Program) (cpu *Cpu) {
	cpu = &Cpu{
		Program:   prog,
		TickLimit: TICK_LIMIT,
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %04d\n", "ip", cpu.Ip)
	for n, reg := range []string{"a", "b", "c"} {
		val := cpu.Register[n]
		text += fmt.Sprintf("% 5s: %#o (%d)\n", reg, val, val)
	}
	text += fmt.Sprintf("% 5s: %v\n", "out", cpu.OutputString())

	return
}

// Reset the CPU state.
// - Clears the registers and the output buffer.
// - Zeros the ticks counter.
// - Sets the instruction pointer to the start of the program.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	cpu.restart()
}

// Load sets all three registers and restarts the program.
func (cpu *Cpu) Load(a, b, c uint64) {
	cpu.Register = [3]uint64{a, b, c}
	cpu.restart()
}

// restart rewinds the instruction pointer, output and ticks, keeping registers.
func (cpu *Cpu) restart() {
	cpu.Ip = 0
	cpu.Output = cpu.Output[:0]
	cpu.Ticks = 0
}

// Halted returns true once the instruction pointer has left the program.
func (cpu *Cpu) Halted() bool {
	return cpu.Ip < 0 || cpu.Ip >= len(cpu.Program)
}

// Fetch decodes the instruction at the instruction pointer.
func (cpu *Cpu) Fetch() (inst Instruction, err error) {
	if cpu.Halted() {
		err = ErrIpEmpty
		return
	}

	if cpu.Ip+1 >= len(cpu.Program) {
		inst.Op = Opcode(cpu.Program[cpu.Ip])
		err = errors.Join(ErrInstruction(inst), ErrIpRange)
		return
	}

	inst, err = Decode(cpu.Program[cpu.Ip], cpu.Program[cpu.Ip+1])
	if err != nil {
		err = errors.Join(ErrInstruction(inst), err)
		return
	}

	return
}

// Combo resolves a combo operand: 0-3 are literal, 4-6 select a register.
func (cpu *Cpu) Combo(operand Operand) (value uint64, err error) {
	switch combo := operand.Combo(); combo {
	case COMBO_0, COMBO_1, COMBO_2, COMBO_3:
		value = uint64(combo)
	case COMBO_A, COMBO_B, COMBO_C:
		reg, _ := combo.Register()
		value = cpu.Register[reg]
	case COMBO_RESERVED:
		err = ErrOperandInvalid
	}

	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	if cpu.TickLimit > 0 && cpu.Ticks >= cpu.TickLimit {
		err = ErrTickLimit
		return
	}

	inst, err := cpu.Fetch()
	if err != nil {
		return
	}

	err = cpu.Execute(inst)
	if err != nil {
		return
	}

	cpu.Ticks += 1

	return
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrInstruction(inst), err)
		}
	}()
	if cpu.Verbose {
		log.Printf("%02d: %v", cpu.Ip, inst)
	}

	next_ip := cpu.Ip + 2

	reg := &cpu.Register

	var value uint64
	if inst.Op.UsesCombo() {
		value, err = cpu.Combo(inst.Operand)
		if err != nil {
			return
		}
	}

	// Shift counts of 64 or more yield zero, which is the floor
	// division result for any 64-bit dividend.
	switch inst.Op {
	case OP_ADV:
		reg[REG_A] = reg[REG_A] >> value
	case OP_BXL:
		reg[REG_B] ^= uint64(inst.Operand)
	case OP_BST:
		reg[REG_B] = value & 7
	case OP_JNZ:
		if reg[REG_A] != 0 {
			target := int(inst.Operand)
			if target > len(cpu.Program) {
				err = ErrIpRange
				return
			}
			next_ip = target
		}
	case OP_BXC:
		reg[REG_B] ^= reg[REG_C]
	case OP_OUT:
		cpu.Output = append(cpu.Output, uint8(value&7))
	case OP_BDV:
		reg[REG_B] = reg[REG_A] >> value
	case OP_CDV:
		reg[REG_C] = reg[REG_A] >> value
	default:
		err = ErrOpcodeInvalid
		return
	}

	cpu.Ip = next_ip

	return
}

// Run ticks the CPU until the instruction pointer leaves the program.
func (cpu *Cpu) Run() (err error) {
	for !cpu.Halted() {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// RunProgram runs the program from the start with register A set to a,
// and returns a copy of the output.
//
// Registers B and C are not reset; they hold whatever the previous run
// left in them. Use Load to set all registers.
func (cpu *Cpu) RunProgram(a uint64) (output []uint8, err error) {
	cpu.Register[REG_A] = a
	cpu.restart()

	err = cpu.Run()
	if err != nil {
		return
	}

	output = slices.Clone(cpu.Output)
	return
}

// OutputString returns the output buffer as comma separated decimal values.
func (cpu *Cpu) OutputString() string {
	return Join(cpu.Output)
}

// Join formats 3-bit values as a comma separated decimal list.
func Join(values []uint8) string {
	strs := make([]string, len(values))
	for n, value := range values {
		strs[n] = strconv.Itoa(int(value))
	}
	return strings.Join(strs, ",")
}
