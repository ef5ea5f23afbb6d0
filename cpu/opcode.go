package cpu

import (
	"fmt"
)

// Opcode is a machine operation.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_ADV = Opcode(0) // adv
	OP_BXL = Opcode(1) // bxl
	OP_BST = Opcode(2) // bst
	OP_JNZ = Opcode(3) // jnz
	OP_BXC = Opcode(4) // bxc
	OP_OUT = Opcode(5) // out
	OP_BDV = Opcode(6) // bdv
	OP_CDV = Opcode(7) // cdv
)

// Valid returns true if the opcode is one of the eight machine operations.
func (op Opcode) Valid() bool {
	return op >= OP_ADV && op <= OP_CDV
}

// UsesCombo returns true if the operand of op is resolved as a combo operand.
func (op Opcode) UsesCombo() bool {
	switch op {
	case OP_ADV, OP_BST, OP_OUT, OP_BDV, OP_CDV:
		return true
	}
	return false
}

// UsesOperand returns false for operations that ignore their operand.
func (op Opcode) UsesOperand() bool {
	return op != OP_BXC
}

// Operand is the 3-bit value following an opcode.
type Operand uint8

// Combo is the decoded meaning of a combo operand.
type Combo int

//go:generate go tool stringer -linecomment -type=Combo
const (
	COMBO_0        = Combo(0) // 0
	COMBO_1        = Combo(1) // 1
	COMBO_2        = Combo(2) // 2
	COMBO_3        = Combo(3) // 3
	COMBO_A        = Combo(4) // a
	COMBO_B        = Combo(5) // b
	COMBO_C        = Combo(6) // c
	COMBO_RESERVED = Combo(7) // reserved
)

// Combo returns the combo interpretation of the operand.
func (o Operand) Combo() Combo {
	return Combo(o & 7)
}

// Register returns the register index selected by a combo operand.
func (c Combo) Register() (reg int, ok bool) {
	switch c {
	case COMBO_A:
		return REG_A, true
	case COMBO_B:
		return REG_B, true
	case COMBO_C:
		return REG_C, true
	}
	return
}

// Instruction is a decoded (opcode, operand) pair.
type Instruction struct {
	Op      Opcode
	Operand Operand
}

// Decode checks a raw (opcode, operand) pair from a program.
func Decode(op, operand uint8) (inst Instruction, err error) {
	inst = Instruction{Op: Opcode(op), Operand: Operand(operand)}

	if !inst.Op.Valid() {
		err = ErrOpcodeInvalid
		return
	}

	if operand > 7 {
		err = ErrOperandInvalid
		return
	}

	return
}

// String returns the assembly language representation of this instruction.
func (inst Instruction) String() string {
	switch {
	case !inst.Op.UsesOperand():
		return inst.Op.String()
	case inst.Op.UsesCombo():
		return fmt.Sprintf("%v %v", inst.Op, inst.Operand.Combo())
	default:
		return fmt.Sprintf("%v %d", inst.Op, inst.Operand)
	}
}
