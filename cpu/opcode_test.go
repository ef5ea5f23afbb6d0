package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeString(t *testing.T) {
	assert := assert.New(t)

	names := []string{"adv", "bxl", "bst", "jnz", "bxc", "out", "bdv", "cdv"}
	for n, name := range names {
		op := Opcode(n)
		assert.True(op.Valid(), name)
		assert.Equal(name, op.String())
	}

	assert.False(Opcode(8).Valid())
	assert.False(Opcode(-1).Valid())
	assert.Equal("Opcode(8)", Opcode(8).String())
}

func TestOpcodeOperands(t *testing.T) {
	assert := assert.New(t)

	combo := map[Opcode]bool{
		OP_ADV: true,
		OP_BXL: false,
		OP_BST: true,
		OP_JNZ: false,
		OP_BXC: false,
		OP_OUT: true,
		OP_BDV: true,
		OP_CDV: true,
	}

	for op, uses := range combo {
		assert.Equal(uses, op.UsesCombo(), op.String())
		assert.Equal(op != OP_BXC, op.UsesOperand(), op.String())
	}
}

func TestCombo(t *testing.T) {
	assert := assert.New(t)

	names := []string{"0", "1", "2", "3", "a", "b", "c", "reserved"}
	for n, name := range names {
		assert.Equal(name, Operand(n).Combo().String())
	}

	for _, c := range []Combo{COMBO_0, COMBO_1, COMBO_2, COMBO_3, COMBO_RESERVED} {
		_, ok := c.Register()
		assert.False(ok, c.String())
	}

	reg, ok := COMBO_A.Register()
	assert.True(ok)
	assert.Equal(REG_A, reg)
	reg, ok = COMBO_B.Register()
	assert.True(ok)
	assert.Equal(REG_B, reg)
	reg, ok = COMBO_C.Register()
	assert.True(ok)
	assert.Equal(REG_C, reg)
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	inst, err := Decode(5, 4)
	assert.NoError(err)
	assert.Equal(Instruction{Op: OP_OUT, Operand: 4}, inst)

	// Decode does not reject combo 7; only resolution does.
	_, err = Decode(0, 7)
	assert.NoError(err)

	_, err = Decode(8, 0)
	assert.ErrorIs(err, ErrOpcodeInvalid)

	_, err = Decode(0, 8)
	assert.ErrorIs(err, ErrOperandInvalid)
}

func TestInstructionString(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		inst Instruction
		text string
	}){
		{Instruction{OP_ADV, 3}, "adv 3"},
		{Instruction{OP_ADV, 4}, "adv a"},
		{Instruction{OP_BXL, 7}, "bxl 7"},
		{Instruction{OP_BST, 5}, "bst b"},
		{Instruction{OP_JNZ, 0}, "jnz 0"},
		{Instruction{OP_BXC, 3}, "bxc"},
		{Instruction{OP_OUT, 6}, "out c"},
		{Instruction{OP_BDV, 7}, "bdv reserved"},
		{Instruction{OP_CDV, 5}, "cdv b"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.inst.String())
	}
}
