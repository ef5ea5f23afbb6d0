package cpu

import (
	"errors"

	"github.com/ezrec/tribit/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrIpEmpty   = errors.New(f("ip empty"))
	ErrIpRange   = errors.New(f("ip out of range"))
	ErrTickLimit = errors.New(f("tick limit exceeded"))

	// Instruction decode errors
	ErrOpcodeInvalid  = errors.New(f("opcode invalid"))
	ErrOperandInvalid = errors.New(f("combo operand invalid"))

	// Loader errors
	ErrRegisterSyntax    = errors.New(f("register syntax"))
	ErrRegisterDuplicate = errors.New(f("register duplicated"))
	ErrRegisterMissing   = errors.New(f("register missing"))
	ErrProgramSyntax     = errors.New(f("program syntax"))
	ErrProgramDuplicate  = errors.New(f("program duplicated"))
	ErrProgramMissing    = errors.New(f("program missing"))
	ErrProgramValue      = errors.New(f("program value not in 0..7"))
	ErrProgramOdd        = errors.New(f("program has odd length"))
	ErrLineUnknown       = errors.New(f("unrecognized line"))
)

// ErrInstruction annotates an execution error with the failing instruction.
type ErrInstruction Instruction

func (ei ErrInstruction) Error() string {
	return f("bad instruction %v (%d,%d)", Instruction(ei).String(), int(ei.Op), int(ei.Operand))
}

func (ei ErrInstruction) Is(err error) (ok bool) {
	_, ok = err.(ErrInstruction)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
