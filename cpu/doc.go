// Package cpu implements the tribit machine and its listing loader.
//
// The machine has three unsigned 64-bit registers (A, B, C), an instruction
// pointer into a program of 3-bit values, and an output buffer. Programs are
// laid out as (opcode, operand) pairs. Operands are either literal, or
// "combo" operands which select a literal 0-3 or the live value of A, B or C.
//
// The loader reads the textual listing form (initial registers followed by
// the program) and supports compile-time $(...) expressions for register
// values.
package cpu
