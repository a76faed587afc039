// Package cpu implements the Intcode machine and its assembler.
//
// A Machine holds a growable integer memory, an instruction pointer and a
// relative base register. It executes one instruction per Step and hands
// control back to the host whenever it produces output, needs input that
// has not been provided yet, or halts. The machine never blocks: input is
// queued by the host with ProvideInput, and a starved Input instruction is
// retried on the next Step.
//
// Instructions are decimal words: the two low digits select the opcode and
// each higher digit selects the parameter mode (position, immediate or
// relative) of one operand, first operand in the hundreds digit.
//
// The assembler provides a small assembly language for the instruction set,
// supporting labels, equates, character literals and compile-time
// expression evaluation.
package cpu
