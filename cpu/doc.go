// Package cpu implements the processor and assembler for the YB-60 monitor.
//
// The CPU consists of 32 general-purpose 32-bit registers (x0-x31) and a
// program counter, kept together as a 33 entry register file. Register x0 is
// an ordinary, writable register. Instructions are a subset of RV32IM in the
// six canonical encodings (R, I, S, SB, U and UJ), fetched little-endian from
// a flat 1MiB memory and executed strictly one at a time.
//
// The assembler provides a small assembly language for the same instruction
// subset, supporting labels, equates, and compile-time expression evaluation.
package cpu
