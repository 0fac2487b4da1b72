// Package monitor implements the interactive YB-60 monitor.
//
// Each input line is one command:
//
//	exit            leave the monitor
//	info            show the general registers
//	ADDR            show the byte at ADDR
//	START.END       show the bytes from START to END, inclusive
//	ADDR: BB BB ..  write bytes starting at ADDR
//	ADDRT           disassemble from ADDR to the next EBREAK
//	ADDRR           reset, and run from ADDR with an instruction trace
//	ADDRS           reset, and single step from ADDR
//
// Addresses and bytes are hexadecimal.
package monitor
