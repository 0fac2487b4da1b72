package cpu

import (
	"iter"

	"github.com/ezrec/yb60/memory"
)

// Opcode is one assembled statement.
type Opcode struct {
	LineNo  int      // Source line number.
	Address uint32   // Address of the first byte.
	Words   []string // Source words, mnemonic first.
	Bytes   []byte   // Encoded little-endian bytes.
}

// Program is an assembled program, sorted by address.
type Program struct {
	Opcodes []Opcode
}

// Debug returns the opcode that covers an address, or nil.
func (prog *Program) Debug(addr uint32) (op *Opcode) {
	for n, item := range prog.Opcodes {
		if addr >= item.Address && uint64(addr) < uint64(item.Address)+uint64(len(item.Bytes)) {
			op = &prog.Opcodes[n]
			break
		}
	}

	return
}

// Segments returns contiguous runs of program bytes by start address.
func (prog *Program) Segments() iter.Seq2[uint32, []byte] {
	return func(yield func(addr uint32, data []byte) bool) {
		var start uint32
		var data []byte
		for _, op := range prog.Opcodes {
			if len(op.Bytes) == 0 {
				continue
			}
			if len(data) > 0 && uint64(start)+uint64(len(data)) == uint64(op.Address) {
				data = append(data, op.Bytes...)
				continue
			}
			if len(data) > 0 && !yield(start, data) {
				return
			}
			start = op.Address
			data = append([]byte(nil), op.Bytes...)
		}
		if len(data) > 0 {
			yield(start, data)
		}
	}
}

// LoadInto writes the program into memory.
func (prog *Program) LoadInto(mem *memory.Memory) (err error) {
	for addr, data := range prog.Segments() {
		err = mem.Write(addr, data)
		if err != nil {
			return
		}
	}

	return
}
