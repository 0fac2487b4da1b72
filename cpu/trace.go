package cpu

import (
	"fmt"
)

// Trace records one executed instruction.
type Trace struct {
	Pc          uint32       // Address the instruction was fetched from.
	Code        Code         // Instruction word.
	Instruction *Instruction // Decoded instruction, nil if undecodable.
	Operands    Operands     // Decoded operands.
}

// TraceHeader is the column header for trace rows.
func TraceHeader() string {
	return fmt.Sprintf(" %5s %8s %6s %5s %5s %5s %6s", "PC", "OPC", "INST", "rd", "rs1", "rs2", "imm")
}

// String formats the trace row. Fields the format does not carry are blank.
func (tr Trace) String() string {
	inst := tr.Instruction
	if inst == nil {
		return fmt.Sprintf(" %05X %08X", tr.Pc, uint32(tr.Code))
	}
	if inst == InstructionEbreak {
		return fmt.Sprintf(" %05X %08X EBREAK", tr.Pc, uint32(tr.Code))
	}

	var rd, rs1, rs2, imm string
	op := tr.Operands
	switch inst.Format {
	case FORMAT_R:
		rd, rs1, rs2 = fmt.Sprint(op.Rd), fmt.Sprint(op.Rs1), fmt.Sprint(op.Rs2)
	case FORMAT_I:
		rd, rs1, imm = fmt.Sprint(op.Rd), fmt.Sprint(op.Rs1), fmt.Sprint(op.Imm)
	case FORMAT_S, FORMAT_SB:
		rs1, rs2, imm = fmt.Sprint(op.Rs1), fmt.Sprint(op.Rs2), fmt.Sprint(op.Imm)
	case FORMAT_U, FORMAT_UJ:
		rd, imm = fmt.Sprint(op.Rd), fmt.Sprint(op.Imm)
	}

	return fmt.Sprintf(" %05X %08X %6s %5s %5s %5s %6s", tr.Pc, uint32(tr.Code), inst.Name, rd, rs1, rs2, imm)
}
