package cpu

import (
	"fmt"
)

// Disassemble renders an instruction word as assembly text.
func Disassemble(code Code) string {
	inst, op, err := Decode(code)
	if err != nil {
		return fmt.Sprintf(".word 0x%08X", uint32(code))
	}

	name := fmt.Sprintf("%6s", inst.Mnemonic())

	switch {
	case inst == InstructionEbreak:
		return name
	case inst.Group == GROUP_LOAD, inst.Group == GROUP_JALR:
		return fmt.Sprintf("%s x%d, %d(x%d)", name, op.Rd, op.Imm, op.Rs1)
	case inst.Group == GROUP_STORE:
		return fmt.Sprintf("%s x%d, %d(x%d)", name, op.Rs2, op.Imm, op.Rs1)
	case inst.Format == FORMAT_SB:
		return fmt.Sprintf("%s x%d, x%d, %d", name, op.Rs1, op.Rs2, op.Imm)
	case inst.Format == FORMAT_U, inst.Format == FORMAT_UJ:
		return fmt.Sprintf("%s x%d, %d", name, op.Rd, op.Imm)
	case inst.Format == FORMAT_I:
		return fmt.Sprintf("%s x%d, x%d, %d", name, op.Rd, op.Rs1, op.Imm)
	}

	return fmt.Sprintf("%s x%d, x%d, x%d", name, op.Rd, op.Rs1, op.Rs2)
}
