package cpu

// Code is a raw 32-bit instruction word.
type Code uint32

// CODE_EBREAK is the fixed encoding that stops execution.
const CODE_EBREAK = Code(0x00100073)

// CodeGroup is the opcode group selector, instruction bits 6..2.
//
//go:generate go tool stringer -linecomment -type=CodeGroup
type CodeGroup int

const (
	GROUP_LOAD   = CodeGroup(0b00000) // LOAD
	GROUP_OP_IMM = CodeGroup(0b00100) // OP-IMM
	GROUP_AUIPC  = CodeGroup(0b00101) // AUIPC
	GROUP_STORE  = CodeGroup(0b01000) // STORE
	GROUP_OP     = CodeGroup(0b01100) // OP
	GROUP_LUI    = CodeGroup(0b01101) // LUI
	GROUP_BRANCH = CodeGroup(0b11000) // BRANCH
	GROUP_JALR   = CodeGroup(0b11001) // JALR
	GROUP_JAL    = CodeGroup(0b11011) // JAL
	GROUP_SYSTEM = CodeGroup(0b11100) // SYSTEM
)

// Opcode returns the full 7-bit opcode for the group.
func (group CodeGroup) Opcode() uint32 {
	return (uint32(group) << 2) | 0b11
}

// CodeFormat is an instruction encoding format.
//
//go:generate go tool stringer -linecomment -type=CodeFormat
type CodeFormat int

const (
	FORMAT_R  = CodeFormat(0) // R
	FORMAT_I  = CodeFormat(1) // I
	FORMAT_S  = CodeFormat(2) // S
	FORMAT_SB = CodeFormat(3) // SB
	FORMAT_U  = CodeFormat(4) // U
	FORMAT_UJ = CodeFormat(5) // UJ
)

// ImmediateWidth is the width in bits of the format's reconstructed immediate.
func (format CodeFormat) ImmediateWidth() uint {
	switch format {
	case FORMAT_I, FORMAT_S:
		return 12
	case FORMAT_SB:
		return 13
	case FORMAT_U:
		return 20
	case FORMAT_UJ:
		return 21
	}
	return 0
}

// Operands are the fields decoded from a single instruction word.
// Fields a format does not carry are zero.
type Operands struct {
	Rd  uint8
	Rs1 uint8
	Rs2 uint8
	Imm int32
}

// SignExtend reinterprets the low 'width' bits of value as two's-complement.
func SignExtend(value uint32, width uint) int32 {
	value &= (1 << width) - 1
	if value > (1<<(width-1))-1 {
		return int32(int64(value) - (1 << width))
	}
	return int32(value)
}

// Group returns the opcode group selector.
func (code Code) Group() CodeGroup {
	return CodeGroup((code >> 2) & 0x1f)
}

// Rd returns the destination register index.
func (code Code) Rd() uint8 {
	return uint8((code >> 7) & 0x1f)
}

// Rs1 returns the first source register index.
func (code Code) Rs1() uint8 {
	return uint8((code >> 15) & 0x1f)
}

// Rs2 returns the second source register index.
func (code Code) Rs2() uint8 {
	return uint8((code >> 20) & 0x1f)
}

// Funct3 returns the 3-bit function field.
func (code Code) Funct3() uint32 {
	return uint32(code>>12) & 0x7
}

// Funct7 returns the 7-bit function field.
func (code Code) Funct7() uint32 {
	return uint32(code>>25) & 0x7f
}

// Immediate returns the unsigned immediate bit pattern for a format,
// reassembled from its split fields.
func (code Code) Immediate(format CodeFormat) (imm uint32) {
	word := uint32(code)
	switch format {
	case FORMAT_I:
		imm = word >> 20
	case FORMAT_S:
		imm = ((word >> 25) << 5) | ((word >> 7) & 0x1f)
	case FORMAT_SB:
		imm = (((word >> 31) & 0x1) << 12) | // sign
			(((word >> 7) & 0x1) << 11) | // bit 7
			(((word >> 25) & 0x3f) << 5) | // bits 30..25
			(((word >> 8) & 0xf) << 1) // bits 11..8
	case FORMAT_U:
		imm = word >> 12
	case FORMAT_UJ:
		imm = (((word >> 31) & 0x1) << 20) | // sign
			(((word >> 12) & 0xff) << 12) | // bits 19..12
			(((word >> 20) & 0x1) << 11) | // bit 20
			(((word >> 21) & 0x3ff) << 1) // bits 30..21
	}
	return
}

// Decode extracts the operands for the given format. Immediates are
// sign-extended from the format's width unless zero_extend is set.
func (code Code) Decode(format CodeFormat, zero_extend bool) (op Operands) {
	switch format {
	case FORMAT_R:
		op.Rd, op.Rs1, op.Rs2 = code.Rd(), code.Rs1(), code.Rs2()
	case FORMAT_I:
		op.Rd, op.Rs1 = code.Rd(), code.Rs1()
	case FORMAT_S, FORMAT_SB:
		op.Rs1, op.Rs2 = code.Rs1(), code.Rs2()
	case FORMAT_U, FORMAT_UJ:
		op.Rd = code.Rd()
	}

	if format != FORMAT_R {
		imm := code.Immediate(format)
		if zero_extend {
			op.Imm = int32(imm)
		} else {
			op.Imm = SignExtend(imm, format.ImmediateWidth())
		}
	}

	return
}

// MakeCodeR creates a register-register instruction.
func MakeCodeR(group CodeGroup, funct3, funct7 uint32, rd, rs1, rs2 uint8) Code {
	return Code((funct7&0x7f)<<25 |
		uint32(rs2&0x1f)<<20 |
		uint32(rs1&0x1f)<<15 |
		(funct3&0x7)<<12 |
		uint32(rd&0x1f)<<7 |
		group.Opcode())
}

// MakeCodeI creates an immediate instruction. Only the low 12 bits of imm are used.
func MakeCodeI(group CodeGroup, funct3 uint32, rd, rs1 uint8, imm int32) Code {
	return Code((uint32(imm)&0xfff)<<20 |
		uint32(rs1&0x1f)<<15 |
		(funct3&0x7)<<12 |
		uint32(rd&0x1f)<<7 |
		group.Opcode())
}

// MakeCodeS creates a store instruction.
func MakeCodeS(group CodeGroup, funct3 uint32, rs1, rs2 uint8, imm int32) Code {
	u := uint32(imm) & 0xfff
	return Code((u>>5)<<25 |
		uint32(rs2&0x1f)<<20 |
		uint32(rs1&0x1f)<<15 |
		(funct3&0x7)<<12 |
		(u&0x1f)<<7 |
		group.Opcode())
}

// MakeCodeSB creates a branch instruction. Bit 0 of imm is dropped.
func MakeCodeSB(group CodeGroup, funct3 uint32, rs1, rs2 uint8, imm int32) Code {
	u := uint32(imm)
	return Code(((u>>12)&0x1)<<31 |
		((u>>5)&0x3f)<<25 |
		uint32(rs2&0x1f)<<20 |
		uint32(rs1&0x1f)<<15 |
		(funct3&0x7)<<12 |
		((u>>1)&0xf)<<8 |
		((u>>11)&0x1)<<7 |
		group.Opcode())
}

// MakeCodeU creates an upper-immediate instruction from the 20-bit immediate.
func MakeCodeU(group CodeGroup, rd uint8, imm int32) Code {
	return Code((uint32(imm)&0xfffff)<<12 |
		uint32(rd&0x1f)<<7 |
		group.Opcode())
}

// MakeCodeUJ creates a jump instruction. Bit 0 of imm is dropped.
func MakeCodeUJ(group CodeGroup, rd uint8, imm int32) Code {
	u := uint32(imm)
	return Code(((u>>20)&0x1)<<31 |
		((u>>1)&0x3ff)<<21 |
		((u>>11)&0x1)<<20 |
		((u>>12)&0xff)<<12 |
		uint32(rd&0x1f)<<7 |
		group.Opcode())
}
