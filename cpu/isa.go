package cpu

import (
	"strings"
)

// ANY matches any value of a funct3 or funct7 field.
const ANY = -1

// Instruction describes one entry of the instruction set.
type Instruction struct {
	Name       string     // Upper-case mnemonic.
	Group      CodeGroup  // Opcode group.
	Funct3     int        // funct3 field, or ANY.
	Funct7     int        // funct7 field, or ANY.
	Format     CodeFormat // Encoding format.
	ZeroExtend bool       // Immediate is zero-extended.
	Shift      bool       // Immediate is a 5-bit shift amount.
	Jump       bool       // Handler sets the PC itself.

	Exec func(cpu *Cpu, op Operands) error
}

// Mnemonic returns the lower-case assembler name.
func (inst *Instruction) Mnemonic() string {
	return strings.ToLower(inst.Name)
}

// Encode builds an instruction word from operands.
// EBREAK has no operands, and always encodes as CODE_EBREAK.
func (inst *Instruction) Encode(op Operands) (code Code) {
	if inst == InstructionEbreak {
		code = CODE_EBREAK
		return
	}

	funct3 := uint32(max(inst.Funct3, 0))
	funct7 := uint32(max(inst.Funct7, 0))
	switch inst.Format {
	case FORMAT_R:
		code = MakeCodeR(inst.Group, funct3, funct7, op.Rd, op.Rs1, op.Rs2)
	case FORMAT_I:
		imm := op.Imm
		if inst.Shift {
			imm = int32(funct7<<5) | (imm & 0x1f)
		}
		code = MakeCodeI(inst.Group, funct3, op.Rd, op.Rs1, imm)
	case FORMAT_S:
		code = MakeCodeS(inst.Group, funct3, op.Rs1, op.Rs2, op.Imm)
	case FORMAT_SB:
		code = MakeCodeSB(inst.Group, funct3, op.Rs1, op.Rs2, op.Imm)
	case FORMAT_U:
		code = MakeCodeU(inst.Group, op.Rd, op.Imm)
	case FORMAT_UJ:
		code = MakeCodeUJ(inst.Group, op.Rd, op.Imm)
	}
	return
}

// InstructionSet is the supported subset of RV32IM.
var InstructionSet = []*Instruction{
	// LOAD
	{Name: "LB", Group: GROUP_LOAD, Funct3: 0b000, Funct7: ANY, Format: FORMAT_I, Exec: execLoad(1, true)},
	{Name: "LH", Group: GROUP_LOAD, Funct3: 0b001, Funct7: ANY, Format: FORMAT_I, Exec: execLoad(2, true)},
	{Name: "LW", Group: GROUP_LOAD, Funct3: 0b010, Funct7: ANY, Format: FORMAT_I, Exec: execLoad(4, false)},
	{Name: "LBU", Group: GROUP_LOAD, Funct3: 0b100, Funct7: ANY, Format: FORMAT_I, Exec: execLoad(1, false)},
	{Name: "LHU", Group: GROUP_LOAD, Funct3: 0b101, Funct7: ANY, Format: FORMAT_I, Exec: execLoad(2, false)},

	// STORE
	{Name: "SB", Group: GROUP_STORE, Funct3: 0b000, Funct7: ANY, Format: FORMAT_S, Exec: execStore(1)},
	{Name: "SH", Group: GROUP_STORE, Funct3: 0b001, Funct7: ANY, Format: FORMAT_S, Exec: execStore(2)},
	{Name: "SW", Group: GROUP_STORE, Funct3: 0b010, Funct7: ANY, Format: FORMAT_S, Exec: execStore(4)},

	// OP-IMM
	{Name: "ADDI", Group: GROUP_OP_IMM, Funct3: 0b000, Funct7: ANY, Format: FORMAT_I, Exec: execAluImm(aluAdd)},
	{Name: "SLTI", Group: GROUP_OP_IMM, Funct3: 0b010, Funct7: ANY, Format: FORMAT_I, Exec: execAluImm(aluSlt)},
	{Name: "SLTIU", Group: GROUP_OP_IMM, Funct3: 0b011, Funct7: ANY, Format: FORMAT_I, ZeroExtend: true, Exec: execAluImm(aluSltu)},
	{Name: "XORI", Group: GROUP_OP_IMM, Funct3: 0b100, Funct7: ANY, Format: FORMAT_I, Exec: execAluImm(aluXor)},
	{Name: "ORI", Group: GROUP_OP_IMM, Funct3: 0b110, Funct7: ANY, Format: FORMAT_I, Exec: execAluImm(aluOr)},
	{Name: "ANDI", Group: GROUP_OP_IMM, Funct3: 0b111, Funct7: ANY, Format: FORMAT_I, Exec: execAluImm(aluAnd)},
	{Name: "SLLI", Group: GROUP_OP_IMM, Funct3: 0b001, Funct7: 0b0000000, Format: FORMAT_I, Shift: true, Exec: execAluImm(aluSll)},
	{Name: "SRLI", Group: GROUP_OP_IMM, Funct3: 0b101, Funct7: 0b0000000, Format: FORMAT_I, Shift: true, Exec: execAluImm(aluSrl)},
	{Name: "SRAI", Group: GROUP_OP_IMM, Funct3: 0b101, Funct7: 0b0100000, Format: FORMAT_I, Shift: true, Exec: execAluImm(aluSra)},

	// OP
	{Name: "ADD", Group: GROUP_OP, Funct3: 0b000, Funct7: 0b0000000, Format: FORMAT_R, Exec: execAlu(aluAdd)},
	{Name: "SUB", Group: GROUP_OP, Funct3: 0b000, Funct7: 0b0100000, Format: FORMAT_R, Exec: execAlu(aluSub)},
	{Name: "SLL", Group: GROUP_OP, Funct3: 0b001, Funct7: 0b0000000, Format: FORMAT_R, Exec: execAlu(aluSll)},
	{Name: "SLT", Group: GROUP_OP, Funct3: 0b010, Funct7: 0b0000000, Format: FORMAT_R, Exec: execAlu(aluSlt)},
	{Name: "SLTU", Group: GROUP_OP, Funct3: 0b011, Funct7: 0b0000000, Format: FORMAT_R, Exec: execAlu(aluSltu)},
	{Name: "XOR", Group: GROUP_OP, Funct3: 0b100, Funct7: 0b0000000, Format: FORMAT_R, Exec: execAlu(aluXor)},
	{Name: "SRL", Group: GROUP_OP, Funct3: 0b101, Funct7: 0b0000000, Format: FORMAT_R, Exec: execAlu(aluSrl)},
	{Name: "SRA", Group: GROUP_OP, Funct3: 0b101, Funct7: 0b0100000, Format: FORMAT_R, Exec: execAlu(aluSra)},
	{Name: "OR", Group: GROUP_OP, Funct3: 0b110, Funct7: 0b0000000, Format: FORMAT_R, Exec: execAlu(aluOr)},
	{Name: "AND", Group: GROUP_OP, Funct3: 0b111, Funct7: 0b0000000, Format: FORMAT_R, Exec: execAlu(aluAnd)},

	// OP, M extension
	{Name: "MUL", Group: GROUP_OP, Funct3: 0b000, Funct7: 0b0000001, Format: FORMAT_R, Exec: execAlu(aluMul)},
	{Name: "MULH", Group: GROUP_OP, Funct3: 0b001, Funct7: 0b0000001, Format: FORMAT_R, Exec: execAlu(aluMulh)},
	{Name: "MULHSU", Group: GROUP_OP, Funct3: 0b010, Funct7: 0b0000001, Format: FORMAT_R, Exec: execAlu(aluMulh)},
	{Name: "MULHU", Group: GROUP_OP, Funct3: 0b011, Funct7: 0b0000001, Format: FORMAT_R, Exec: execAlu(aluMulh)},
	{Name: "DIV", Group: GROUP_OP, Funct3: 0b100, Funct7: 0b0000001, Format: FORMAT_R, Exec: execDivide(aluDiv)},
	{Name: "DIVU", Group: GROUP_OP, Funct3: 0b101, Funct7: 0b0000001, Format: FORMAT_R, Exec: execDivide(aluDivu)},
	{Name: "REM", Group: GROUP_OP, Funct3: 0b110, Funct7: 0b0000001, Format: FORMAT_R, Exec: execDivide(aluRem)},
	{Name: "REMU", Group: GROUP_OP, Funct3: 0b111, Funct7: 0b0000001, Format: FORMAT_R, Exec: execDivide(aluRemu)},

	// BRANCH
	{Name: "BEQ", Group: GROUP_BRANCH, Funct3: 0b000, Funct7: ANY, Format: FORMAT_SB, Jump: true, Exec: execBranch(condEq)},
	{Name: "BNE", Group: GROUP_BRANCH, Funct3: 0b001, Funct7: ANY, Format: FORMAT_SB, Jump: true, Exec: execBranch(condNe)},
	{Name: "BLT", Group: GROUP_BRANCH, Funct3: 0b100, Funct7: ANY, Format: FORMAT_SB, Jump: true, Exec: execBranch(condLt)},
	{Name: "BGE", Group: GROUP_BRANCH, Funct3: 0b101, Funct7: ANY, Format: FORMAT_SB, Jump: true, Exec: execBranch(condGe)},
	{Name: "BLTU", Group: GROUP_BRANCH, Funct3: 0b110, Funct7: ANY, Format: FORMAT_SB, Jump: true, Exec: execBranch(condLtu)},
	{Name: "BGEU", Group: GROUP_BRANCH, Funct3: 0b111, Funct7: ANY, Format: FORMAT_SB, Jump: true, Exec: execBranch(condGeu)},

	// Jumps and upper immediates
	{Name: "JAL", Group: GROUP_JAL, Funct3: ANY, Funct7: ANY, Format: FORMAT_UJ, Jump: true, Exec: execJal},
	{Name: "JALR", Group: GROUP_JALR, Funct3: ANY, Funct7: ANY, Format: FORMAT_I, Jump: true, Exec: execJalr},
	{Name: "LUI", Group: GROUP_LUI, Funct3: ANY, Funct7: ANY, Format: FORMAT_U, Exec: execLui},
	{Name: "AUIPC", Group: GROUP_AUIPC, Funct3: ANY, Funct7: ANY, Format: FORMAT_U, Exec: execAuipc},
}

// InstructionEbreak is the only SYSTEM instruction, matched on its full word.
var InstructionEbreak = &Instruction{
	Name:   "EBREAK",
	Group:  GROUP_SYSTEM,
	Funct3: 0,
	Funct7: 0,
	Format: FORMAT_I,
	Jump:   true,
	Exec: func(cpu *Cpu, op Operands) error {
		return ErrBreak
	},
}

type isaKey struct {
	group  CodeGroup
	funct3 int
	funct7 int
}

var (
	_isa_table    map[isaKey]*Instruction
	_isa_mnemonic map[string]*Instruction
)

func init() {
	_isa_table = make(map[isaKey]*Instruction, len(InstructionSet))
	_isa_mnemonic = make(map[string]*Instruction, len(InstructionSet)+1)
	for _, inst := range InstructionSet {
		_isa_table[isaKey{inst.Group, inst.Funct3, inst.Funct7}] = inst
		_isa_mnemonic[inst.Mnemonic()] = inst
	}
	_isa_mnemonic[InstructionEbreak.Mnemonic()] = InstructionEbreak
}

// Lookup finds an instruction by its lower-case mnemonic.
func Lookup(mnemonic string) (inst *Instruction, ok bool) {
	inst, ok = _isa_mnemonic[strings.ToLower(mnemonic)]
	return
}

// Decode resolves an instruction word to its instruction and operands.
// The lookup tries (group, funct3, funct7), then (group, funct3, ANY),
// then (group, ANY, ANY).
func Decode(code Code) (inst *Instruction, op Operands, err error) {
	if code == CODE_EBREAK {
		inst = InstructionEbreak
		return
	}

	group := code.Group()
	funct3 := int(code.Funct3())
	funct7 := int(code.Funct7())

	for _, key := range []isaKey{
		{group, funct3, funct7},
		{group, funct3, ANY},
		{group, ANY, ANY},
	} {
		var ok bool
		inst, ok = _isa_table[key]
		if ok {
			break
		}
	}

	if inst == nil {
		err = ErrOpcode(code)
		return
	}

	op = code.Decode(inst.Format, inst.ZeroExtend)
	if inst.Shift {
		op.Imm &= 0x1f
	}

	return
}
