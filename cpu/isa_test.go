package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/yb60/memory"
)

// enc assembles a single instruction by mnemonic.
func enc(mnemonic string, op Operands) Code {
	inst, ok := Lookup(mnemonic)
	if !ok {
		panic(mnemonic)
	}
	return inst.Encode(op)
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code Code
		name string
		op   Operands
	}){
		{0x00500093, "ADDI", Operands{Rd: 1, Imm: 5}},
		{0x002081b3, "ADD", Operands{Rd: 3, Rs1: 1, Rs2: 2}},
		{0x402081b3, "SUB", Operands{Rd: 3, Rs1: 1, Rs2: 2}},
		{0x123450b7, "LUI", Operands{Rd: 1, Imm: 0x12345}},
		{0xfe000ee3, "BEQ", Operands{Imm: -4}},
		{0x008000ef, "JAL", Operands{Rd: 1, Imm: 8}},
		{0x00100073, "EBREAK", Operands{}},
		{0x00000000, "LB", Operands{}},
		{MakeCodeI(GROUP_OP_IMM, 5, 1, 2, 0x403), "SRAI", Operands{Rd: 1, Rs1: 2, Imm: 3}},
		{MakeCodeI(GROUP_OP_IMM, 5, 1, 2, 0x003), "SRLI", Operands{Rd: 1, Rs1: 2, Imm: 3}},
		{MakeCodeI(GROUP_OP_IMM, 3, 1, 2, 0xfff), "SLTIU", Operands{Rd: 1, Rs1: 2, Imm: 0xfff}},
		{MakeCodeR(GROUP_OP, 3, 1, 1, 2, 3), "MULHU", Operands{Rd: 1, Rs1: 2, Rs2: 3}},
		{MakeCodeI(GROUP_JALR, 0, 0, 1, 0), "JALR", Operands{Rs1: 1}},
	}

	for _, entry := range table {
		inst, op, err := Decode(entry.code)
		if !assert.NoError(err, "%08x", uint32(entry.code)) {
			continue
		}
		assert.Equal(entry.name, inst.Name, "%08x", uint32(entry.code))
		assert.Equal(entry.op, op, "%08x", uint32(entry.code))
	}
}

func TestDecodeInvalid(t *testing.T) {
	assert := assert.New(t)

	table := []Code{
		0xffffffff,
		// SYSTEM, but not EBREAK
		0x00000073,
		// SLLI with a non-zero funct7
		MakeCodeI(GROUP_OP_IMM, 1, 1, 1, 0x401),
		// unknown funct7
		MakeCodeR(GROUP_OP, 0, 0b0000010, 1, 2, 3),
		// unused branch funct3
		MakeCodeSB(GROUP_BRANCH, 2, 1, 2, 8),
		// unused load funct3
		MakeCodeI(GROUP_LOAD, 3, 1, 2, 0),
	}

	for _, code := range table {
		inst, _, err := Decode(code)
		assert.Nil(inst, "%08x", uint32(code))
		assert.ErrorIs(err, ErrOpcode(0), "%08x", uint32(code))
		assert.Equal(ErrOpcode(code), err)
	}
}

func TestLookup(t *testing.T) {
	assert := assert.New(t)

	for _, inst := range InstructionSet {
		found, ok := Lookup(inst.Mnemonic())
		assert.True(ok, inst.Name)
		assert.Equal(inst, found)
	}

	inst, ok := Lookup("EBREAK")
	assert.True(ok)
	assert.Equal(InstructionEbreak, inst)
	assert.Equal(CODE_EBREAK, inst.Encode(Operands{}))

	dec, _, err := Decode(inst.Encode(Operands{}))
	assert.NoError(err)
	assert.Equal(InstructionEbreak, dec)

	_, ok = Lookup("fence")
	assert.False(ok)
}

func TestInstructions(t *testing.T) {
	table := [](struct {
		name      string
		code      Code
		pc        uint32
		reg       map[int]uint32
		mem       map[uint32]byte
		expect    map[int]uint32
		expectMem map[uint32]byte
		expectPc  uint32
		err       error
	}){
		{
			name:     "add wraps",
			code:     enc("add", Operands{Rd: 3, Rs1: 1, Rs2: 2}),
			reg:      map[int]uint32{1: 0x7fffffff, 2: 1},
			expect:   map[int]uint32{3: 0x80000000},
			expectPc: 4,
		},
		{
			name:     "sub",
			code:     enc("sub", Operands{Rd: 3, Rs1: 1, Rs2: 2}),
			reg:      map[int]uint32{1: 1, 2: 2},
			expect:   map[int]uint32{3: 0xffffffff},
			expectPc: 4,
		},
		{
			name:     "srl is logical",
			code:     enc("srl", Operands{Rd: 3, Rs1: 1, Rs2: 2}),
			reg:      map[int]uint32{1: 0xffffffff, 2: 1},
			expect:   map[int]uint32{3: 0x7fffffff},
			expectPc: 4,
		},
		{
			name:     "srli is logical",
			code:     enc("srli", Operands{Rd: 3, Rs1: 1, Imm: 1}),
			reg:      map[int]uint32{1: 0xffffffff},
			expect:   map[int]uint32{3: 0x7fffffff},
			expectPc: 4,
		},
		{
			name:     "sra",
			code:     enc("sra", Operands{Rd: 3, Rs1: 1, Rs2: 2}),
			reg:      map[int]uint32{1: 0x80000000, 2: 4},
			expect:   map[int]uint32{3: 0xf8000000},
			expectPc: 4,
		},
		{
			name:     "srai",
			code:     enc("srai", Operands{Rd: 3, Rs1: 1, Imm: 4}),
			reg:      map[int]uint32{1: 0x80000000},
			expect:   map[int]uint32{3: 0xf8000000},
			expectPc: 4,
		},
		{
			name:     "sll uses low 5 bits",
			code:     enc("sll", Operands{Rd: 3, Rs1: 1, Rs2: 2}),
			reg:      map[int]uint32{1: 1, 2: 33},
			expect:   map[int]uint32{3: 2},
			expectPc: 4,
		},
		{
			name:     "slli",
			code:     enc("slli", Operands{Rd: 3, Rs1: 1, Imm: 31}),
			reg:      map[int]uint32{1: 1},
			expect:   map[int]uint32{3: 0x80000000},
			expectPc: 4,
		},
		{
			name:     "slt signed",
			code:     enc("slt", Operands{Rd: 3, Rs1: 1, Rs2: 2}),
			reg:      map[int]uint32{1: 0xffffffff, 2: 1},
			expect:   map[int]uint32{3: 1},
			expectPc: 4,
		},
		{
			name:     "sltu unsigned",
			code:     enc("sltu", Operands{Rd: 3, Rs1: 1, Rs2: 2}),
			reg:      map[int]uint32{1: 0xffffffff, 2: 1},
			expect:   map[int]uint32{3: 0},
			expectPc: 4,
		},
		{
			name:     "slti",
			code:     enc("slti", Operands{Rd: 3, Rs1: 1, Imm: -1}),
			reg:      map[int]uint32{1: 0xfffffffb},
			expect:   map[int]uint32{3: 1},
			expectPc: 4,
		},
		{
			name:     "sltiu zero extends",
			code:     MakeCodeI(GROUP_OP_IMM, 3, 3, 1, 0xfff),
			reg:      map[int]uint32{1: 0xfffffff0},
			expect:   map[int]uint32{3: 0},
			expectPc: 4,
		},
		{
			name:     "xori",
			code:     enc("xori", Operands{Rd: 3, Rs1: 1, Imm: -1}),
			reg:      map[int]uint32{1: 0x0000ffff},
			expect:   map[int]uint32{3: 0xffff0000},
			expectPc: 4,
		},
		{
			name:     "andi",
			code:     enc("andi", Operands{Rd: 3, Rs1: 1, Imm: 0x0f0}),
			reg:      map[int]uint32{1: 0x12345678},
			expect:   map[int]uint32{3: 0x00000070},
			expectPc: 4,
		},
		{
			name:     "or",
			code:     enc("or", Operands{Rd: 3, Rs1: 1, Rs2: 2}),
			reg:      map[int]uint32{1: 0xf0, 2: 0x0f},
			expect:   map[int]uint32{3: 0xff},
			expectPc: 4,
		},
		{
			name:     "x0 is writable",
			code:     enc("addi", Operands{Rd: 0, Rs1: 0, Imm: 5}),
			expect:   map[int]uint32{0: 5},
			expectPc: 4,
		},
		{
			name:     "mul",
			code:     enc("mul", Operands{Rd: 3, Rs1: 1, Rs2: 2}),
			reg:      map[int]uint32{1: 0xfffffffd, 2: 7},
			expect:   map[int]uint32{3: 0xffffffeb},
			expectPc: 4,
		},
		{
			name:     "mulh",
			code:     enc("mulh", Operands{Rd: 3, Rs1: 1, Rs2: 2}),
			reg:      map[int]uint32{1: 0x80000000, 2: 2},
			expect:   map[int]uint32{3: 0xffffffff},
			expectPc: 4,
		},
		{
			name:     "mulhu is signed",
			code:     enc("mulhu", Operands{Rd: 3, Rs1: 1, Rs2: 2}),
			reg:      map[int]uint32{1: 0xffffffff, 2: 0xffffffff},
			expect:   map[int]uint32{3: 0},
			expectPc: 4,
		},
		{
			name:     "div truncates",
			code:     enc("div", Operands{Rd: 3, Rs1: 1, Rs2: 2}),
			reg:      map[int]uint32{1: 0xfffffff9, 2: 2},
			expect:   map[int]uint32{3: 0xfffffffd},
			expectPc: 4,
		},
		{
			name:     "div overflow",
			code:     enc("div", Operands{Rd: 3, Rs1: 1, Rs2: 2}),
			reg:      map[int]uint32{1: 0x80000000, 2: 0xffffffff},
			expect:   map[int]uint32{3: 0x80000000},
			expectPc: 4,
		},
		{
			name:     "rem",
			code:     enc("rem", Operands{Rd: 3, Rs1: 1, Rs2: 2}),
			reg:      map[int]uint32{1: 0xfffffff9, 2: 2},
			expect:   map[int]uint32{3: 0xffffffff},
			expectPc: 4,
		},
		{
			name:     "divu",
			code:     enc("divu", Operands{Rd: 3, Rs1: 1, Rs2: 2}),
			reg:      map[int]uint32{1: 0xfffffffe, 2: 2},
			expect:   map[int]uint32{3: 0x7fffffff},
			expectPc: 4,
		},
		{
			name:     "remu",
			code:     enc("remu", Operands{Rd: 3, Rs1: 1, Rs2: 2}),
			reg:      map[int]uint32{1: 0xffffffff, 2: 0x10},
			expect:   map[int]uint32{3: 0xf},
			expectPc: 4,
		},
		{
			name:   "div by zero",
			code:   enc("div", Operands{Rd: 3, Rs1: 1, Rs2: 2}),
			reg:    map[int]uint32{1: 1, 2: 0, 3: 0x55},
			expect: map[int]uint32{3: 0x55},
			err:    ErrDivideByZero,
		},
		{
			name: "remu by zero",
			code: enc("remu", Operands{Rd: 3, Rs1: 1, Rs2: 2}),
			reg:  map[int]uint32{1: 1, 2: 0},
			err:  ErrDivideByZero,
		},
		{
			name:     "lb sign extends",
			code:     enc("lb", Operands{Rd: 5, Rs1: 1, Imm: 1}),
			reg:      map[int]uint32{1: 0xff},
			mem:      map[uint32]byte{0x100: 0x80},
			expect:   map[int]uint32{5: 0xffffff80},
			expectPc: 4,
		},
		{
			name:     "lbu zero extends",
			code:     enc("lbu", Operands{Rd: 5, Rs1: 1, Imm: 1}),
			reg:      map[int]uint32{1: 0xff},
			mem:      map[uint32]byte{0x100: 0x80},
			expect:   map[int]uint32{5: 0x80},
			expectPc: 4,
		},
		{
			name:     "lh sign extends",
			code:     enc("lh", Operands{Rd: 5, Rs1: 1, Imm: -4}),
			reg:      map[int]uint32{1: 0x104},
			mem:      map[uint32]byte{0x100: 0x01, 0x101: 0x80},
			expect:   map[int]uint32{5: 0xffff8001},
			expectPc: 4,
		},
		{
			name:     "lhu zero extends",
			code:     enc("lhu", Operands{Rd: 5, Rs1: 1}),
			reg:      map[int]uint32{1: 0x100},
			mem:      map[uint32]byte{0x100: 0x01, 0x101: 0x80},
			expect:   map[int]uint32{5: 0x8001},
			expectPc: 4,
		},
		{
			name:     "lw little endian",
			code:     enc("lw", Operands{Rd: 5, Rs1: 1}),
			reg:      map[int]uint32{1: 0x100},
			mem:      map[uint32]byte{0x100: 0x78, 0x101: 0x56, 0x102: 0x34, 0x103: 0x12},
			expect:   map[int]uint32{5: 0x12345678},
			expectPc: 4,
		},
		{
			name:   "lw out of range",
			code:   enc("lw", Operands{Rd: 5, Rs1: 1}),
			reg:    map[int]uint32{1: 0xffffd, 5: 0x55},
			expect: map[int]uint32{5: 0x55},
			err:    memory.ErrAddress(0xffffd),
		},
		{
			name:      "sb",
			code:      enc("sb", Operands{Rs1: 1, Rs2: 2, Imm: 3}),
			reg:       map[int]uint32{1: 0x100, 2: 0x12345678},
			expectMem: map[uint32]byte{0x103: 0x78, 0x104: 0x00},
			expectPc:  4,
		},
		{
			name:      "sh",
			code:      enc("sh", Operands{Rs1: 1, Rs2: 2}),
			reg:       map[int]uint32{1: 0x100, 2: 0x12345678},
			expectMem: map[uint32]byte{0x100: 0x78, 0x101: 0x56, 0x102: 0x00},
			expectPc:  4,
		},
		{
			name:      "sw",
			code:      enc("sw", Operands{Rs1: 1, Rs2: 2, Imm: -4}),
			reg:       map[int]uint32{1: 0x104, 2: 0x12345678},
			expectMem: map[uint32]byte{0x100: 0x78, 0x101: 0x56, 0x102: 0x34, 0x103: 0x12},
			expectPc:  4,
		},
		{
			name:     "beq taken",
			code:     enc("beq", Operands{Rs1: 1, Rs2: 2, Imm: -4}),
			pc:       0x100,
			reg:      map[int]uint32{1: 7, 2: 7},
			expectPc: 0xfc,
		},
		{
			name:     "beq not taken",
			code:     enc("beq", Operands{Rs1: 1, Rs2: 2, Imm: -4}),
			pc:       0x100,
			reg:      map[int]uint32{1: 7, 2: 8},
			expectPc: 0x104,
		},
		{
			name:     "bne taken",
			code:     enc("bne", Operands{Rs1: 1, Rs2: 2, Imm: 16}),
			pc:       0x100,
			reg:      map[int]uint32{1: 7, 2: 8},
			expectPc: 0x110,
		},
		{
			name:     "blt signed",
			code:     enc("blt", Operands{Rs1: 1, Rs2: 2, Imm: 16}),
			pc:       0x100,
			reg:      map[int]uint32{1: 0xffffffff, 2: 1},
			expectPc: 0x110,
		},
		{
			name:     "bltu unsigned",
			code:     enc("bltu", Operands{Rs1: 1, Rs2: 2, Imm: 16}),
			pc:       0x100,
			reg:      map[int]uint32{1: 0xffffffff, 2: 1},
			expectPc: 0x104,
		},
		{
			name:     "bge equal",
			code:     enc("bge", Operands{Rs1: 1, Rs2: 2, Imm: 16}),
			pc:       0x100,
			reg:      map[int]uint32{1: 3, 2: 3},
			expectPc: 0x110,
		},
		{
			name:     "bgeu",
			code:     enc("bgeu", Operands{Rs1: 1, Rs2: 2, Imm: 16}),
			pc:       0x100,
			reg:      map[int]uint32{1: 0xffffffff, 2: 1},
			expectPc: 0x110,
		},
		{
			name:     "jal",
			code:     enc("jal", Operands{Rd: 1, Imm: 8}),
			pc:       0x100,
			expect:   map[int]uint32{1: 0x104},
			expectPc: 0x108,
		},
		{
			name:     "jalr target before link",
			code:     enc("jalr", Operands{Rd: 1, Rs1: 1, Imm: 4}),
			pc:       0x100,
			reg:      map[int]uint32{1: 0x200},
			expect:   map[int]uint32{1: 0x104},
			expectPc: 0x204,
		},
		{
			name:     "lui",
			code:     enc("lui", Operands{Rd: 1, Imm: 0x12345}),
			pc:       0x100,
			expect:   map[int]uint32{1: 0x12345000},
			expectPc: 0x104,
		},
		{
			name:     "auipc",
			code:     enc("auipc", Operands{Rd: 1, Imm: 1}),
			pc:       0x100,
			expect:   map[int]uint32{1: 0x1100},
			expectPc: 0x104,
		},
		{
			name:     "ebreak",
			code:     CODE_EBREAK,
			pc:       0x100,
			expectPc: 0x100,
			err:      ErrBreak,
		},
		{
			name:     "bad opcode",
			code:     0xffffffff,
			pc:       0x100,
			expectPc: 0x100,
			err:      ErrOpcode(0xffffffff),
		},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			mem := memory.NewMemory()
			cpu := NewCpu(mem)
			cpu.Reset(entry.pc)
			for reg, val := range entry.reg {
				cpu.Register[reg] = val
			}
			for addr, val := range entry.mem {
				assert.NoError(mem.StoreByte(addr, val))
			}

			trace, err := cpu.Execute(entry.code)
			if entry.err != nil {
				assert.True(errors.Is(err, entry.err), "%v", err)
			} else {
				assert.NoError(err)
			}

			assert.Equal(entry.pc, trace.Pc)
			assert.Equal(entry.code, trace.Code)
			assert.Equal(entry.expectPc, cpu.Pc())
			for reg, val := range entry.expect {
				assert.Equal(val, cpu.Register[reg], "x%d", reg)
			}
			for addr, val := range entry.expectMem {
				b, err := mem.LoadByte(addr)
				assert.NoError(err)
				assert.Equal(val, b, "%#x", addr)
			}
		})
	}
}
