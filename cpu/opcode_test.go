package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignExtend(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		value    uint32
		width    uint
		expected int32
	}){
		{0x000, 12, 0},
		{0x7ff, 12, 2047},
		{0x800, 12, -2048},
		{0xfff, 12, -1},
		{0x1ffe, 13, -2},
		{0x7ffff, 20, 524287},
		{0x80000, 20, -524288},
		{0x100000, 21, -1048576},
		{0xfffff800, 12, -2048},
	}

	for _, entry := range table {
		assert.Equal(entry.expected, SignExtend(entry.value, entry.width), "%#x/%d", entry.value, entry.width)
	}
}

func TestCodeFields(t *testing.T) {
	assert := assert.New(t)

	// add x3, x1, x2
	code := Code(0x002081b3)
	assert.Equal(GROUP_OP, code.Group())
	assert.Equal(uint8(3), code.Rd())
	assert.Equal(uint8(1), code.Rs1())
	assert.Equal(uint8(2), code.Rs2())
	assert.Equal(uint32(0), code.Funct3())
	assert.Equal(uint32(0), code.Funct7())

	// sub x3, x1, x2
	code = Code(0x402081b3)
	assert.Equal(uint32(0b0100000), code.Funct7())

	assert.Equal(code, MakeCodeR(GROUP_OP, 0, 0b0100000, 3, 1, 2))
	assert.Equal(Code(0x00500093), MakeCodeI(GROUP_OP_IMM, 0, 1, 0, 5))
	assert.Equal(Code(0x123450b7), MakeCodeU(GROUP_LUI, 1, 0x12345))
	assert.Equal(Code(0xfe000ee3), MakeCodeSB(GROUP_BRANCH, 0, 0, 0, -4))
	assert.Equal(Code(0x008000ef), MakeCodeUJ(GROUP_JAL, 1, 8))

	assert.Equal("BRANCH", GROUP_BRANCH.String())
	assert.Equal("OP-IMM", GROUP_OP_IMM.String())
	assert.Equal("SYSTEM", GROUP_SYSTEM.String())
	assert.Equal("CodeGroup(3)", CodeGroup(3).String())
	assert.Equal("SB", FORMAT_SB.String())
	assert.Equal("CodeFormat(9)", CodeFormat(9).String())
}

func TestImmediateRoundTrip(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		format CodeFormat
		low    int32
		high   int32
		step   int32
		encode func(imm int32) Code
	}){
		{FORMAT_I, -2048, 2047, 1, func(imm int32) Code { return MakeCodeI(GROUP_OP_IMM, 0, 31, 31, imm) }},
		{FORMAT_S, -2048, 2047, 1, func(imm int32) Code { return MakeCodeS(GROUP_STORE, 2, 31, 31, imm) }},
		{FORMAT_SB, -4096, 4094, 2, func(imm int32) Code { return MakeCodeSB(GROUP_BRANCH, 7, 31, 31, imm) }},
		{FORMAT_U, -524288, 524287, 1, func(imm int32) Code { return MakeCodeU(GROUP_LUI, 31, imm) }},
		{FORMAT_UJ, -1048576, 1048574, 2, func(imm int32) Code { return MakeCodeUJ(GROUP_JAL, 31, imm) }},
	}

	for _, entry := range table {
		failed := 0
		for imm := entry.low; imm <= entry.high; imm += entry.step {
			op := entry.encode(imm).Decode(entry.format, false)
			if op.Imm != imm {
				failed++
				if failed < 4 {
					assert.Equal(imm, op.Imm, "format %v", entry.format)
				}
			}
		}
		assert.Equal(0, failed, "format %v", entry.format)
	}
}

func TestDecodeZeroExtend(t *testing.T) {
	assert := assert.New(t)

	code := MakeCodeI(GROUP_OP_IMM, 3, 1, 2, -1)
	assert.Equal(int32(-1), code.Decode(FORMAT_I, false).Imm)
	assert.Equal(int32(0xfff), code.Decode(FORMAT_I, true).Imm)
}
