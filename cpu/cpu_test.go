package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/yb60/memory"
)

func TestCpuReset(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(memory.NewMemory())
	for n := range cpu.Register {
		cpu.Register[n] = 0x55
	}
	cpu.Ticks = 10

	cpu.Reset(0x100)

	for n, val := range cpu.Register {
		switch n {
		case REG_SP:
			assert.Equal(uint32(0xfffff), val)
		case REG_PC:
			assert.Equal(uint32(0x100), val)
		default:
			assert.Equal(uint32(0), val, "x%d", n)
		}
	}
	assert.Equal(0, cpu.Ticks)

	defines := map[string]string{}
	for key, value := range cpu.Defines() {
		defines[key] = value
	}
	assert.Equal("0xfffff", defines["STACK_TOP"])
	assert.Equal("0x00100073", defines["CODE_EBREAK"])
}

func TestCpuString(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(memory.NewMemory())
	cpu.Register[31] = 0xdeadbeef

	lines := strings.Split(strings.TrimSuffix(cpu.String(), "\n"), "\n")
	assert.Equal(32, len(lines))
	assert.Equal(" X0 00000000", lines[0])
	assert.Equal(" X2 000FFFFF", lines[2])
	assert.Equal("X31 DEADBEEF", lines[31])
}

func TestCpuTick(t *testing.T) {
	assert := assert.New(t)

	mem := memory.NewMemory()
	cpu := NewCpu(mem)

	assert.NoError(mem.StoreWord(0x100, uint32(enc("addi", Operands{Rd: 1, Rs1: 1, Imm: 5}))))
	assert.NoError(mem.StoreWord(0x104, uint32(CODE_EBREAK)))

	cpu.Reset(0x100)

	trace, err := cpu.Tick()
	assert.NoError(err)
	assert.Equal(uint32(0x100), trace.Pc)
	assert.Equal("ADDI", trace.Instruction.Name)
	assert.Equal(uint32(5), cpu.Register[1])
	assert.Equal(uint32(0x104), cpu.Pc())
	assert.Equal(1, cpu.Ticks)

	trace, err = cpu.Tick()
	assert.ErrorIs(err, ErrBreak)
	assert.Equal(InstructionEbreak, trace.Instruction)
	assert.Equal(uint32(0x104), cpu.Pc())
	assert.Equal(1, cpu.Ticks)
}

func TestCpuEbreakOnly(t *testing.T) {
	assert := assert.New(t)

	mem := memory.NewMemory()
	assert.NoError(mem.StoreWord(0, uint32(CODE_EBREAK)))

	cpu := NewCpu(mem)
	cpu.Reset(0)
	before := cpu.Register

	_, err := cpu.Tick()
	assert.ErrorIs(err, ErrBreak)
	assert.Equal(before, cpu.Register)
}

func TestCpuFetch(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(memory.NewMemory())

	cpu.Reset(memory.MEMORY_SIZE)
	_, err := cpu.FetchCode()
	assert.ErrorIs(err, ErrPcEnd)

	cpu.Reset(memory.MEMORY_SIZE - 3)
	_, err = cpu.FetchCode()
	assert.ErrorIs(err, memory.ErrAddress(0))

	cpu.Reset(memory.MEMORY_SIZE - 4)
	code, err := cpu.FetchCode()
	assert.NoError(err)
	assert.Equal(Code(0), code)
}
