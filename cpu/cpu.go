package cpu

import (
	"fmt"
	"iter"
	"maps"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/ezrec/yb60/memory"
)

// Register file indexes.
const (
	REG_ZERO  = 0  // x0, writable.
	REG_RA    = 1  // Return address.
	REG_SP    = 2  // Stack pointer.
	REG_PC    = 32 // Program counter.
	REG_COUNT = 33 // General registers plus the program counter.
)

// STACK_TOP is the reset value of the stack pointer.
const STACK_TOP = memory.MEMORY_TOP

var _cpu_defines = map[string]string{
	"STACK_TOP":   fmt.Sprintf("0x%x", STACK_TOP),
	"CODE_EBREAK": fmt.Sprintf("0x%08x", uint32(CODE_EBREAK)),
}

// Cpu is the simulation context for the YB-60 processor.
type Cpu struct {
	Verbose bool         // Set to enable verbose logging.
	Logger  hclog.Logger // Logger for verbose tracing.

	Memory   *memory.Memory    // Attached memory.
	Register [REG_COUNT]uint32 // x0..x31, then the PC.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new CPU attached to a memory.
func NewCpu(mem *memory.Memory) (cpu *Cpu) {
	cpu = &Cpu{
		Logger: hclog.NewNullLogger(),
		Memory: mem,
	}
	cpu.Reset(0)

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

func (cpu *Cpu) logger() hclog.Logger {
	if cpu.Logger == nil {
		return hclog.NewNullLogger()
	}
	return cpu.Logger
}

// Reset the CPU state.
// - Clears all registers.
// - Sets the stack pointer to the top of memory.
// - Sets the program counter to 'pc'.
func (cpu *Cpu) Reset(pc uint32) {
	if cpu.Verbose {
		cpu.logger().Debug("cpu: reset", "pc", fmt.Sprintf("%05X", pc))
	}

	clear(cpu.Register[:])
	cpu.Register[REG_SP] = STACK_TOP
	cpu.Register[REG_PC] = pc
	cpu.Ticks = 0
}

// Pc returns the program counter.
func (cpu *Cpu) Pc() uint32 {
	return cpu.Register[REG_PC]
}

// String returns the general registers, one per line, as 'X<n> <value>'
// right aligned to 12 columns.
func (cpu *Cpu) String() string {
	var text strings.Builder
	for n, val := range cpu.Register[:REG_PC] {
		text.WriteString(fmt.Sprintf("%12s\n", fmt.Sprintf("X%d %08X", n, val)))
	}

	return text.String()
}

// FetchCode fetches the instruction word at the program counter.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	pc := cpu.Register[REG_PC]
	if pc >= memory.MEMORY_SIZE {
		err = ErrPcEnd
		return
	}

	word, err := cpu.Memory.LoadWord(pc)
	if err != nil {
		return
	}

	code = Code(word)
	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (trace Trace, err error) {
	code, err := cpu.FetchCode()
	if err != nil {
		trace = Trace{Pc: cpu.Pc(), Code: code}
		return
	}

	trace, err = cpu.Execute(code)
	return
}

// Execute executes a single instruction word at the current PC.
// EBREAK returns ErrBreak and leaves the PC unchanged.
func (cpu *Cpu) Execute(code Code) (trace Trace, err error) {
	trace = Trace{Pc: cpu.Register[REG_PC], Code: code}

	inst, op, err := Decode(code)
	if err != nil {
		return
	}

	trace.Instruction = inst
	trace.Operands = op

	if cpu.Verbose {
		cpu.logger().Debug("exec",
			"pc", fmt.Sprintf("%05X", trace.Pc),
			"code", fmt.Sprintf("%08X", uint32(code)),
			"inst", inst.Name)
	}

	err = inst.Exec(cpu, op)
	if err != nil {
		return
	}

	if !inst.Jump {
		cpu.Register[REG_PC] += 4
	}
	cpu.Ticks++

	return
}
