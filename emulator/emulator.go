// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/ezrec/yb60/cpu"
	"github.com/ezrec/yb60/internal"
	"github.com/ezrec/yb60/memory"
	"github.com/ezrec/yb60/objfile"
)

// END_OF_MEMORY is the program counter value that ends a session.
const END_OF_MEMORY = memory.MEMORY_SIZE

var _emulator_defines = map[string]string{
	"END_OF_MEMORY": fmt.Sprintf("0x%x", END_OF_MEMORY),
}

// Emulator state. CPU + memory, and the current session.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Assembled program listing, if any.

	Session   uuid.UUID    // Identifier of the current session.
	Logger    hclog.Logger // Session logger.
	StepLimit int          // Instructions allowed per session, 0 for unlimited.

	root hclog.Logger
}

// NewEmulator creates a new emulator with zeroed memory and registers.
// The stack pointer is only set by the first Reset.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(memory.NewMemory()),
		Session: uuid.New(),
	}
	clear(emu.Cpu.Register[:])
	emu.SetLogger(hclog.NewNullLogger())

	return
}

// SetLogger sets the parent logger. Session loggers are derived from it.
func (emu *Emulator) SetLogger(logger hclog.Logger) {
	emu.root = logger
	emu.tagSession()
}

func (emu *Emulator) tagSession() {
	emu.Logger = emu.root.With("session", emu.Session.String())
	emu.Cpu.Logger = emu.Logger.Named("cpu")
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Cpu.Memory.Defines(),
	)
}

// LoadObject loads an object file into memory.
func (emu *Emulator) LoadObject(input io.Reader) (err error) {
	ld := objfile.NewLoader(emu.Cpu.Memory)
	ld.Verbose = emu.Verbose
	ld.Logger = emu.Logger.Named("objfile")

	err = ld.Load(input)
	return
}

// LoadFile loads an object file from the filesystem.
func (emu *Emulator) LoadFile(path string) (err error) {
	ld := objfile.NewLoader(emu.Cpu.Memory)
	ld.Verbose = emu.Verbose
	ld.Logger = emu.Logger.Named("objfile")

	err = ld.LoadFile(path)
	if err != nil {
		return
	}

	if emu.Verbose {
		emu.Logger.Info("loaded", "path", path)
	}
	return
}

// LoadProgram loads an assembled program into memory.
func (emu *Emulator) LoadProgram(prog *cpu.Program) (err error) {
	err = prog.LoadInto(emu.Cpu.Memory)
	if err != nil {
		return
	}

	emu.Program = prog
	return
}

// Reset the CPU state, and start a new session at 'pc'.
func (emu *Emulator) Reset(pc uint32) {
	emu.Session = uuid.New()
	emu.tagSession()

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset(pc)

	if emu.Verbose {
		emu.Logger.Debug("session start", "pc", fmt.Sprintf("%05X", pc))
	}
}

// LineNo returns the source line for an address, or 0 if unknown.
func (emu *Emulator) LineNo(addr uint32) int {
	if emu.Program == nil {
		return 0
	}

	op := emu.Program.Debug(addr)
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Tick performs a single instruction of the session.
//
// 'done' is set when the session ends at EBREAK or at the end of memory.
// The trace has a nil Instruction when nothing was executed.
func (emu *Emulator) Tick() (trace cpu.Trace, done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc()
	if pc == END_OF_MEMORY {
		done = true
		return
	}

	defer func() {
		if err != nil {
			err = &ErrRuntime{
				Pc:     trace.Pc,
				Code:   uint32(trace.Code),
				LineNo: emu.LineNo(trace.Pc),
				Err:    err,
			}
		}
	}()

	if emu.StepLimit > 0 && emu.Cpu.Ticks >= emu.StepLimit {
		trace.Pc = pc
		trace.Code, _ = emu.Cpu.FetchCode()
		err = ErrStepLimit
		return
	}

	trace, err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrBreak) {
		err = nil
		done = true
		return
	}
	if err != nil {
		return
	}

	done = emu.Cpu.Pc() == END_OF_MEMORY

	return
}
