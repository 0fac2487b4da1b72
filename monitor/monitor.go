package monitor

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/ezrec/yb60/cpu"
	"github.com/ezrec/yb60/emulator"
	"github.com/ezrec/yb60/memory"
)

// DEFAULT_PROMPT is the command prompt.
const DEFAULT_PROMPT = "> "

// STEP_PROMPT is shown after each instruction in step mode.
const STEP_PROMPT = "Commands:   Y: Continue   I: Show Register Info   N: Stop   :> "

// Bytes per line of a range display.
const RANGE_WIDTH = 8

// Monitor is the command loop attached to an emulator.
type Monitor struct {
	Verbose bool         // If set, logs each command.
	Logger  hclog.Logger // Logger for verbose output.

	Emulator *emulator.Emulator // Emulator under control.
	Input    LineReader         // Command input.
	Output   io.Writer          // Command output.
	Prompt   string             // Command prompt.

	// Object files to load before the next prompt.
	Reload <-chan string
}

// NewMonitor creates a monitor.
func NewMonitor(emu *emulator.Emulator, input LineReader, output io.Writer) (mon *Monitor) {
	mon = &Monitor{
		Logger:   hclog.NewNullLogger(),
		Emulator: emu,
		Input:    input,
		Output:   output,
		Prompt:   DEFAULT_PROMPT,
	}
	return
}

func (mon *Monitor) logger() hclog.Logger {
	if mon.Logger == nil {
		return hclog.NewNullLogger()
	}
	return mon.Logger
}

func (mon *Monitor) println(args ...any) {
	fmt.Fprintln(mon.Output, args...)
}

func (mon *Monitor) printError(err error) {
	fmt.Fprintf(mon.Output, "Error: %v\n", err)
}

func (mon *Monitor) memory() *memory.Memory {
	return mon.Emulator.Cpu.Memory
}

// parseAddress parses a hexadecimal address.
func parseAddress(text string) (addr uint32, err error) {
	text = strings.TrimSpace(text)
	value, err := strconv.ParseUint(text, 16, 32)
	if err != nil {
		err = ErrAddressSyntax(text)
		return
	}

	addr = uint32(value)
	return
}

// reload loads any pending object files.
func (mon *Monitor) reload() {
	for {
		select {
		case path, ok := <-mon.Reload:
			if !ok {
				mon.Reload = nil
				return
			}
			err := mon.Emulator.LoadFile(path)
			if err != nil {
				mon.printError(err)
				continue
			}
			mon.logger().Info("reloaded", "path", path)
		default:
			return
		}
	}
}

// Run reads and executes commands until 'exit' or the end of input.
func (mon *Monitor) Run() (err error) {
	for {
		mon.reload()

		var line string
		line, err = mon.Input.ReadLine(mon.Prompt)
		if errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if err != nil {
			return
		}

		var exit bool
		exit, err = mon.Execute(line)
		if err != nil || exit {
			return
		}
	}
}

// Execute runs a single command line. Command errors are reported on the
// output; only input errors are returned.
func (mon *Monitor) Execute(line string) (exit bool, err error) {
	line = strings.TrimSpace(line)
	cmd := Classify(line)

	if mon.Verbose {
		mon.logger().Debug("command", "line", line, "kind", cmd.String())
	}

	var cerr error
	switch cmd {
	case COMMAND_NONE:
		// pass
	case COMMAND_EXIT:
		exit = true
	case COMMAND_INFO:
		fmt.Fprint(mon.Output, mon.Emulator.Cpu.String())
	case COMMAND_DISPLAY:
		cerr = mon.Display(line)
	case COMMAND_RANGE:
		start, end, _ := strings.Cut(line, ".")
		cerr = mon.DisplayRange(start, end)
	case COMMAND_EDIT:
		addr, data, _ := strings.Cut(line, ":")
		cerr = mon.Edit(addr, data)
	case COMMAND_DISASSEMBLE:
		cerr = mon.Disassemble(strings.TrimRight(line, "tT"))
	case COMMAND_RUN:
		cerr = mon.Session(strings.TrimRight(line, "rR"), false)
	case COMMAND_STEP:
		cerr = mon.Session(strings.TrimRight(line, "sS"), true)
	default:
		mon.println("Error: Unidentified Command")
	}

	if cerr != nil {
		var ierr *inputError
		if errors.As(cerr, &ierr) {
			err = ierr.Err
			return
		}
		mon.printError(cerr)
	}

	return
}

// inputError is a failure of the line reader during a command.
type inputError struct {
	Err error
}

func (err *inputError) Error() string {
	return err.Err.Error()
}

func (err *inputError) Unwrap() error {
	return err.Err
}

// Display shows a single byte. The address is shown as typed.
func (mon *Monitor) Display(text string) (err error) {
	addr, err := parseAddress(text)
	if err != nil {
		return
	}

	value, err := mon.memory().LoadByte(addr)
	if err != nil {
		return
	}

	fmt.Fprintf(mon.Output, " %s   %02X\n", text, value)
	return
}

// DisplayRange shows the bytes from 'start' to 'end' inclusive,
// RANGE_WIDTH per line.
func (mon *Monitor) DisplayRange(start_text, end_text string) (err error) {
	start, err := parseAddress(start_text)
	if err != nil {
		return
	}
	end, err := parseAddress(end_text)
	if err != nil {
		return
	}

	data, err := mon.memory().Read(start, end)
	if err != nil {
		return
	}

	for len(data) > 0 {
		size := min(len(data), RANGE_WIDTH)
		items := make([]string, size)
		for n, b := range data[:size] {
			items[n] = fmt.Sprintf("%02X", b)
		}
		fmt.Fprintf(mon.Output, " %X   %s\n", start, strings.Join(items, " "))
		start += uint32(size)
		data = data[size:]
	}

	return
}

// Edit writes the space separated hex bytes of 'data' starting at 'addr_text'.
func (mon *Monitor) Edit(addr_text, data_text string) (err error) {
	addr, err := parseAddress(addr_text)
	if err != nil {
		return
	}

	var data []byte
	for _, word := range strings.Fields(data_text) {
		var value uint64
		value, err = strconv.ParseUint(word, 16, 8)
		if err != nil {
			err = ErrByteSyntax(word)
			return
		}
		data = append(data, uint8(value))
	}

	err = mon.memory().Write(addr, data)
	return
}

// Disassemble lists instructions from 'addr_text' through the next EBREAK,
// or the end of memory. Machine state is not changed.
func (mon *Monitor) Disassemble(addr_text string) (err error) {
	addr, err := parseAddress(addr_text)
	if err != nil {
		return
	}

	mem := mon.memory()
	for uint64(addr)+4 <= memory.MEMORY_SIZE {
		var word uint32
		word, err = mem.LoadWord(addr)
		if err != nil {
			return
		}

		code := cpu.Code(word)
		mon.println(cpu.Disassemble(code))
		if code == cpu.CODE_EBREAK {
			break
		}

		addr += 4
	}

	return
}

// Session resets the emulator and runs from 'addr_text', tracing each
// instruction. In step mode the user is asked to continue after each one.
func (mon *Monitor) Session(addr_text string, step bool) (err error) {
	addr, err := parseAddress(addr_text)
	if err != nil {
		return
	}

	emu := mon.Emulator
	emu.Reset(addr)

	mon.println(cpu.TraceHeader())

	for {
		var trace cpu.Trace
		var done bool
		trace, done, err = emu.Tick()
		if trace.Instruction != nil {
			mon.println(trace.String())
		}
		if err != nil || done {
			return
		}

		if step {
			var stop bool
			stop, err = mon.askContinue()
			if err != nil || stop {
				return
			}
		}
	}
}

// askContinue shows the step prompt until the answer is not 'I'.
func (mon *Monitor) askContinue() (stop bool, err error) {
	for {
		var answer string
		answer, err = mon.Input.ReadLine(STEP_PROMPT)
		if errors.Is(err, io.EOF) {
			err = nil
			stop = true
			return
		}
		if err != nil {
			err = &inputError{Err: err}
			return
		}

		switch strings.ToUpper(strings.TrimSpace(answer)) {
		case "I":
			fmt.Fprint(mon.Output, mon.Emulator.Cpu.String())
			continue
		case "N":
			stop = true
		}
		return
	}
}
