package objfile

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/ezrec/yb60/memory"
)

// Loader loads object files into memory.
type Loader struct {
	Verbose bool         // If set, logs each record.
	Logger  hclog.Logger // Logger for verbose output.
	Memory  *memory.Memory

	extend uint32 // Extended segment, from the last type 02 record.
}

// NewLoader creates a loader for a memory.
func NewLoader(mem *memory.Memory) (ld *Loader) {
	ld = &Loader{
		Logger: hclog.NewNullLogger(),
		Memory: mem,
	}
	return
}

func (ld *Loader) logger() hclog.Logger {
	if ld.Logger == nil {
		return hclog.NewNullLogger()
	}
	return ld.Logger
}

// scan calls 'handle' for each record line, stopping after an EOF record.
// Errors are wrapped in an ErrLine.
func scan(input io.Reader, handle func(rec Record) error) (err error) {
	scanner := bufio.NewScanner(input)

	var lineno int
	var line string

	defer func() {
		if err != nil {
			err = &ErrLine{LineNo: lineno, Line: line, Err: err}
		}
	}()

	for scanner.Scan() {
		lineno++
		line = strings.TrimLeft(scanner.Text(), " \t\r\v\f")
		if !strings.HasPrefix(line, ":") {
			continue
		}

		var rec Record
		rec, err = ParseRecord(line)
		if err != nil {
			return
		}

		if !rec.Valid() {
			err = ErrChecksum
			return
		}

		err = handle(rec)
		if err != nil {
			return
		}

		if rec.Type == RECORD_EOF {
			return
		}
	}

	err = scanner.Err()
	return
}

// Load reads an object file into memory.
func (ld *Loader) Load(input io.Reader) (err error) {
	ld.extend = 0

	err = scan(input, func(rec Record) (err error) {
		if ld.Verbose {
			ld.logger().Debug("record",
				"type", rec.Type.String(),
				"extend", ld.extend,
				"address", rec.Address,
				"count", rec.Count)
		}

		switch rec.Type {
		case RECORD_DATA:
			addr := ld.extend*16 + uint32(rec.Address)
			err = ld.Memory.Write(addr, rec.Data)
		case RECORD_EOF:
			// pass
		case RECORD_EXTENDED:
			ld.extend, err = rec.Extend()
		default:
			err = ErrRecordType
		}
		return
	})

	return
}

// LoadFile reads an object file from the filesystem.
func (ld *Loader) LoadFile(path string) (err error) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	err = ld.Load(file)
	return
}

// Parse reads the records of an object file without loading them.
func Parse(input io.Reader) (records []Record, err error) {
	err = scan(input, func(rec Record) error {
		records = append(records, rec)
		return nil
	})
	return
}
