package objfile

import (
	"fmt"
	"io"
)

// MAX_RECORD_DATA is the number of data bytes per written record.
const MAX_RECORD_DATA = 16

// Writer writes data as object file records.
type Writer struct {
	w      io.Writer
	extend uint32
}

// NewWriter creates an object file writer.
func NewWriter(w io.Writer) (wr *Writer) {
	wr = &Writer{w: w}
	return
}

func (wr *Writer) emit(rec Record) (err error) {
	_, err = fmt.Fprintln(wr.w, rec.String())
	return
}

// Write emits data records for 'data' loaded at 'addr'. Extended segment
// records are emitted whenever the address leaves the current 64KiB window.
func (wr *Writer) Write(addr uint32, data []byte) (err error) {
	for len(data) > 0 {
		extend := (addr >> 16) << 12
		if extend != wr.extend {
			err = wr.emit(NewRecord(RECORD_EXTENDED, 0, []byte{uint8(extend >> 8), uint8(extend)}))
			if err != nil {
				return
			}
			wr.extend = extend
		}

		offset := addr & 0xffff
		size := min(len(data), MAX_RECORD_DATA, int(0x10000-offset))

		err = wr.emit(NewRecord(RECORD_DATA, uint16(offset), data[:size]))
		if err != nil {
			return
		}

		addr += uint32(size)
		data = data[size:]
	}

	return
}

// Close emits the end of file record.
func (wr *Writer) Close() (err error) {
	err = wr.emit(NewRecord(RECORD_EOF, 0, nil))
	return
}
