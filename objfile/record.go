package objfile

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// RecordType is the type field of a record: data bytes, end of file, or
// an extended segment address.
//
//go:generate go tool stringer -linecomment -type=RecordType
type RecordType uint8

const (
	RECORD_DATA     = RecordType(0x00) // DATA
	RECORD_EOF      = RecordType(0x01) // EOF
	RECORD_EXTENDED = RecordType(0x02) // EXTENDED
)

// Record is a single object file record.
type Record struct {
	Count    uint8      // Number of data bytes.
	Address  uint16     // Load offset.
	Type     RecordType // Record type.
	Data     []byte     // Data bytes.
	Checksum uint8      // Checksum as read.
}

// NewRecord creates a record with a valid checksum.
func NewRecord(rt RecordType, address uint16, data []byte) (rec Record) {
	rec = Record{
		Count:   uint8(len(data)),
		Address: address,
		Type:    rt,
		Data:    data,
	}
	rec.Checksum = rec.Sum()
	return
}

// Sum computes the checksum of the record fields.
func (rec Record) Sum() uint8 {
	sum := rec.Count + uint8(rec.Address>>8) + uint8(rec.Address) + uint8(rec.Type)
	for _, b := range rec.Data {
		sum += b
	}
	return -sum
}

// Valid is true when the checksum matches the record fields.
func (rec Record) Valid() bool {
	return rec.Sum() == rec.Checksum
}

// Extend returns the segment of an extended address record.
func (rec Record) Extend() (extend uint32, err error) {
	if rec.Type != RECORD_EXTENDED || len(rec.Data) != 2 {
		err = ErrRecordSyntax
		return
	}
	extend = uint32(rec.Data[0])<<8 | uint32(rec.Data[1])
	return
}

// String formats the record as an object file line.
func (rec Record) String() string {
	return fmt.Sprintf(":%02X%04X%02X%s%02X",
		rec.Count, rec.Address, uint8(rec.Type),
		strings.ToUpper(hex.EncodeToString(rec.Data)),
		rec.Checksum)
}

// ParseRecord decodes a record line, which must start with ':'.
// The checksum is not verified.
func ParseRecord(line string) (rec Record, err error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ":") {
		err = ErrRecordSyntax
		return
	}

	raw, err := hex.DecodeString(line[1:])
	if err != nil {
		err = ErrRecordSyntax
		return
	}

	// count(1) address(2) type(1) checksum(1)
	if len(raw) < 5 || len(raw) != 5+int(raw[0]) {
		err = ErrRecordSyntax
		return
	}

	rec = Record{
		Count:    raw[0],
		Address:  uint16(raw[1])<<8 | uint16(raw[2]),
		Type:     RecordType(raw[3]),
		Data:     raw[4 : len(raw)-1],
		Checksum: raw[len(raw)-1],
	}

	return
}
