// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package memory implements the flat, byte addressable, little-endian
// memory of the YB-60.
package memory

import (
	"fmt"
	"iter"
	"maps"
)

const (
	MEMORY_SIZE = 1 << 20         // Size of the address space, in bytes.
	MEMORY_TOP  = MEMORY_SIZE - 1 // Highest valid address.
)

var _memory_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("0x%x", MEMORY_SIZE),
	"MEMORY_TOP":  fmt.Sprintf("0x%x", MEMORY_TOP),
}

// Memory is the emulated address space.
type Memory struct {
	Data []byte
}

// NewMemory creates a zeroed address space.
func NewMemory() (mem *Memory) {
	mem = &Memory{
		Data: make([]byte, MEMORY_SIZE),
	}
	return
}

// Defines for the memory layout.
func (mem *Memory) Defines() iter.Seq2[string, string] {
	return maps.All(_memory_defines)
}

// Reset zeros all of memory.
func (mem *Memory) Reset() {
	clear(mem.Data)
}

// check verifies that [addr, addr+size) lies within memory.
func (mem *Memory) check(addr uint32, size uint32) (err error) {
	if uint64(addr)+uint64(size) > uint64(len(mem.Data)) {
		err = ErrAddress(addr)
	}
	return
}

// LoadByte reads a single byte.
func (mem *Memory) LoadByte(addr uint32) (value uint8, err error) {
	err = mem.check(addr, 1)
	if err != nil {
		return
	}

	value = mem.Data[addr]
	return
}

// LoadHalf reads a little-endian 16-bit value.
func (mem *Memory) LoadHalf(addr uint32) (value uint16, err error) {
	err = mem.check(addr, 2)
	if err != nil {
		return
	}

	value = uint16(mem.Data[addr]) | uint16(mem.Data[addr+1])<<8
	return
}

// LoadWord reads a little-endian 32-bit value.
func (mem *Memory) LoadWord(addr uint32) (value uint32, err error) {
	err = mem.check(addr, 4)
	if err != nil {
		return
	}

	for n := range uint32(4) {
		value |= uint32(mem.Data[addr+n]) << (8 * n)
	}
	return
}

// StoreByte writes a single byte.
func (mem *Memory) StoreByte(addr uint32, value uint8) (err error) {
	err = mem.check(addr, 1)
	if err != nil {
		return
	}

	mem.Data[addr] = value
	return
}

// StoreHalf writes a little-endian 16-bit value.
func (mem *Memory) StoreHalf(addr uint32, value uint16) (err error) {
	err = mem.check(addr, 2)
	if err != nil {
		return
	}

	mem.Data[addr] = uint8(value)
	mem.Data[addr+1] = uint8(value >> 8)
	return
}

// StoreWord writes a little-endian 32-bit value.
func (mem *Memory) StoreWord(addr uint32, value uint32) (err error) {
	err = mem.check(addr, 4)
	if err != nil {
		return
	}

	for n := range uint32(4) {
		mem.Data[addr+n] = uint8(value >> (8 * n))
	}
	return
}

// Write copies a run of bytes into memory starting at addr.
// Nothing is written if any part of the run is out of range.
func (mem *Memory) Write(addr uint32, data []byte) (err error) {
	err = mem.check(addr, uint32(len(data)))
	if err != nil {
		// Report the first byte that does not fit.
		if addr < MEMORY_SIZE {
			err = ErrAddress(MEMORY_SIZE)
		}
		return
	}

	copy(mem.Data[addr:], data)
	return
}

// Read returns a copy of the inclusive range [start, end].
func (mem *Memory) Read(start, end uint32) (data []byte, err error) {
	switch {
	case end >= uint32(len(mem.Data)):
		err = ErrAddress(end)
		return
	case start > end:
		err = ErrAddress(start)
		return
	}

	data = make([]byte, end-start+1)
	copy(data, mem.Data[start:end+1])
	return
}
