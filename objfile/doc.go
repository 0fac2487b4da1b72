// Package objfile reads and writes YB-60 object files.
//
// An object file is text. Each record is a line of the form
//
//	:CCAAAATT<data>KK
//
// where CC is the data byte count, AAAA the 16-bit load offset, TT the
// record type, <data> the data bytes and KK the checksum, all in hex.
// The checksum is the two's complement of the sum of every preceding
// record byte. Lines not starting with ':' are ignored.
//
// Record type 00 carries data, 01 ends the file and 02 sets the extended
// segment address. Data is loaded at (segment * 16) + offset.
package objfile
