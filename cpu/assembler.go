// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/hashicorp/go-hclog"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Maximum depth of equates referring to equates.
const equateDepth = 16

// abiName are the calling convention names of x0..x31.
var abiName = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// abiRegister maps calling convention names to register indexes.
var abiRegister = map[string]uint8{
	"fp": 8,
}

func init() {
	for n, name := range abiName {
		abiRegister[name] = uint8(n)
	}
}

// Assembler is a two pass assembler for the YB-60 instruction set.
//
// The first pass assigns addresses to labels and statements, the second
// encodes each statement once every label is known.
type Assembler struct {
	Verbose bool         // If set, verbosely logs the assembler actions.
	Logger  hclog.Logger // Logger for verbose output.
	Opcode  []Opcode     // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]uint32 // Map of labels to addresses.
	Equate    map[string]string // Map of equates.

	address uint32 // Current assembly address.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

func (asm *Assembler) logger() hclog.Logger {
	if asm.Logger == nil {
		return hclog.NewNullLogger()
	}
	return asm.Logger
}

// resolve follows equates until a word is not an equate.
func (asm *Assembler) resolve(word string) string {
	for range equateDepth {
		equate, ok := asm.Equate[word]
		if !ok {
			break
		}
		word = equate
	}
	return word
}

// register parses a register name.
func (asm *Assembler) register(word string) (reg uint8, err error) {
	word = strings.ToLower(asm.resolve(word))

	reg, ok := abiRegister[word]
	if ok {
		return
	}

	if len(word) > 1 && word[0] == 'x' {
		var n uint64
		n, err = strconv.ParseUint(word[1:], 10, 8)
		if err == nil && n < 32 {
			reg = uint8(n)
			return
		}
	}

	err = errors.Join(ErrRegisterInvalid, ErrParseRegister(word))
	return
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	if len(word) == 0 {
		err = ErrOpcodeValueMissing
		return
	}

	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
	}

	label, ok := asm.Label[word]
	if ok {
		value = int64(label)
	} else {
		word = asm.resolve(word)
		value, err = strconv.ParseInt(word, 0, 64)
		if err != nil {
			err = ErrParseNumber(word)
			return
		}
	}

	if invert {
		value = ^value
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, perr := strconv.ParseInt(asm.resolve(str), 0, 64)
		if perr != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeUint(uint(addr))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// stripComment removes ';' and '#' comments.
func stripComment(text string) string {
	index := strings.IndexAny(text, ";#")
	if index >= 0 {
		text = text[:index]
	}
	return text
}

// parseLine expands a single line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "0":
				str = "\000"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.FieldsFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Opcode = asm.Opcode[:0]
	asm.Label = make(map[string]uint32, 16)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}
	asm.address = 0

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			asm.logger().Debug("asm", "line", lineno, "text", text)
		}

		line = strings.TrimSpace(stripComment(text))

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Encode, now that all labels are known.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]
		err = asm.encode(op)
		if err != nil {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			return
		}
	}

	opcodes := slices.Clone(asm.Opcode)
	slices.SortStableFunc(opcodes, func(a, b Opcode) int {
		return cmp.Compare(a.Address, b.Address)
	})
	for n := 1; n < len(opcodes); n++ {
		prior := &opcodes[n-1]
		if uint64(prior.Address)+uint64(len(prior.Bytes)) > uint64(opcodes[n].Address) {
			lineno = opcodes[n].LineNo
			line = strings.Join(opcodes[n].Words, " ")
			err = ErrOverlap
			return
		}
	}

	prog = &Program{
		Opcodes: opcodes,
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = asm.address
		words = words[1:]
	}

	// no-op
	if len(words) == 0 {
		return
	}

	mnemonic := strings.ToLower(words[0])
	args := words[1:]

	var size int
	switch mnemonic {
	case ".equ":
		// .equ CONST VALUE
		if len(args) != 2 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[args[0]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[args[0]] = args[1]
		return
	case ".org":
		if len(args) != 1 {
			err = ErrOrgSyntax
			return
		}
		var value int64
		value, err = asm.valueOf(args[0])
		if err != nil {
			return
		}
		if value < 0 || value > 0xffffffff {
			err = ErrImmediateRange{Value: value, Width: 32}
			return
		}
		asm.address = uint32(value)
		return
	case ".word":
		size = 4 * len(args)
	case ".byte":
		size = len(args)
	default:
		_, ok := Lookup(mnemonic)
		if !ok {
			err = ErrOpcodeInvalid
			return
		}
		size = 4
	}

	if size == 0 {
		err = ErrOpcodeValueMissing
		return
	}

	asm.Opcode = append(asm.Opcode, Opcode{
		LineNo:  lineno,
		Address: asm.address,
		Words:   slices.Clone(words),
	})
	asm.address += uint32(size)

	return
}

// encode fills in the bytes of an opcode.
func (asm *Assembler) encode(op *Opcode) (err error) {
	mnemonic := strings.ToLower(op.Words[0])
	args := op.Words[1:]

	switch mnemonic {
	case ".word":
		for _, arg := range args {
			var value int64
			value, err = asm.valueOf(arg)
			if err != nil {
				return
			}
			if value < -(1<<31) || value > 0xffffffff {
				err = ErrImmediateRange{Value: value, Width: 32}
				return
			}
			op.Bytes = binary.LittleEndian.AppendUint32(op.Bytes, uint32(value))
		}
		return
	case ".byte":
		for _, arg := range args {
			var value int64
			value, err = asm.valueOf(arg)
			if err != nil {
				return
			}
			if value < -(1<<7) || value > 0xff {
				err = ErrImmediateRange{Value: value, Width: 8}
				return
			}
			op.Bytes = append(op.Bytes, uint8(value))
		}
		return
	}

	inst, _ := Lookup(mnemonic)
	operands, err := asm.operands(inst, op.Address, args)
	if err != nil {
		return
	}

	code := inst.Encode(operands)
	op.Bytes = binary.LittleEndian.AppendUint32(nil, uint32(code))

	return
}

// argCount checks the number of operands.
func argCount(args []string, count int) (err error) {
	switch {
	case len(args) < count:
		err = ErrOpcodeValueMissing
	case len(args) > count:
		err = ErrOpcodeExtraArgs
	}
	return
}

// checkSigned verifies a value fits a signed field of 'width' bits.
func checkSigned(value int64, width uint) (err error) {
	if value < -(1<<(width-1)) || value >= (1<<(width-1)) {
		err = ErrImmediateRange{Value: value, Width: width}
	}
	return
}

// checkOffset verifies a value is an even signed offset of 'width' bits.
func checkOffset(value int64, width uint) (err error) {
	err = checkSigned(value, width)
	if err == nil && (value&1) != 0 {
		err = ErrImmediateRange{Value: value, Width: width}
	}
	return
}

// memOperand parses an 'offset(register)' operand.
func (asm *Assembler) memOperand(word string) (offset int64, reg uint8, err error) {
	open := strings.IndexByte(word, '(')
	if open < 0 || !strings.HasSuffix(word, ")") {
		err = ErrAddressSyntax
		return
	}

	reg, err = asm.register(word[open+1 : len(word)-1])
	if err != nil {
		return
	}

	if open > 0 {
		offset, err = asm.valueOf(word[:open])
		if err != nil {
			return
		}
	}

	err = checkSigned(offset, 12)
	return
}

// target computes a PC relative offset. Labels are relative to 'address',
// plain values are taken as the offset itself.
func (asm *Assembler) target(word string, address uint32) (offset int64, err error) {
	label, ok := asm.Label[word]
	if ok {
		offset = int64(label) - int64(address)
		return
	}

	offset, err = asm.valueOf(word)
	return
}

// operands parses the operand words of an instruction.
func (asm *Assembler) operands(inst *Instruction, address uint32, args []string) (op Operands, err error) {
	var imm int64

	defer func() {
		if err == nil {
			op.Imm = int32(imm)
		}
	}()

	switch {
	case inst == InstructionEbreak:
		err = argCount(args, 0)
	case inst.Group == GROUP_LOAD, inst.Group == GROUP_JALR && len(args) == 2:
		// rd, offset(rs1)
		if err = argCount(args, 2); err != nil {
			return
		}
		if op.Rd, err = asm.register(args[0]); err != nil {
			return
		}
		imm, op.Rs1, err = asm.memOperand(args[1])
	case inst.Group == GROUP_STORE:
		// rs2, offset(rs1)
		if err = argCount(args, 2); err != nil {
			return
		}
		if op.Rs2, err = asm.register(args[0]); err != nil {
			return
		}
		imm, op.Rs1, err = asm.memOperand(args[1])
	case inst.Format == FORMAT_R:
		if err = argCount(args, 3); err != nil {
			return
		}
		if op.Rd, err = asm.register(args[0]); err != nil {
			return
		}
		if op.Rs1, err = asm.register(args[1]); err != nil {
			return
		}
		op.Rs2, err = asm.register(args[2])
	case inst.Format == FORMAT_I:
		// rd, rs1, imm
		if err = argCount(args, 3); err != nil {
			return
		}
		if op.Rd, err = asm.register(args[0]); err != nil {
			return
		}
		if op.Rs1, err = asm.register(args[1]); err != nil {
			return
		}
		if imm, err = asm.valueOf(args[2]); err != nil {
			return
		}
		switch {
		case inst.Shift:
			if imm < 0 || imm > 31 {
				err = ErrImmediateRange{Value: imm, Width: 5}
			}
		case inst.ZeroExtend:
			if imm < 0 || imm > 0xfff {
				err = ErrImmediateRange{Value: imm, Width: 12}
			}
		default:
			err = checkSigned(imm, 12)
		}
	case inst.Format == FORMAT_SB:
		// rs1, rs2, target
		if err = argCount(args, 3); err != nil {
			return
		}
		if op.Rs1, err = asm.register(args[0]); err != nil {
			return
		}
		if op.Rs2, err = asm.register(args[1]); err != nil {
			return
		}
		if imm, err = asm.target(args[2], address); err != nil {
			return
		}
		err = checkOffset(imm, 13)
	case inst.Format == FORMAT_U:
		// rd, imm
		if err = argCount(args, 2); err != nil {
			return
		}
		if op.Rd, err = asm.register(args[0]); err != nil {
			return
		}
		if imm, err = asm.valueOf(args[1]); err != nil {
			return
		}
		if imm < -(1<<19) || imm > 0xfffff {
			err = ErrImmediateRange{Value: imm, Width: 20}
		}
	case inst.Format == FORMAT_UJ:
		// [rd,] target
		op.Rd = REG_RA
		if len(args) == 2 {
			if op.Rd, err = asm.register(args[0]); err != nil {
				return
			}
			args = args[1:]
		}
		if err = argCount(args, 1); err != nil {
			return
		}
		if imm, err = asm.target(args[0], address); err != nil {
			return
		}
		err = checkOffset(imm, 21)
	}

	return
}
