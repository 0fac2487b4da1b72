package monitor

import (
	"strings"
)

// Command is the kind of a monitor input line. See the package
// documentation for the syntax of each.
//
//go:generate go tool stringer -linecomment -type=Command
type Command int

const (
	COMMAND_NONE        = Command(iota) // NONE
	COMMAND_EXIT                        // EXIT
	COMMAND_INFO                        // INFO
	COMMAND_DISPLAY                     // DISPLAY
	COMMAND_RANGE                       // RANGE
	COMMAND_EDIT                        // EDIT
	COMMAND_DISASSEMBLE                 // DISASSEMBLE
	COMMAND_RUN                         // RUN
	COMMAND_STEP                        // STEP
	COMMAND_UNKNOWN                     // UNKNOWN
)

func isHex(text string) bool {
	for _, c := range text {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Classify determines the command of an input line. The literal commands
// are checked first, as 'exit' contains a 't'.
func Classify(line string) Command {
	upper := strings.ToUpper(line)
	switch {
	case len(line) == 0:
		return COMMAND_NONE
	case line == "exit":
		return COMMAND_EXIT
	case line == "info":
		return COMMAND_INFO
	case isHex(line):
		return COMMAND_DISPLAY
	case strings.Contains(line, "."):
		return COMMAND_RANGE
	case strings.Contains(line, ":"):
		return COMMAND_EDIT
	case strings.Contains(upper, "T"):
		return COMMAND_DISASSEMBLE
	case strings.Contains(upper, "R"):
		return COMMAND_RUN
	case strings.Contains(upper, "S"):
		return COMMAND_STEP
	}
	return COMMAND_UNKNOWN
}
