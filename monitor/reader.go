package monitor

import (
	"bufio"
	"fmt"
	"io"
)

// LineReader reads one line of input after showing a prompt.
// It returns io.EOF when the input is exhausted.
type LineReader interface {
	ReadLine(prompt string) (line string, err error)
}

// BufioReader is a LineReader for plain streams.
type BufioReader struct {
	Scanner *bufio.Scanner
	Output  io.Writer // Receives the prompts.
}

// NewBufioReader creates a LineReader that prompts to 'output'.
func NewBufioReader(input io.Reader, output io.Writer) (br *BufioReader) {
	br = &BufioReader{
		Scanner: bufio.NewScanner(input),
		Output:  output,
	}
	return
}

func (br *BufioReader) ReadLine(prompt string) (line string, err error) {
	if br.Output != nil {
		fmt.Fprint(br.Output, prompt)
	}

	if !br.Scanner.Scan() {
		err = br.Scanner.Err()
		if err == nil {
			err = io.EOF
		}
		return
	}

	line = br.Scanner.Text()
	return
}
