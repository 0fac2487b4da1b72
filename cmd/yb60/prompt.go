package main

import (
	"fmt"
	"os"

	"github.com/c-bata/go-prompt"
	"golang.org/x/term"
)

var _suggestions = []prompt.Suggest{
	{Text: "info", Description: "Show registers"},
	{Text: "exit", Description: "Leave the monitor"},
}

// PromptReader reads monitor lines with line editing and history.
type PromptReader struct {
	fd      int
	state   *term.State
	history []string
}

// NewPromptReader creates a line editor on the terminal 'fd'.
func NewPromptReader(fd int) (pr *PromptReader, err error) {
	state, err := term.GetState(fd)
	if err != nil {
		return
	}

	pr = &PromptReader{
		fd:    fd,
		state: state,
	}
	return
}

func (pr *PromptReader) complete(doc prompt.Document) []prompt.Suggest {
	if len(doc.TextBeforeCursor()) == 0 {
		return nil
	}
	return prompt.FilterHasPrefix(_suggestions, doc.GetWordBeforeCursor(), true)
}

// quit leaves the process from inside the line editor.
func (pr *PromptReader) quit(*prompt.Buffer) {
	fmt.Println()
	_ = term.Restore(pr.fd, pr.state)
	os.Exit(0)
}

func (pr *PromptReader) ReadLine(prefix string) (line string, err error) {
	line = prompt.Input(prefix, pr.complete,
		prompt.OptionTitle("yb60"),
		prompt.OptionHistory(pr.history),
		prompt.OptionAddKeyBind(
			prompt.KeyBind{Key: prompt.ControlC, Fn: pr.quit},
			prompt.KeyBind{Key: prompt.ControlD, Fn: pr.quit},
		),
	)

	if len(line) != 0 {
		pr.history = append(pr.history, line)
	}
	return
}
