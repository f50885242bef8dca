package cli

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

// ErrInterrupted signals the operator aborted input with Ctrl-C or EOF.
var ErrInterrupted = errors.New("input interrupted")

// Prompter reads operator input: plain lines through liner (with history),
// credentials through a no-echo terminal read.
type Prompter struct {
	line *liner.State
}

// NewPrompter constructs a Prompter. Close must be called before exit to
// restore the terminal.
func NewPrompter() *Prompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &Prompter{line: line}
}

// Close restores the terminal state.
func (p *Prompter) Close() error {
	return p.line.Close()
}

// Line reads a single trimmed line of input.
func (p *Prompter) Line(prompt string) (string, error) {
	text, err := p.line.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", ErrInterrupted
		}
		return "", err
	}
	text = strings.TrimSpace(text)
	if text != "" {
		p.line.AppendHistory(text)
	}
	return text, nil
}

// Password reads a credential without echoing it. Falls back to a liner
// password prompt when stdin is not a terminal.
func (p *Prompter) Password(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		text, err := p.line.PasswordPrompt(prompt)
		if err != nil {
			return "", ErrInterrupted
		}
		return text, nil
	}

	os.Stdout.WriteString(prompt)
	raw, err := term.ReadPassword(fd)
	os.Stdout.WriteString("\n")
	if err != nil {
		return "", ErrInterrupted
	}
	return string(raw), nil
}

// Confirm asks a yes/no question, defaulting to no.
func (p *Prompter) Confirm(prompt string) bool {
	answer, err := p.Line(prompt + " [y/N]: ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
