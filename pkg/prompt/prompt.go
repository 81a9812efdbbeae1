// Package prompt implements the line-oriented interactive prompts used at the
// CLI boundary. Prompts degrade to their defaults when no terminal is attached.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// Prompter reads answers from in and writes questions to out.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// New returns a Prompter bound to stdin/stdout.
func New() *Prompter {
	return &Prompter{
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
}

// NewWith returns a Prompter over explicit streams, always interactive.
// Used by tests.
func NewWith(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: true,
	}
}

// Interactive reports whether a terminal is attached.
func (p *Prompter) Interactive() bool {
	return p.interactive
}

// Confirm asks a yes/no question and returns the answer.
// Empty input and non-terminal sessions yield defaultYes.
func (p *Prompter) Confirm(question string, defaultYes bool) bool {
	if !p.interactive {
		return defaultYes
	}

	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}
	fmt.Fprintf(p.out, "%s [%s]: ", question, hint)

	line, err := p.in.ReadString('\n')
	if err != nil {
		return defaultYes
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return defaultYes
	}
}

// Choice displays a numbered menu and returns the selected index (0-based).
// Empty input selects defaultIndex; out-of-range or non-numeric input re-prompts.
func (p *Prompter) Choice(question string, options []string, defaultIndex int) int {
	if !p.interactive {
		return defaultIndex
	}

	fmt.Fprintln(p.out, question)
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, opt)
	}

	for {
		fmt.Fprintf(p.out, "Selection [%d]: ", defaultIndex+1)
		line, err := p.in.ReadString('\n')
		if err != nil {
			return defaultIndex
		}

		line = strings.TrimSpace(line)
		if line == "" {
			return defaultIndex
		}

		num, err := strconv.Atoi(line)
		if err != nil || num < 1 || num > len(options) {
			fmt.Fprintf(p.out, "Please enter a number between 1 and %d\n", len(options))
			continue
		}

		return num - 1
	}
}
