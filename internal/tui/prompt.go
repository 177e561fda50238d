// Package tui holds the interactive terminal screens for the portal
// clients. Screens read line commands from stdin and render plain text;
// all portal state flows through the injected services.
package tui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// Prompter reads user input for interactive screens.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Say writes one formatted line to the screen.
func (p *Prompter) Say(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Line prompts for one trimmed line of input.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Password prompts for a secret without echoing. Falls back to a plain
// line read when stdin is not a terminal (tests, pipes).
func (p *Prompter) Password(label string) (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return p.Line(label)
	}
	fmt.Fprintf(p.out, "%s: ", label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

// Confirm asks a yes/no question; only an explicit yes counts.
func (p *Prompter) Confirm(label string) bool {
	answer, err := p.Line(label + " [y/N]")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// MultiLine reads lines until a lone "." terminator, returning the
// joined block. Used for code and description entry.
func (p *Prompter) MultiLine(label string) (string, error) {
	p.Say("%s (finish with a single '.' line):", label)
	var lines []string
	for {
		line, err := p.in.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				break
			}
			return "", err
		}
		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == "." {
			break
		}
		lines = append(lines, trimmed)
	}
	return strings.Join(lines, "\n"), nil
}

// Stdio returns a prompter over the process's standard streams.
func Stdio() *Prompter {
	return NewPrompter(os.Stdin, os.Stdout)
}
