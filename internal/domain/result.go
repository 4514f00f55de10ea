package domain

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusSuccess     Status = "success"
	StatusWarnings    Status = "success_with_warnings"
	StatusToolFailure Status = "tool_failure"
)

// Result captures what the tool printed and how it exited. It lives only
// long enough to be rendered back to whoever triggered the run.
type Result struct {
	Command  []string
	Output   string // stdout and stderr in arrival order
	Stderr   string // stderr alone, for warning detection
	ExitCode int
	Status   Status
}

// Text renders the one block shown to every caller: the command line,
// the captured output, and the exit status.
func (r *Result) Text() string {
	parts := []string{"$ " + QuoteCommand(r.Command), ""}
	if out := strings.TrimSpace(r.Output); out != "" {
		parts = append(parts, out)
	}
	parts = append(parts, fmt.Sprintf("exit status: %d", r.ExitCode))
	return strings.Join(parts, "\n")
}

// QuoteCommand renders argv the way a shell would accept it. Display
// only; execution always passes the discrete list.
func QuoteCommand(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = quoteArg(arg)
	}
	return strings.Join(quoted, " ")
}

func quoteArg(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsFunc(arg, needsQuoting) {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

func needsQuoting(r rune) bool {
	switch {
	case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
		return false
	case r == '-' || r == '_' || r == '.' || r == '/' || r == ':' || r == '=' || r == ',' || r == '+' || r == '@' || r == '%':
		return false
	}
	return true
}
