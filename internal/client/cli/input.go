package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// argOrPrompt returns args[i] when present and asks for the value otherwise.
func argOrPrompt(reader *bufio.Reader, w io.Writer, args []string, i int, prompt string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}
	return GetSimpleText(reader, prompt, w)
}

// pick resolves "#n" to the n-th (1-based) entry of options. Any other
// argument is returned as is, so an item named "2" stays addressable.
func pick(arg string, options []string) (string, error) {
	pos, ok := strings.CutPrefix(arg, "#")
	if !ok {
		return arg, nil
	}
	n, err := strconv.Atoi(pos)
	if err != nil || n < 1 || n > len(options) {
		return "", fmt.Errorf("%w: %s is not a position between #1 and #%d", errUsage, arg, len(options))
	}
	return options[n-1], nil
}
