// Package confirm implements the confirmation gate that stands between
// the scan report and any filesystem mutation. It is deliberately tiny
// and pure over its reader and writer so the gate can be tested without
// a terminal.
package confirm

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Ask prints the prompt and reads a single line from r. Only "y" or
// "yes" (case-insensitive, surrounding whitespace ignored) count as
// affirmative. Any other input, including a read error or EOF, is a
// decline.
func Ask(r io.Reader, w io.Writer, prompt string) bool {
	fmt.Fprint(w, prompt)

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
