// Package error decorates a plain error with the source location it came
// from, so a caller loading a grammar or lexical-rule file from disk can
// print the offending line alongside the message.
package error

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// SpecError wraps Cause with the source it was found in. FilePath is
// optional: when empty (a spec loaded from an in-memory reader, say),
// Error omits the source line and prints just SourceName/Row/Cause.
type SpecError struct {
	Cause      error
	FilePath   string
	SourceName string
	Row        int
}

// New builds a SpecError with no source file to quote a line from, the
// shape specfmt.Load uses since it reads from an io.Reader rather than a
// named file on disk.
func New(cause error, sourceName string, row int) *SpecError {
	return &SpecError{Cause: cause, SourceName: sourceName, Row: row}
}

func (e *SpecError) Error() string {
	var b strings.Builder
	if e.SourceName != "" {
		fmt.Fprintf(&b, "%v: ", e.SourceName)
	}
	if e.Row != 0 {
		fmt.Fprintf(&b, "%v: ", e.Row)
	}
	fmt.Fprintf(&b, "error: %v", e.Cause)

	line := readLine(e.FilePath, e.Row)
	if line != "" {
		fmt.Fprintf(&b, "\n    %v", line)
	}

	return b.String()
}

func readLine(filePath string, row int) string {
	if filePath == "" || row <= 0 {
		return ""
	}

	f, err := os.Open(filePath)
	if err != nil {
		return ""
	}

	i := 1
	s := bufio.NewScanner(f)
	for s.Scan() {
		if i == row {
			return s.Text()
		}
		i++
	}

	return ""
}
