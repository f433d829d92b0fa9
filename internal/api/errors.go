package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnexpectedResponse is returned when the service answers without ok or
// without the fields the call requires.
var ErrUnexpectedResponse = errors.New("unexpected API response")

// FileError is a diagnostic attached to a source file.
type FileError struct {
	File  string  `json:"file"`
	Line  *uint32 `json:"line"`
	Error string  `json:"error"`
}

func (f FileError) String() string {
	line := ""
	if f.Line != nil {
		line = fmt.Sprintf(":%d", *f.Line)
	}
	return fmt.Sprintf("%s%s:\n  %s", f.File, line, f.Error)
}

// ErrorDetails is the structured error the service returns for codegen,
// compile, deploy and list.
type ErrorDetails struct {
	OverallError        string      `json:"overallError"`
	Errors              []string    `json:"errors"`
	ByFileAndLineErrors []FileError `json:"byFileAndLineErrors"`
}

// Error implements error with a multi-line report.
func (e *ErrorDetails) Error() string {
	var b strings.Builder
	b.WriteString(e.OverallError)
	b.WriteString("\n")

	if e.Errors != nil {
		b.WriteString("\nErrors:\n")
		for i, msg := range e.Errors {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, msg)
		}
	}

	if e.ByFileAndLineErrors != nil {
		b.WriteString("\nFile Errors:\n")
		for _, fe := range e.ByFileAndLineErrors {
			b.WriteString(fe.String())
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), " \t\r\n")
}
