// Package deckfile parses the two user-supplied JSON files: the deck
// list and the card annotations. Parse failures are reported with the
// offending source location and a rendered span, since these files are
// written by hand.
package deckfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ParseError is a JSON failure tied back to its source location.
type ParseError struct {
	Path string
	Line int
	Col  int
	Msg  string
	src  string
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:%d:%d: %s", e.Path, e.Line, e.Col, e.Msg)
	if line, ok := sourceLine(e.src, e.Line); ok {
		fmt.Fprintf(&sb, "\n  %s\n  %s^", line, strings.Repeat(" ", e.Col-1))
	}
	return sb.String()
}

// readJSON decodes the file at path into v, converting a decode failure
// at a known offset into a ParseError with line, column, and span.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		if offset, ok := errorOffset(err); ok {
			line, col := lineAndCol(data, offset)
			return &ParseError{Path: path, Line: line, Col: col, Msg: err.Error(), src: string(data)}
		}
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func errorOffset(err error) (int64, bool) {
	var syntax *json.SyntaxError
	if errors.As(err, &syntax) {
		return syntax.Offset, true
	}
	var unmarshal *json.UnmarshalTypeError
	if errors.As(err, &unmarshal) {
		return unmarshal.Offset, true
	}
	return 0, false
}

// lineAndCol converts a byte offset into 1-based line and column.
func lineAndCol(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col := 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

func sourceLine(src string, line int) (string, bool) {
	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return "", false
	}
	return lines[line-1], true
}
