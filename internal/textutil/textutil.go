// Package textutil implements the line counting policy used by scans.
package textutil

import (
	"bytes"
	"io"
	"unicode"
)

// NormalizeUTF8LF converts CRLF and lone CR to LF and drops byte sequences
// that are not valid UTF-8. It never fails.
func NormalizeUTF8LF(b []byte) []byte {
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	b = bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
	return bytes.ToValidUTF8(b, nil)
}

// CountLines returns the number of lines in content. A trailing line without
// a terminator still counts. With ignoreWhitespace, lines made only of
// whitespace are not counted.
func CountLines(content []byte, ignoreWhitespace bool) int {
	b := NormalizeUTF8LF(content)
	if len(b) == 0 {
		return 0
	}
	if !ignoreWhitespace {
		n := bytes.Count(b, []byte("\n"))
		if b[len(b)-1] != '\n' {
			n++
		}
		return n
	}
	n := 0
	for len(b) > 0 {
		i := bytes.IndexByte(b, '\n')
		var line []byte
		if i < 0 {
			line, b = b, nil
		} else {
			line, b = b[:i], b[i+1:]
		}
		if !IsBlank(line) {
			n++
		}
	}
	return n
}

// Count reads r to the end and counts its lines under the same rules as
// CountLines.
func Count(r io.Reader, ignoreWhitespace bool) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	return CountLines(data, ignoreWhitespace), nil
}

// IsBlank reports whether line holds nothing but whitespace.
func IsBlank(line []byte) bool {
	return len(bytes.TrimFunc(line, unicode.IsSpace)) == 0
}
