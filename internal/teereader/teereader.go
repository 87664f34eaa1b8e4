// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teereader

import (
	"bytes"
	"io"
	"sync"
	"unicode/utf8"
)

// MaxLineLength caps the bytes kept for a line. Only the tail of a longer line is kept.
const MaxLineLength = 4096

// LastLineTeeReader wraps an io.Reader and tracks the last complete line read through it.
// It is safe to query while another goroutine reads.
type LastLineTeeReader struct {
	reader   io.Reader
	mu       sync.RWMutex
	partial  []byte
	lastLine string
	ratio    Ratio
	hasRatio bool
	lines    int
}

// NewLastLineTeeReader wraps r.
func NewLastLineTeeReader(r io.Reader) *LastLineTeeReader {
	return &LastLineTeeReader{reader: r}
}

// Read implements io.Reader.
func (lt *LastLineTeeReader) Read(p []byte) (int, error) {
	n, err := lt.reader.Read(p)
	if n > 0 {
		lt.mu.Lock()
		lt.consume(p[:n])
		lt.mu.Unlock()
	}

	return n, err //nolint:wrapcheck
}

// consume must be called with the write lock held.
func (lt *LastLineTeeReader) consume(data []byte) {
	for len(data) > 0 {
		i := bytes.IndexAny(data, "\r\n")
		if i < 0 {
			lt.appendPartial(data)
			return
		}

		lt.appendPartial(data[:i])
		data = data[i+1:]

		if len(lt.partial) == 0 {
			continue
		}

		lt.complete(string(lt.partial))
		lt.partial = lt.partial[:0]
	}
}

// appendPartial keeps at most MaxLineLength trailing bytes, starting on a rune boundary.
func (lt *LastLineTeeReader) appendPartial(b []byte) {
	lt.partial = append(lt.partial, b...)

	over := len(lt.partial) - MaxLineLength
	if over <= 0 {
		return
	}

	for over < len(lt.partial) && !utf8.RuneStart(lt.partial[over]) {
		over++
	}

	lt.partial = append(lt.partial[:0], lt.partial[over:]...)
}

func (lt *LastLineTeeReader) complete(line string) {
	lt.lastLine = line
	lt.lines++

	if r, ok := ParseRatio(line); ok {
		lt.ratio, lt.hasRatio = r, true
	}
}

// Flush treats any pending partial line as complete. Call it once the source hits EOF.
func (lt *LastLineTeeReader) Flush() {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	if len(lt.partial) > 0 {
		lt.complete(string(lt.partial))
		lt.partial = lt.partial[:0]
	}
}

// LastLine returns the last complete non-empty line, or "" if there is none yet.
// If maxLength > 3 and the line is longer than maxLength bytes, it is cut on a rune
// boundary and "..." appended.
func (lt *LastLineTeeReader) LastLine(maxLength int) string {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	if maxLength > 3 && len(lt.lastLine) > maxLength {
		cut := maxLength - 3
		for cut > 0 && !utf8.RuneStart(lt.lastLine[cut]) {
			cut--
		}

		return lt.lastLine[:cut] + "..."
	}

	return lt.lastLine
}

// PartialLine returns the bytes read since the last line ending.
func (lt *LastLineTeeReader) PartialLine() string {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	return string(lt.partial)
}

// Ratio returns the latest progress figure found in a complete line.
// It is kept until a later line carries a new one.
func (lt *LastLineTeeReader) Ratio() (Ratio, bool) {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	return lt.ratio, lt.hasRatio
}

// Lines returns the number of complete lines seen.
func (lt *LastLineTeeReader) Lines() int {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	return lt.lines
}
