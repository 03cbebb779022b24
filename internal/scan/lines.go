package scan

import (
	"bufio"
	"io"
	"strings"
)

// MaxLogicalLine bounds one logical line (after continuation joining is
// applied the physical lines are shorter than this anyway).
const MaxLogicalLine = 1 << 20

// LineOptions configures how physical lines join into logical lines.
type LineOptions struct {
	// Comment is the comment marker. A line whose first non-blank text starts
	// with it is never treated as a continuation. Empty disables the check.
	Comment string

	// Continuation is the marker that, at the end of a physical line, joins
	// it with the following one. Empty disables joining entirely.
	Continuation string

	// JoinSep is inserted between joined fragments ("" or " ").
	JoinSep string
}

// LineScanner yields logical lines: physical lines joined across a
// per-format continuation marker, with comment lines exempt from joining.
// The sequence is finite and non-restartable, like the bufio.Scanner it
// wraps.
type LineScanner struct {
	s    *bufio.Scanner
	opts LineOptions

	text     string
	line     int // physical line number of the last line consumed
	physical int
	err      error
}

// NewLineScanner wraps r with the given joining policy.
func NewLineScanner(r io.Reader, opts LineOptions) *LineScanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), MaxLogicalLine)
	return &LineScanner{s: s, opts: opts}
}

// Scan advances to the next logical line. It returns false at end of input
// or on a read error (see Err).
func (s *LineScanner) Scan() bool {
	pending := ""
	havePending := false
	for s.s.Scan() {
		s.physical++
		raw := s.s.Text()

		if s.opts.Continuation != "" && !s.isComment(raw) {
			trimmed := strings.TrimRight(raw, " \t")
			if strings.HasSuffix(trimmed, s.opts.Continuation) {
				frag := strings.TrimSuffix(trimmed, s.opts.Continuation)
				if havePending {
					pending = s.join(pending, strings.TrimSpace(frag))
				} else {
					pending = strings.TrimRight(frag, " \t")
					havePending = true
				}
				continue
			}
		}

		if havePending {
			s.text = s.join(pending, strings.TrimSpace(raw))
		} else {
			s.text = raw
		}
		s.line = s.physical
		return true
	}
	s.err = s.s.Err()
	if havePending && s.err == nil {
		// Dangling continuation at end of input: emit the accumulator rather
		// than dropping buffered text.
		s.text = pending
		s.line = s.physical
		return true
	}
	return false
}

// Text returns the current logical line.
func (s *LineScanner) Text() string { return s.text }

// Line returns the physical line number (1-based) of the last physical line
// consumed for the current logical line, which is the position error
// reporting wants.
func (s *LineScanner) Line() int { return s.line }

// Err returns the first read error, if any. End of input is not an error.
func (s *LineScanner) Err() error { return s.err }

func (s *LineScanner) isComment(line string) bool {
	if s.opts.Comment == "" {
		return false
	}
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), s.opts.Comment)
}

func (s *LineScanner) join(acc, frag string) string {
	if frag == "" {
		return acc
	}
	if acc == "" {
		return frag
	}
	return acc + s.opts.JoinSep + frag
}

// IsBlank reports whether a logical line is all whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
