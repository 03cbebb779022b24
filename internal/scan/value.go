package scan

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSyntax is wrapped by every tokenizer failure so drivers can map
// all of them onto one parse-error class.
var ErrInvalidSyntax = errors.New("invalid value syntax")

// Value tokens.
const (
	quoteMark    = '"'
	escapeMark   = '\\'
	segmentComma = ','
	commentSemi  = ';'
)

// Folded boolean spellings: outside quotes, "true" and "false" normalize to
// the canonical truthy/empty forms.
const (
	foldedTrue  = "1"
	foldedFalse = ""
)

// SegmentKind tags one tokenizer output segment.
type SegmentKind uint8

const (
	SegValue SegmentKind = iota
	SegComment
)

// Segment is one comma-delimited, possibly quoted token of a directive
// value, or the trailing comment (text including its ';' marker).
type Segment struct {
	Kind SegmentKind
	Text string
}

type valueState uint8

const (
	stateNormal valueState = iota
	stateQuote
	stateAfterQuote
	stateEscape
)

// SplitValue parses one raw directive value into ordered segments. Unquoted
// segments are trimmed and boolean-folded; quoted segments are taken
// literally with backslash escapes; a ';' outside quotes turns the rest of
// the input into a single comment segment. Empty input yields one empty
// value segment. Syntax violations (text around a quoted segment,
// unterminated quote or escape) wrap ErrInvalidSyntax.
func SplitValue(raw string) ([]Segment, error) {
	var (
		segs   []Segment
		cur    strings.Builder
		quoted bool
		state  = stateNormal
	)

	finalize := func() {
		text := cur.String()
		if !quoted {
			// Leading whitespace never reaches the builder.
			text = strings.TrimRight(text, " \t")
			if strings.EqualFold(text, "true") {
				text = foldedTrue
			} else if strings.EqualFold(text, "false") {
				text = foldedFalse
			}
		}
		segs = append(segs, Segment{Kind: SegValue, Text: text})
		cur.Reset()
		quoted = false
	}

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch state {
		case stateNormal:
			switch c {
			case quoteMark:
				if cur.Len() > 0 {
					return nil, fmt.Errorf("%w: quote after text at offset %d", ErrInvalidSyntax, i)
				}
				quoted = true
				state = stateQuote
			case commentSemi:
				finalize()
				segs = append(segs, Segment{Kind: SegComment, Text: raw[i:]})
				return segs, nil
			case segmentComma:
				finalize()
			default:
				if cur.Len() == 0 && (c == ' ' || c == '\t') {
					continue
				}
				cur.WriteByte(c)
			}
		case stateQuote:
			switch c {
			case quoteMark:
				state = stateAfterQuote
			case escapeMark:
				state = stateEscape
			default:
				cur.WriteByte(c)
			}
		case stateEscape:
			cur.WriteByte(c)
			state = stateQuote
		case stateAfterQuote:
			switch c {
			case segmentComma:
				finalize()
				state = stateNormal
			case commentSemi:
				finalize()
				segs = append(segs, Segment{Kind: SegComment, Text: raw[i:]})
				return segs, nil
			case ' ', '\t':
				// trailing whitespace after a closing quote is allowed
			default:
				return nil, fmt.Errorf("%w: text after a quote at offset %d", ErrInvalidSyntax, i)
			}
		}
	}

	if state == stateQuote || state == stateEscape {
		return nil, fmt.Errorf("%w: unterminated quote", ErrInvalidSyntax)
	}
	finalize()
	return segs, nil
}

// NeedsQuote reports whether an ini value must be quoted to survive a
// SplitValue round trip.
func NeedsQuote(text string) bool {
	if text == "" {
		return false
	}
	if strings.ContainsAny(text, `,;"`) {
		return true
	}
	if text[0] == ' ' || text[0] == '\t' || text[len(text)-1] == ' ' || text[len(text)-1] == '\t' {
		return true
	}
	// Unquoted spellings of the folded booleans would not round-trip.
	return strings.EqualFold(text, "true") || strings.EqualFold(text, "false")
}

// Quote wraps text in double quotes, escaping backslashes and embedded
// quotes the way the Quote/Escape states read them back.
func Quote(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 2)
	b.WriteByte(quoteMark)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == quoteMark || c == escapeMark {
			b.WriteByte(escapeMark)
		}
		b.WriteByte(c)
	}
	b.WriteByte(quoteMark)
	return b.String()
}
