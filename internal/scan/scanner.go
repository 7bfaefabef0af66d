package scan

import "strings"

// Scanner turns one logical line into a Result. It is stateless between
// lines; one Scanner may be reused for a whole document.
type Scanner struct {
	cfg Config
}

// NewScanner returns a Scanner for the given grammar.
func NewScanner(cfg Config) *Scanner {
	return &Scanner{cfg: cfg}
}

// scanState enumerates the positions of the line scan.
type scanState int

const (
	beforeKey scanState = iota // accumulating the key portion
	inValue                    // accumulating a value fragment
)

// ScanLine scans one logical line. ok is false when the line is a comment
// (or empty after leading whitespace) and carries no token.
func (s *Scanner) ScanLine(line string) (Result, bool) {
	line = strings.TrimLeft(line, " \t")
	if line == "" {
		return Result{}, false
	}
	runes := []rune(line)
	if s.cfg.Comments && runes[0] == s.cfg.CommentChar {
		return Result{}, false
	}

	var (
		res    Result
		buf    strings.Builder
		state  = beforeKey
		quote  rune // active quote character, 0 outside quotes
		quoted bool // current fragment saw a quote
		mark   int  // buf length at the last quote close
	)

	endFragment := func() {
		text := buf.String()
		if quoted {
			// Unquoted whitespace after the closing quote is never part
			// of the value.
			text = text[:mark] + strings.TrimRight(text[mark:], " \t")
		}
		res.Fragments = append(res.Fragments, Fragment{Text: text, Quoted: quoted})
		buf.Reset()
		quoted = false
		mark = 0
	}

	i := 0
	for i < len(runes) {
		ch := runes[i]

		// Escape handling first: an escape swallows the next character so
		// it can never act as separator, quote or comment.
		if ch == '\\' && (s.cfg.EscapeOutside || (s.cfg.EscapeInside && quote != 0)) {
			if i+1 >= len(runes) {
				// Trailing lone backslash, kept verbatim.
				buf.WriteRune(ch)
				break
			}
			buf.WriteString(s.unescape(runes[i+1]))
			i += 2
			continue
		}

		if quote != 0 {
			if ch == quote {
				quote = 0
				mark = buf.Len()
			} else {
				buf.WriteRune(ch)
			}
			i++
			continue
		}

		switch {
		case s.cfg.isQuote(ch):
			if !quoted && strings.TrimSpace(buf.String()) == "" {
				// Whitespace between the separator and an opening quote
				// is never part of the value.
				buf.Reset()
			}
			quote = ch
			quoted = true
		case s.cfg.InlineComments && ch == s.cfg.CommentChar:
			// Inline comment truncates the rest of the line.
			i = len(runes)
			continue
		case state == beforeKey && ch == s.cfg.ValueSeparator:
			res.Key = strings.TrimSpace(buf.String())
			res.HasValue = true
			buf.Reset()
			quoted = false
			mark = 0
			state = inValue
		case state == inValue && s.cfg.MultiSeparated && ch == s.cfg.MultiSeparator:
			endFragment()
		default:
			buf.WriteRune(ch)
		}
		i++
	}

	if state == beforeKey {
		res.Key = strings.TrimSpace(buf.String())
		if res.Key == "" {
			return Result{}, false
		}
		return res, true
	}
	endFragment()
	return res, true
}

// unescape maps a backslash-escaped character to its replacement text.
// The fixed table covers \\ ' " # : 0 a b t n r; beyond it, the active
// comment and value-separator characters are taken literally, and anything
// else keeps the backslash verbatim.
func (s *Scanner) unescape(ch rune) string {
	switch ch {
	case '\\':
		return `\`
	case '\'':
		return "'"
	case '"':
		return `"`
	case '#':
		return "#"
	case ':':
		return ":"
	case '0':
		return "\x00"
	case 'a':
		return "\a"
	case 'b':
		return "\b"
	case 't':
		return "\t"
	case 'n':
		return "\n"
	case 'r':
		return "\r"
	}
	if ch == s.cfg.CommentChar || ch == s.cfg.ValueSeparator {
		return string(ch)
	}
	return `\` + string(ch)
}
