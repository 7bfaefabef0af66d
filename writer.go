package ini

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

// Writer regenerates INI text from a Document, applying the dialect's
// quoting, escaping and multi-value rules in reverse.
type Writer struct {
	d Dialect
}

// NewWriter returns a Writer for the given dialect.
func NewWriter(d Dialect) *Writer {
	return &Writer{d: d}
}

// Write serializes doc to out. Stream failures are reported as *IOError.
func (w *Writer) Write(out io.Writer, doc *Document) error {
	bw := bufio.NewWriter(out)
	ws := &writeState{w: w, out: bw}
	ws.writeScope(&doc.scope, nil)
	if ws.err == nil {
		ws.err = bw.Flush()
	}
	if ws.err != nil {
		return &IOError{Op: "write", Err: ws.err}
	}
	return nil
}

// writeState carries the output stream and the walk state.
type writeState struct {
	w       *Writer
	out     *bufio.Writer
	started bool // a block has been written, so the next header needs a blank line
	err     error
}

func (ws *writeState) print(s string) {
	if ws.err != nil {
		return
	}
	_, ws.err = ws.out.WriteString(s)
}

// writeScope emits the scope's own values, then each child section block
// depth-first. Same-named siblings are written as separate blocks in
// declaration order.
func (ws *writeState) writeScope(s *scope, path []string) {
	for _, key := range s.Keys() {
		ws.writeKey(key, s.Values(key))
	}
	if len(s.Keys()) > 0 && path == nil {
		ws.started = true
	}
	for _, name := range s.SectionNames() {
		for _, sec := range s.Sections(name) {
			ws.writeSection(sec, append(path, name))
		}
	}
}

func (ws *writeState) writeSection(sec *Section, path []string) {
	if ws.started {
		ws.print("\n")
	}
	ws.started = true
	ws.print("[" + strings.Join(path, string(ws.w.d.PathSeparator)) + "]\n")
	ws.writeScope(&sec.scope, path)
}

func (ws *writeState) writeKey(key string, values []string) {
	d := ws.w.d
	sep := ws.separator()

	if len(values) == 0 {
		if !d.AllowEmptyValues {
			return
		}
		if d.SeparatorOnEmpty {
			ws.print(ws.escapeKey(key) + sep + "\n")
		} else {
			ws.print(ws.escapeKey(key) + "\n")
		}
		return
	}

	if d.Multi == MultiSeparated && len(values) > 1 {
		join := string(d.MultiSeparator)
		if d.TrimValues {
			join += " "
		}
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = ws.renderValue(v)
		}
		ws.print(ws.escapeKey(key) + sep + strings.Join(quoted, join) + "\n")
		return
	}

	for _, v := range values {
		ws.print(ws.escapeKey(key) + sep + ws.renderValue(v) + "\n")
	}
}

func (ws *writeState) separator() string {
	if ws.w.d.TrimValues {
		return " " + string(ws.w.d.ValueSeparator) + " "
	}
	return string(ws.w.d.ValueSeparator)
}

// renderValue applies the quote and escape policy to one value.
func (ws *writeState) renderValue(v string) string {
	d := ws.w.d
	quote := rune(0)
	switch d.Quote {
	case QuoteAlways:
		if len(d.QuoteChars) > 0 {
			quote = d.QuoteChars[0]
		}
	case QuoteAuto:
		if len(d.QuoteChars) > 0 && needsQuoting(v, d.CommentChar) {
			quote = d.QuoteChars[0]
		}
	}

	// Even with quoting off, an empty value or edge whitespace must be
	// quoted: written bare, the reader would record a key with no value or
	// trim the whitespace away.
	if quote == 0 && len(d.QuoteChars) > 0 {
		if v == "" || (d.TrimValues && strings.TrimSpace(v) != v) {
			quote = d.QuoteChars[0]
		}
	}

	// With escaping off an embedded quote character is emitted verbatim;
	// quoting alone cannot represent it.
	if d.Escape != EscapeNever {
		v = ws.escapeValue(v, quote)
	}
	if quote != 0 {
		return string(quote) + v + string(quote)
	}
	return v
}

func needsQuoting(v string, comment rune) bool {
	if v == "" {
		return true
	}
	for _, r := range v {
		if unicode.IsSpace(r) || r == comment {
			return true
		}
	}
	return false
}

// escapeValue escapes backslash, CR, LF, NUL and backspace, plus tab and
// the comment character when the value is not being quoted, plus the active
// quote character inside a quoted value.
func (ws *writeState) escapeValue(v string, quote rune) string {
	var b strings.Builder
	for _, r := range v {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\r':
			b.WriteString(`\r`)
		case '\n':
			b.WriteString(`\n`)
		case '\x00':
			b.WriteString(`\0`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			if quote == 0 {
				b.WriteString(`\t`)
			} else {
				b.WriteRune(r)
			}
		case quote:
			b.WriteRune('\\')
			b.WriteRune(r)
		case ws.w.d.CommentChar:
			// Unquoted, a bare comment character would truncate the value
			// on reparse.
			if quote == 0 {
				b.WriteRune('\\')
			}
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escapeKey escapes the characters that would change the meaning of the
// key portion: the value separator, the comment character and backslash.
func (ws *writeState) escapeKey(key string) string {
	if ws.w.d.Escape == EscapeNever {
		return key
	}
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case ws.w.d.ValueSeparator, ws.w.d.CommentChar:
			b.WriteRune('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
