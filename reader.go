package ini

import (
	"fmt"
	"io"
	"strings"

	"github.com/KimNorgaard/go-ini/internal/scan"
)

// Reader builds a Document from INI text. It drives the line assembler and
// scanner over the input in a single forward pass and resolves duplicate
// keys and sections according to the dialect's actions.
type Reader struct {
	d Dialect
}

// NewReader returns a Reader for the given dialect.
func NewReader(d Dialect) *Reader {
	return &Reader{d: d}
}

// scanConfig translates the dialect into the scanner's grammar switches.
func (r *Reader) scanConfig() scan.Config {
	return scan.Config{
		ValueSeparator:   r.d.ValueSeparator,
		CommentChar:      r.d.CommentChar,
		MultiSeparator:   r.d.MultiSeparator,
		QuoteChars:       r.d.QuoteChars,
		Comments:         r.d.Comments,
		InlineComments:   r.d.InlineComments,
		LineContinuation: r.d.LineContinuation,
		EscapeOutside:    r.d.Escape == EscapeAlways,
		EscapeInside:     r.d.Escape == EscapeAlways || r.d.Escape == EscapeQuotedOnly,
		MultiSeparated:   r.d.Multi == MultiSeparated,
	}
}

// Read parses src to completion, or to the first parse error when errors
// are not suppressed. Stream failures are reported as *IOError.
func (r *Reader) Read(src io.Reader) (*Document, error) {
	doc := newDocument(r.d)
	asm := scan.NewAssembler(src, r.d.LineContinuation)
	sc := scan.NewScanner(r.scanConfig())

	var cur *Section // nil means the root/global scope

	for {
		text, line, ok := asm.Next()
		if !ok {
			break
		}
		res, ok := sc.ScanLine(text)
		if !ok {
			continue
		}

		if strings.HasPrefix(res.Key, "[") {
			sec, err := r.header(doc, cur, res, line)
			if err != nil {
				if !r.d.SuppressErrors {
					return nil, err
				}
				if r.d.RetryHeaderAsKey {
					// Errors are already suppressed here; a failing
					// retry leaves the line inert.
					_ = r.keyValue(doc, cur, res, line)
				}
				continue
			}
			cur = sec
			continue
		}

		if err := r.keyValue(doc, cur, res, line); err != nil {
			if !r.d.SuppressErrors {
				return nil, err
			}
		}
	}
	if err := asm.Err(); err != nil {
		return nil, &IOError{Op: "read", Err: err}
	}
	return doc, nil
}

// header resolves a section-header line and returns the section subsequent
// lines should target. It returns cur unchanged under the Ignore action.
func (r *Reader) header(doc *Document, cur *Section, res scan.Result, line int) (*Section, error) {
	name, err := headerName(res, line)
	if err != nil {
		return nil, err
	}

	var path []string
	if r.d.NestedSections {
		path = strings.Split(name, string(r.d.PathSeparator))
	} else {
		path = []string{name}
	}
	for _, seg := range path {
		if strings.TrimSpace(seg) == "" {
			return nil, &ParseError{Message: fmt.Sprintf("empty segment in section path %q", name), Line: line}
		}
	}

	// Intermediate segments are created on demand and are never subject
	// to the duplicate-section action.
	parent := &doc.scope
	for _, seg := range path[:len(path)-1] {
		sec := parent.Section(seg)
		if sec == nil {
			sec = parent.NewSection(seg)
		}
		parent = &sec.scope
	}

	final := path[len(path)-1]
	existing := parent.Sections(final)
	if len(existing) == 0 {
		return parent.NewSection(final), nil
	}

	switch r.d.DuplicateSection {
	case Abort:
		return nil, &ParseError{Message: fmt.Sprintf("duplicate section %q", name), Line: line}
	case Ignore:
		return cur, nil
	case Replace:
		parent.RemoveSection(final)
		return parent.NewSection(final), nil
	case Merge:
		first := existing[0]
		for _, sib := range existing[1:] {
			mergeInto(first, sib)
		}
		trimSiblings(parent, final)
		return first, nil
	default: // Append
		return parent.NewSection(final), nil
	}
}

// mergeInto folds src's value table into dst with first-seen precedence
// for conflicting keys, then folds child sections the same way.
func mergeInto(dst, src *Section) {
	for _, k := range src.Keys() {
		if !dst.Has(k) {
			dst.Set(k, src.Values(k)...)
		}
	}
	for _, name := range src.SectionNames() {
		for _, child := range src.Sections(name) {
			if existing := dst.Section(name); existing != nil {
				mergeInto(existing, child)
			} else {
				adopted := dst.NewSection(name)
				mergeInto(adopted, child)
			}
		}
	}
}

// trimSiblings reduces the sibling list under name to its first entry.
func trimSiblings(parent *scope, name string) {
	secs := parent.Sections(name)
	if len(secs) <= 1 {
		return
	}
	first := secs[0]
	parent.RemoveSection(name)
	parent.childs.Put(name, []*Section{first})
}

// headerName validates the bracket shape of a header line and returns the
// inner path text.
func headerName(res scan.Result, line int) (string, error) {
	if res.HasValue {
		return "", &ParseError{Message: fmt.Sprintf("section header %q followed by a value", res.Key), Line: line}
	}
	k := res.Key
	end := strings.IndexRune(k, ']')
	switch {
	case end < 0:
		return "", &ParseError{Message: fmt.Sprintf("missing ']' in section header %q", k), Line: line}
	case end != len(k)-1:
		return "", &ParseError{Message: fmt.Sprintf("trailing content after ']' in section header %q", k), Line: line}
	}
	name := strings.TrimSpace(k[1:end])
	if name == "" {
		return "", &ParseError{Message: "empty section name", Line: line}
	}
	return name, nil
}

// keyValue stores one key line into the current scope.
func (r *Reader) keyValue(doc *Document, cur *Section, res scan.Result, line int) error {
	var target *scope
	if cur != nil {
		target = &cur.scope
	} else {
		if !r.d.AllowGlobal {
			return &ParseError{Message: fmt.Sprintf("key %q outside any section", res.Key), Line: line}
		}
		target = &doc.scope
	}

	values, err := r.fragments(res, line)
	if err != nil {
		return err
	}

	if !target.Has(res.Key) {
		target.Set(res.Key, values...)
		return nil
	}

	switch r.d.DuplicateKey {
	case Abort:
		return &ParseError{Message: fmt.Sprintf("duplicate key %q", res.Key), Line: line}
	case Ignore:
		return nil
	case Replace:
		target.Set(res.Key, values...)
	default: // Merge and Append both accumulate values
		for _, v := range values {
			target.Add(res.Key, v)
		}
	}
	return nil
}

// fragments applies trimming and the empty-value rule to the scanned
// fragments, yielding the value array to store. A key with no value (no
// separator, or a single unquoted empty fragment) becomes a zero-length
// array when empty values are permitted.
func (r *Reader) fragments(res scan.Result, line int) ([]string, error) {
	if !res.HasValue {
		if !r.d.AllowEmptyValues {
			return nil, &ParseError{Message: fmt.Sprintf("key %q has no value", res.Key), Line: line}
		}
		return []string{}, nil
	}

	values := make([]string, 0, len(res.Fragments))
	for _, f := range res.Fragments {
		text := f.Text
		if r.d.TrimValues && !f.Quoted {
			text = strings.TrimSpace(text)
		}
		values = append(values, text)
	}

	if len(values) == 1 && values[0] == "" && !res.Fragments[0].Quoted {
		if !r.d.AllowEmptyValues {
			return nil, &ParseError{Message: fmt.Sprintf("empty value for key %q", res.Key), Line: line}
		}
		return []string{}, nil
	}
	return values, nil
}
