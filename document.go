package ini

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KimNorgaard/go-ini/internal/ordered"
)

// Store is the capability interface shared by Document and Section: a
// key/value table plus a table of named child sections. The schema and
// preferences layers decorate this interface rather than the concrete
// types.
type Store interface {
	// Keys returns all keys in insertion order.
	Keys() []string
	// Has reports whether key is present, even with no values.
	Has(key string) bool
	// Get returns the first value of key. ok is false when the key is
	// absent or has no values.
	Get(key string) (value string, ok bool)
	// Values returns the value array of key; nil when the key is absent.
	// A present key always has a non-nil (possibly empty) array.
	Values(key string) []string
	// Set replaces the value array of key. Set with no values records a
	// key with no value.
	Set(key string, values ...string)
	// Add appends one value to key, creating it as needed.
	Add(key string, value string)
	// Remove deletes key and reports whether it was present.
	Remove(key string) bool

	// SectionNames returns the distinct child section names in insertion
	// order.
	SectionNames() []string
	// Section returns the first child section with the given name, or nil.
	Section(name string) *Section
	// Sections returns all same-named child sections in declaration order.
	Sections(name string) []*Section
	// NewSection appends a new, empty child section under name and
	// returns it. Same-named siblings are legal.
	NewSection(name string) *Section
	// RemoveSection deletes all child sections under name.
	RemoveSection(name string) bool
}

// scope is the table pair shared by Document and Section.
type scope struct {
	doc    *Document
	owner  *Section // nil when the scope is the document root
	vals   *ordered.Map[[]string]
	childs *ordered.Map[[]*Section]
}

// Document is the root of an INI document: the global key/value table plus
// the top-level sections. It owns its whole section tree.
type Document struct {
	scope
	keyFold func(string) string
	secFold func(string) string
}

// Section is a named node of the document tree. The same name may repeat
// under one parent; siblings are distinguished by declaration order.
type Section struct {
	scope
	name   string
	parent *Section // nil for top-level sections
}

// NewDocument returns an empty document using the given dialect options
// (only the case-sensitivity options affect the model).
func NewDocument(opts ...Option) (*Document, error) {
	d, err := NewDialect(opts...)
	if err != nil {
		return nil, err
	}
	return newDocument(d), nil
}

func newDocument(d Dialect) *Document {
	doc := &Document{}
	if !d.CaseSensitiveKeys {
		doc.keyFold = strings.ToLower
	}
	if !d.CaseSensitiveSections {
		doc.secFold = strings.ToLower
	}
	doc.scope = newScope(doc, nil)
	return doc
}

func newScope(doc *Document, owner *Section) scope {
	return scope{
		doc:    doc,
		owner:  owner,
		vals:   ordered.New[[]string](doc.keyFold),
		childs: ordered.New[[]*Section](doc.secFold),
	}
}

// Name returns the section's own name.
func (s *Section) Name() string { return s.name }

// Parent returns the enclosing section, or nil for a top-level section.
func (s *Section) Parent() *Section { return s.parent }

// Document returns the document owning this section.
func (s *Section) Document() *Document { return s.doc }

// Path returns the sequence of names from the document root to this
// section.
func (s *Section) Path() []string {
	var path []string
	for n := s; n != nil; n = n.parent {
		path = append(path, n.name)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func (s *scope) Keys() []string { return s.vals.Keys() }

func (s *scope) Has(key string) bool { return s.vals.Has(key) }

func (s *scope) Get(key string) (string, bool) {
	vs, ok := s.vals.Get(key)
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func (s *scope) Values(key string) []string {
	vs, _ := s.vals.Get(key)
	return vs
}

func (s *scope) Set(key string, values ...string) {
	if values == nil {
		values = []string{}
	}
	s.vals.Put(key, values)
}

func (s *scope) Add(key string, value string) {
	vs, _ := s.vals.Get(key)
	s.vals.Put(key, append(vs, value))
}

func (s *scope) Remove(key string) bool { return s.vals.Delete(key) }

func (s *scope) SectionNames() []string { return s.childs.Keys() }

func (s *scope) Section(name string) *Section {
	secs, _ := s.childs.Get(name)
	if len(secs) == 0 {
		return nil
	}
	return secs[0]
}

func (s *scope) Sections(name string) []*Section {
	secs, _ := s.childs.Get(name)
	return secs
}

func (s *scope) NewSection(name string) *Section {
	sec := &Section{name: name, parent: s.owner}
	sec.scope = newScope(s.doc, sec)
	secs, _ := s.childs.Get(name)
	s.childs.Put(name, append(secs, sec))
	return sec
}

func (s *scope) RemoveSection(name string) bool { return s.childs.Delete(name) }

// Lookup resolves a path of section names from this scope, returning the
// first match at each step, or nil if any segment is missing.
func (s *scope) Lookup(path ...string) *Section {
	cur := s
	var sec *Section
	for _, name := range path {
		sec = cur.Section(name)
		if sec == nil {
			return nil
		}
		cur = &sec.scope
	}
	return sec
}

// Typed accessors. Missing keys and malformed values yield argument
// errors, never parse errors.

// Int returns the first value of key parsed as a base-10 integer.
func (s *scope) Int(key string) (int64, error) {
	v, ok := s.Get(key)
	if !ok {
		return 0, fmt.Errorf("ini: no value for key %q", key)
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("ini: key %q: %w", key, err)
	}
	return n, nil
}

// Float returns the first value of key parsed as a float.
func (s *scope) Float(key string) (float64, error) {
	v, ok := s.Get(key)
	if !ok {
		return 0, fmt.Errorf("ini: no value for key %q", key)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("ini: key %q: %w", key, err)
	}
	return f, nil
}

// Bool returns the first value of key parsed with strconv.ParseBool.
func (s *scope) Bool(key string) (bool, error) {
	v, ok := s.Get(key)
	if !ok {
		return false, fmt.Errorf("ini: no value for key %q", key)
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("ini: key %q: %w", key, err)
	}
	return b, nil
}

// Duration returns the first value of key parsed with time.ParseDuration.
func (s *scope) Duration(key string) (time.Duration, error) {
	v, ok := s.Get(key)
	if !ok {
		return 0, fmt.Errorf("ini: no value for key %q", key)
	}
	dur, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("ini: key %q: %w", key, err)
	}
	return dur, nil
}

// StringOr returns the first value of key, or def when absent.
func (s *scope) StringOr(key, def string) string {
	if v, ok := s.Get(key); ok {
		return v
	}
	return def
}
