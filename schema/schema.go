// Package schema validates the shape of an INI document against a schema
// that is itself written as an INI document. Each schema section names a
// section path in the target document; its keys name the keys that must or
// may appear there, with optional per-key pattern rules:
//
//	[server]
//	@required = true
//	@max = 1
//	port = required
//	port.pattern = ^[0-9]+$
//	host = optional
//
// Directives start with '@': @required marks the section itself mandatory,
// @min and @max bound how many same-named sibling instances may occur.
// A key set to "required" must be present with at least one value in every
// matching section; "<key>.pattern" constrains every value of <key> by a
// regular expression.
package schema

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	ini "github.com/KimNorgaard/go-ini"
)

// Schema is a parsed schema document.
type Schema struct {
	doc *ini.Document
}

// Violation describes one way a document failed validation.
type Violation struct {
	Path    string // section path, "" for the global scope
	Key     string // offending key, "" for section-level violations
	Message string
}

func (v Violation) String() string {
	where := v.Path
	if where == "" {
		where = "(root)"
	}
	if v.Key != "" {
		where += ": " + v.Key
	}
	return where + ": " + v.Message
}

// Parse reads a schema from r.
func Parse(r io.Reader, opts ...ini.Option) (*Schema, error) {
	doc, err := ini.Load(r, opts...)
	if err != nil {
		return nil, err
	}
	return &Schema{doc: doc}, nil
}

// ParseString reads a schema from s.
func ParseString(s string, opts ...ini.Option) (*Schema, error) {
	return Parse(strings.NewReader(s), opts...)
}

// Validate checks doc against the schema and returns all violations found.
// A nil or empty result means the document conforms.
func (s *Schema) Validate(doc *ini.Document) []Violation {
	var out []Violation
	out = append(out, validateKeys(s.doc, doc, "")...)
	out = append(out, validateSections(s.doc, doc, nil)...)
	return out
}

// validateSections walks one level of the schema tree against the
// corresponding document scope.
func validateSections(schemaScope, docScope ini.Store, path []string) []Violation {
	var out []Violation
	for _, name := range schemaScope.SectionNames() {
		rules := schemaScope.Section(name)
		childPath := append(append([]string(nil), path...), name)
		pathStr := strings.Join(childPath, ".")

		var instances []*ini.Section
		if docScope != nil {
			instances = docScope.Sections(name)
		}

		if required, _ := rules.Bool("@required"); required && len(instances) == 0 {
			out = append(out, Violation{Path: pathStr, Message: "required section is missing"})
		}
		if min, err := rules.Int("@min"); err == nil && int64(len(instances)) < min {
			out = append(out, Violation{Path: pathStr, Message: fmt.Sprintf("section occurs %d times, at least %d required", len(instances), min)})
		}
		if max, err := rules.Int("@max"); err == nil && int64(len(instances)) > max {
			out = append(out, Violation{Path: pathStr, Message: fmt.Sprintf("section occurs %d times, at most %d allowed", len(instances), max)})
		}

		for _, inst := range instances {
			out = append(out, validateKeys(rules, inst, pathStr)...)
			out = append(out, validateSections(rules, inst, childPath)...)
		}
		if len(instances) == 0 {
			// Still descend so missing required subsections are reported.
			out = append(out, validateSections(rules, nil, childPath)...)
		}
	}
	return out
}

// validateKeys checks one scope's keys against the rule entries of the
// matching schema scope.
func validateKeys(rules, target ini.Store, pathStr string) []Violation {
	var out []Violation
	for _, key := range rules.Keys() {
		if strings.HasPrefix(key, "@") || strings.HasSuffix(key, ".pattern") {
			continue
		}
		rule, _ := rules.Get(key)
		required := strings.EqualFold(rule, "required")

		var values []string
		if target != nil {
			values = target.Values(key)
		}
		if required && len(values) == 0 {
			out = append(out, Violation{Path: pathStr, Key: key, Message: "required key is missing"})
			continue
		}

		pattern, ok := rules.Get(key + ".pattern")
		if !ok || len(values) == 0 {
			continue
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			out = append(out, Violation{Path: pathStr, Key: key, Message: fmt.Sprintf("invalid pattern %q: %v", pattern, err)})
			continue
		}
		for _, v := range values {
			if !re.MatchString(v) {
				out = append(out, Violation{Path: pathStr, Key: key, Message: fmt.Sprintf("value %q does not match %q", v, pattern)})
			}
		}
	}
	return out
}
