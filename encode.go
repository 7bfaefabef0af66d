package ini

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Marshaler is the interface implemented by types that can marshal
// themselves into an INI fragment value.
type Marshaler interface {
	MarshalINI() (string, error)
}

// Marshal returns the INI encoding of v. v must be a struct, a map with
// string keys, or a *Document; nested structs and maps become sections,
// slices become multi-valued keys. Struct fields are customized with
// `ini:"name,omitempty"` tags.
func Marshal(v any, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	e := NewEncoder(&buf, opts...)
	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encoder writes INI documents to an output stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes the INI encoding of v to the stream.
func (e *Encoder) Encode(v any) error {
	d, err := NewDialect(e.opts...)
	if err != nil {
		return err
	}

	doc, ok := v.(*Document)
	if !ok {
		doc = newDocument(d)
		if err := encodeScope(&doc.scope, reflect.ValueOf(v)); err != nil {
			return err
		}
	}
	return NewWriter(d).Write(e.w, doc)
}

// encodeScope populates a scope from a struct or string-keyed map value.
func encodeScope(s *scope, v reflect.Value) error {
	v = indirect(v)
	if !v.IsValid() {
		return nil
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			name, fopts := parseTag(field.Tag.Get("ini"))
			if name == "-" {
				continue
			}
			fv := v.Field(i)
			if fopts["omitempty"] && isEmptyValue(fv) {
				continue
			}
			if name == "" {
				name = field.Name
			}
			if err := encodeEntry(s, name, fv); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("ini: map key type must be a string, got %s", v.Type().Key())
		}
		// Map iteration order is random; sort for deterministic output.
		keys := v.MapKeys()
		sortStringValues(keys)
		for _, key := range keys {
			if err := encodeEntry(s, key.String(), v.MapIndex(key)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("ini: cannot marshal %s as a document", v.Type())
	}
}

// encodeEntry stores one struct field or map entry into the scope, either
// as a key (scalars and scalar slices) or as a child section (structs and
// maps).
func encodeEntry(s *scope, name string, v reflect.Value) error {
	v = indirect(v)
	if !v.IsValid() {
		return nil
	}

	if m, ok := marshalerOf(v); ok {
		text, err := m.MarshalINI()
		if err != nil {
			return &MarshalerError{Type: v.Type(), Err: err}
		}
		s.Set(name, text)
		return nil
	}

	switch v.Kind() {
	case reflect.Struct:
		sec := s.NewSection(name)
		return encodeScope(&sec.scope, v)
	case reflect.Map:
		sec := s.NewSection(name)
		return encodeScope(&sec.scope, v)
	case reflect.Slice, reflect.Array:
		values := make([]string, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			ev := indirect(v.Index(i))
			if !ev.IsValid() {
				continue
			}
			text, err := formatScalar(ev)
			if err != nil {
				return err
			}
			values = append(values, text)
		}
		s.Set(name, values...)
		return nil
	default:
		text, err := formatScalar(v)
		if err != nil {
			return err
		}
		s.Set(name, text)
		return nil
	}
}

func formatScalar(v reflect.Value) (string, error) {
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	default:
		return "", fmt.Errorf("ini: unsupported type for marshaling: %s", v.Type())
	}
}

func marshalerOf(v reflect.Value) (Marshaler, bool) {
	if v.CanInterface() {
		if m, ok := v.Interface().(Marshaler); ok {
			return m, true
		}
	}
	if v.Kind() != reflect.Pointer && v.CanAddr() && v.Addr().CanInterface() {
		if m, ok := v.Addr().Interface().(Marshaler); ok {
			return m, true
		}
	}
	return nil, false
}

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// parseTag splits an ini struct tag into its name and options.
func parseTag(tag string) (string, map[string]bool) {
	parts := strings.Split(tag, ",")
	name := parts[0]
	options := make(map[string]bool)
	for _, part := range parts[1:] {
		options[strings.TrimSpace(part)] = true
	}
	return name, options
}

// isEmptyValue reports whether the value v is empty.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}

func sortStringValues(keys []reflect.Value) {
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
}
