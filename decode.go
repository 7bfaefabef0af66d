package ini

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Unmarshaler is the interface implemented by types that can unmarshal an
// INI fragment value of themselves.
type Unmarshaler interface {
	UnmarshalINI(value string) error
}

// Unmarshal parses the INI-encoded data and stores the result in the value
// pointed to by v, which must be a non-nil pointer to a struct, a
// string-keyed map, or a *Document.
func Unmarshal(data []byte, v any, opts ...Option) error {
	return NewDecoder(bytes.NewReader(data), opts...).Decode(v)
}

// Decoder reads and decodes INI documents from an input stream.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads the INI document from its input and stores it in the value
// pointed to by v.
func (d *Decoder) Decode(v any) error {
	if d.r == nil {
		return fmt.Errorf("ini: Decode(nil reader)")
	}
	doc, err := Load(d.r, d.opts...)
	if err != nil {
		return err
	}

	if target, ok := v.(**Document); ok {
		*target = doc
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("ini: Unmarshal(non-pointer %T or nil)", v)
	}
	return decodeScope(&doc.scope, rv.Elem())
}

// decodeScope maps a scope's keys and child sections onto a struct or map
// value.
func decodeScope(s *scope, rv reflect.Value) error {
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return decodeStruct(s, rv)
	case reflect.Map:
		return decodeMap(s, rv)
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return fmt.Errorf("ini: cannot unmarshal into non-empty interface %s", rv.Type())
		}
		m := map[string]any{}
		mv := reflect.ValueOf(m)
		if err := decodeMap(s, mv); err != nil {
			return err
		}
		rv.Set(mv)
		return nil
	default:
		return fmt.Errorf("ini: cannot unmarshal section into Go value of type %s", rv.Type())
	}
}

func decodeStruct(s *scope, rv reflect.Value) error {
	fields := cachedFields(rv.Type())

	for _, key := range s.Keys() {
		f := findField(fields, key)
		if f == nil {
			continue
		}
		fv := rv.FieldByIndex(f.idx)
		if !fv.IsValid() || !fv.CanSet() {
			continue
		}
		if err := decodeValues(s.Values(key), fv); err != nil {
			return err
		}
	}

	for _, name := range s.SectionNames() {
		f := findField(fields, name)
		if f == nil {
			continue
		}
		fv := rv.FieldByIndex(f.idx)
		if !fv.IsValid() || !fv.CanSet() {
			continue
		}
		sections := s.Sections(name)
		if fv.Kind() == reflect.Slice {
			// Same-named sibling sections map onto a slice element each.
			out := reflect.MakeSlice(fv.Type(), len(sections), len(sections))
			for i, sec := range sections {
				if err := decodeScope(&sec.scope, out.Index(i)); err != nil {
					return err
				}
			}
			fv.Set(out)
			continue
		}
		if err := decodeScope(&sections[0].scope, fv); err != nil {
			return err
		}
	}
	return nil
}

func decodeMap(s *scope, rv reflect.Value) error {
	t := rv.Type()
	if t.Key().Kind() != reflect.String {
		return fmt.Errorf("ini: cannot unmarshal into map with non-string key type %s", t.Key())
	}
	if rv.IsNil() {
		rv.Set(reflect.MakeMap(t))
	}
	elem := t.Elem()

	for _, key := range s.Keys() {
		values := s.Values(key)
		var ev reflect.Value
		if elem.Kind() == reflect.Interface && elem.NumMethod() == 0 {
			// Generic target: one value stays a string, several become a
			// []string, none become an empty string.
			switch len(values) {
			case 0:
				ev = reflect.ValueOf("")
			case 1:
				ev = reflect.ValueOf(values[0])
			default:
				ev = reflect.ValueOf(append([]string(nil), values...))
			}
		} else {
			ev = reflect.New(elem).Elem()
			if err := decodeValues(values, ev); err != nil {
				return err
			}
		}
		rv.SetMapIndex(reflect.ValueOf(key), ev)
	}

	for _, name := range s.SectionNames() {
		sec := s.Section(name)
		ev := reflect.New(elem).Elem()
		if err := decodeScope(&sec.scope, ev); err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(name), ev)
	}
	return nil
}

// decodeValues maps a key's value array onto a field: slices get one
// element per value, scalars get the first value.
func decodeValues(values []string, rv reflect.Value) error {
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	if u, ok := unmarshalerOf(rv); ok {
		first := ""
		if len(values) > 0 {
			first = values[0]
		}
		if err := u.UnmarshalINI(first); err != nil {
			return &UnmarshalerError{Type: rv.Type(), Err: err}
		}
		return nil
	}

	if rv.Kind() == reflect.Slice {
		out := reflect.MakeSlice(rv.Type(), len(values), len(values))
		for i, v := range values {
			if err := decodeScalar(v, out.Index(i)); err != nil {
				return err
			}
		}
		rv.Set(out)
		return nil
	}

	if len(values) == 0 {
		return nil
	}
	return decodeScalar(values[0], rv)
}

func decodeScalar(v string, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("ini: cannot unmarshal %q into %s: %w", v, rv.Type(), err)
		}
		if rv.OverflowInt(n) {
			return fmt.Errorf("ini: value %d overflows %s", n, rv.Type())
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("ini: cannot unmarshal %q into %s: %w", v, rv.Type(), err)
		}
		if rv.OverflowUint(n) {
			return fmt.Errorf("ini: value %d overflows %s", n, rv.Type())
		}
		rv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("ini: cannot unmarshal %q into %s: %w", v, rv.Type(), err)
		}
		rv.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ini: cannot unmarshal %q into %s: %w", v, rv.Type(), err)
		}
		rv.SetBool(b)
	case reflect.Interface:
		if rv.NumMethod() == 0 {
			rv.Set(reflect.ValueOf(v))
			return nil
		}
		return fmt.Errorf("ini: cannot unmarshal into non-empty interface %s", rv.Type())
	default:
		return fmt.Errorf("ini: cannot unmarshal value into Go value of type %s", rv.Type())
	}
	return nil
}

func unmarshalerOf(rv reflect.Value) (Unmarshaler, bool) {
	if !rv.CanAddr() {
		return nil, false
	}
	pv := rv.Addr()
	if !pv.CanInterface() {
		return nil, false
	}
	u, ok := pv.Interface().(Unmarshaler)
	return u, ok
}

// A field represents a single mappable field in a struct.
type field struct {
	idx []int
}

// fieldCache caches struct field lookup tables keyed by type.
var fieldCache sync.Map // map[reflect.Type]map[string]field

// cachedFields returns a map of field and tag names to field properties
// for the given type, with lower-cased entries for the case-insensitive
// fallback. The result is cached to avoid repeated reflection work.
func cachedFields(t reflect.Type) map[string]field {
	if f, ok := fieldCache.Load(t); ok {
		if fields, ok := f.(map[string]field); ok {
			return fields
		}
	}

	fields := make(map[string]field)
	var walk func(t reflect.Type, idx []int)
	walk = func(t reflect.Type, idx []int) {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if sf.Anonymous {
				ft := sf.Type
				if ft.Kind() == reflect.Pointer {
					ft = ft.Elem()
				}
				if ft.Kind() == reflect.Struct {
					walk(ft, append(idx, i))
					continue
				}
			}
			if !sf.IsExported() {
				continue
			}

			tag := sf.Tag.Get("ini")
			if tag == "-" {
				continue
			}

			f := field{idx: append(append([]int(nil), idx...), i)}
			tagName := strings.Split(tag, ",")[0]

			if tagName != "" {
				fields[tagName] = f
			}
			fields[sf.Name] = f

			// Lower-cased entries serve the case-insensitive fallback but
			// never overwrite a case-sensitive match.
			if tagName != "" {
				if lower := strings.ToLower(tagName); lower != tagName {
					if _, ok := fields[lower]; !ok {
						fields[lower] = f
					}
				}
			}
			if lower := strings.ToLower(sf.Name); lower != sf.Name {
				if _, ok := fields[lower]; !ok {
					fields[lower] = f
				}
			}
		}
	}
	walk(t, nil)

	fieldCache.Store(t, fields)
	return fields
}

// findField looks a key up in a struct's cached fields, first
// case-sensitively, then case-insensitively.
func findField(fields map[string]field, key string) *field {
	if f, ok := fields[key]; ok {
		return &f
	}
	if f, ok := fields[strings.ToLower(key)]; ok {
		return &f
	}
	return nil
}
