// Package ordered provides an insertion-ordered string-keyed map with a
// pluggable key-normalization function, used for the key/value and section
// tables of an INI document. A nil normalizer means keys are compared
// verbatim; a folding normalizer (e.g. strings.ToLower) gives
// case-insensitive lookup while the first-seen spelling of each key is kept
// for display and serialization.
package ordered

// Map is an associative container that remembers insertion order.
// It is not safe for concurrent mutation.
type Map[V any] struct {
	normalize func(string) string
	order     []string     // normalized keys, insertion order
	vals      map[string]V // normalized key -> value
	disp      map[string]string
}

// New returns an empty Map using the given key normalizer.
// A nil normalizer compares keys verbatim.
func New[V any](normalize func(string) string) *Map[V] {
	return &Map[V]{
		normalize: normalize,
		vals:      make(map[string]V),
		disp:      make(map[string]string),
	}
}

func (m *Map[V]) key(k string) string {
	if m.normalize == nil {
		return k
	}
	return m.normalize(k)
}

// Get returns the value stored under k.
func (m *Map[V]) Get(k string) (V, bool) {
	v, ok := m.vals[m.key(k)]
	return v, ok
}

// Has reports whether k is present.
func (m *Map[V]) Has(k string) bool {
	_, ok := m.vals[m.key(k)]
	return ok
}

// Put stores v under k. If k is already present its value is replaced and
// its position and first-seen spelling are kept. It reports whether an
// existing entry was replaced.
func (m *Map[V]) Put(k string, v V) bool {
	nk := m.key(k)
	_, existed := m.vals[nk]
	if !existed {
		m.order = append(m.order, nk)
		m.disp[nk] = k
	}
	m.vals[nk] = v
	return existed
}

// Delete removes k and reports whether it was present.
func (m *Map[V]) Delete(k string) bool {
	nk := m.key(k)
	if _, ok := m.vals[nk]; !ok {
		return false
	}
	delete(m.vals, nk)
	delete(m.disp, nk)
	for i, o := range m.order {
		if o == nk {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	return len(m.vals)
}

// Keys returns the first-seen spelling of every key in insertion order.
func (m *Map[V]) Keys() []string {
	keys := make([]string, len(m.order))
	for i, nk := range m.order {
		keys[i] = m.disp[nk]
	}
	return keys
}
