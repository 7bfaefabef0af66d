package prefs

import (
	"sort"

	ini "github.com/KimNorgaard/go-ini"
)

// defaulted decorates a Store with fallback entries: lookups that miss the
// wrapped store fall through to the defaults map, while every write still
// goes to the wrapped store. The defaults are never copied in.
type defaulted struct {
	ini.Store
	defaults map[string]string
}

// WithDefaults returns a read-through decorator over s. Keys absent from s
// resolve from defaults; mutations pass through to s unchanged.
func WithDefaults(s ini.Store, defaults map[string]string) ini.Store {
	return &defaulted{Store: s, defaults: defaults}
}

func (d *defaulted) Has(key string) bool {
	if d.Store.Has(key) {
		return true
	}
	_, ok := d.defaults[key]
	return ok
}

func (d *defaulted) Get(key string) (string, bool) {
	if v, ok := d.Store.Get(key); ok {
		return v, true
	}
	v, ok := d.defaults[key]
	return v, ok
}

func (d *defaulted) Values(key string) []string {
	if vs := d.Store.Values(key); vs != nil {
		return vs
	}
	if v, ok := d.defaults[key]; ok {
		return []string{v}
	}
	return nil
}

func (d *defaulted) Keys() []string {
	keys := d.Store.Keys()
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		seen[k] = true
	}
	var extra []string
	for k := range d.defaults {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}
