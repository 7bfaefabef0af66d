/*
Package ini parses and serializes documents in an extended INI dialect
into and from a tree of nested sections and multi-valued keys.

The grammar is configurable through a Dialect built from functional
options: separators, quote characters, comment handling, escape mode,
multi-value encoding, case sensitivity, and the policy applied when a key
or section name recurs.

Reading a document:

	doc, err := ini.LoadString(`
	; server settings
	[server]
	host = example.org
	port = 8080
	`)
	if err != nil {
		// handle error
	}
	host, _ := doc.Section("server").Get("host")

Duplicate keys and sections are resolved by a five-way action (Abort,
Ignore, Replace, Merge, Append), configured independently for keys and
sections:

	doc, err := ini.LoadString(src, ini.DuplicateKey(ini.Replace))

Writing applies the same dialect in reverse:

	err = ini.Write(os.Stdout, doc, ini.Quoting(ini.QuoteAuto))

For struct-oriented use the package mirrors encoding/json: Marshal and
Unmarshal convert between Go values and INI text using `ini:"name"`
struct tags, with nested structs and maps becoming sections and slices
becoming multi-valued keys.

Retrieved values may contain ${name} placeholders; the Interpolator
substitutes them through pluggable resolvers (maps, the process
environment, sibling keys, or expression evaluation).

The model is not safe for unsynchronized concurrent mutation; a single
writer at a time is assumed, read-only sharing is fine.
*/
package ini
