// Package scan implements the line-level machinery of the INI reader: the
// assembler that joins continued physical lines into logical lines, and the
// character scanner that splits one logical line into a key and its raw
// value fragments while honoring quoting, escaping and inline comments.
//
// The package is self-contained: Config mirrors the subset of the dialect
// the scanner needs, so the reader constructs one from its Dialect and this
// package never imports the root package.
package scan

// Config holds the grammar switches the assembler and scanner act on.
type Config struct {
	ValueSeparator rune
	CommentChar    rune
	MultiSeparator rune
	QuoteChars     []rune

	Comments         bool
	InlineComments   bool
	LineContinuation bool

	// EscapeOutside enables backslash escapes outside quoted text,
	// EscapeInside inside quoted text. The NEVER/ALWAYS/QUOTED-ONLY
	// escape modes map onto the two flags.
	EscapeOutside bool
	EscapeInside  bool

	// MultiSeparated makes MultiSeparator split the value portion into
	// fragments during the scan itself.
	MultiSeparated bool
}

// Fragment is one raw value fragment as it appeared on the line. Quoted
// records whether any part of the fragment was quoted, which exempts it
// from later whitespace trimming.
type Fragment struct {
	Text   string
	Quoted bool
}

// Result is the outcome of scanning one logical line.
type Result struct {
	// Key is the text before the value separator (or the whole line when
	// no separator was found), unescaped, with surrounding space removed.
	Key string
	// Fragments are the raw value fragments. Nil when HasValue is false.
	Fragments []Fragment
	// HasValue reports whether a value separator was present.
	HasValue bool
}

func (c Config) isQuote(r rune) bool {
	for _, q := range c.QuoteChars {
		if q == r {
			return true
		}
	}
	return false
}
