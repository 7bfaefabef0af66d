package ini

// Action selects what happens when a key or section name recurs within the
// same scope during parsing.
type Action int

const (
	// Abort fails the parse with a policy-violation error.
	Abort Action = iota
	// Ignore discards the new occurrence and keeps the first-seen one.
	Ignore
	// Replace discards the existing occurrence(s) in favor of the new one.
	Replace
	// Merge folds the new occurrence into the existing one. For sections
	// this collapses same-named siblings into the first, with first-seen
	// precedence for conflicting keys. For keys Merge appends values,
	// identically to Append.
	Merge
	// Append keeps both: values accumulate in encounter order, sections
	// become same-named siblings distinguishable by declaration order.
	Append
)

func (a Action) String() string {
	switch a {
	case Abort:
		return "abort"
	case Ignore:
		return "ignore"
	case Replace:
		return "replace"
	case Merge:
		return "merge"
	case Append:
		return "append"
	}
	return "unknown"
}

// EscapeMode controls where backslash escape sequences are recognized on
// read and applied on write.
type EscapeMode int

const (
	EscapeAlways EscapeMode = iota
	EscapeNever
	EscapeQuotedOnly
)

// MultiMode controls how multiple values for one key are encoded in text.
type MultiMode int

const (
	// MultiRepeatedKey writes one "key = value" line per value.
	MultiRepeatedKey MultiMode = iota
	// MultiSeparated joins values with MultiSeparator on a single line,
	// and splits on it during scanning.
	MultiSeparated
	// MultiOff disables multi-value encoding; values are still stored as
	// arrays in the model and written as repeated lines.
	MultiOff
)

// QuoteMode controls value quoting on write.
type QuoteMode int

const (
	// QuoteNever relies on escaping alone.
	QuoteNever QuoteMode = iota
	// QuoteAlways wraps every value in the first configured quote character.
	QuoteAlways
	// QuoteAuto wraps only values containing whitespace or the comment
	// character.
	QuoteAuto
)

// Dialect is the immutable record of grammar choices shared by the reader
// and the writer. Construct one with NewDialect and treat it as read-only
// afterwards; reader and writer each hold their own copy.
type Dialect struct {
	PathSeparator  rune
	ValueSeparator rune
	CommentChar    rune
	MultiSeparator rune
	// QuoteChars is the ordered quote character set. An empty set is
	// legal and disables quoting entirely.
	QuoteChars []rune

	Escape EscapeMode
	Multi  MultiMode
	Quote  QuoteMode

	DuplicateKey     Action
	DuplicateSection Action

	Comments         bool
	InlineComments   bool
	LineContinuation bool
	// TrimValues makes whitespace around the value separator and between
	// separated values insignificant. Quoted fragments are never trimmed.
	TrimValues       bool
	AllowEmptyValues bool
	AllowGlobal      bool
	NestedSections   bool

	CaseSensitiveKeys     bool
	CaseSensitiveSections bool

	// SuppressErrors turns parse errors into inert lines: the offending
	// line is skipped and parsing continues.
	SuppressErrors bool
	// RetryHeaderAsKey controls what happens to a line that looks like a
	// section header but fails the closing-bracket check while errors are
	// suppressed: false drops the line, true re-interprets it as a
	// literal key.
	RetryHeaderAsKey bool
	// SeparatorOnEmpty writes "key =" rather than a bare "key" for keys
	// with no value.
	SeparatorOnEmpty bool
}

// DefaultDialect returns the default grammar: '.'-separated section paths,
// '=' value separator, ';' comments, '"' and '\'' quoting, escapes always
// on, repeated-key multi-values, and Append for duplicate keys and
// sections.
func DefaultDialect() Dialect {
	return Dialect{
		PathSeparator:    '.',
		ValueSeparator:   '=',
		CommentChar:      ';',
		MultiSeparator:   ',',
		QuoteChars:       []rune{'"', '\''},
		Escape:           EscapeAlways,
		Multi:            MultiRepeatedKey,
		Quote:            QuoteNever,
		DuplicateKey:     Append,
		DuplicateSection: Append,
		Comments:         true,
		InlineComments:   true,
		LineContinuation: true,
		TrimValues:       true,
		AllowEmptyValues: true,
		AllowGlobal:      true,
		NestedSections:   true,

		CaseSensitiveKeys:     true,
		CaseSensitiveSections: true,

		SeparatorOnEmpty: true,
	}
}

// NewDialect returns the default dialect with the given options applied.
func NewDialect(opts ...Option) (Dialect, error) {
	d := DefaultDialect()
	for _, opt := range opts {
		if err := opt(&d); err != nil {
			return Dialect{}, err
		}
	}
	return d, nil
}
