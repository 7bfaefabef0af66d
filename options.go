package ini

import "fmt"

// Option configures a Dialect.
type Option func(*Dialect) error

// PathSeparator sets the section-path separator character.
func PathSeparator(r rune) Option {
	return func(d *Dialect) error {
		if r == 0 {
			return fmt.Errorf("ini: path separator must not be NUL")
		}
		d.PathSeparator = r
		return nil
	}
}

// ValueSeparator sets the key/value separator character.
func ValueSeparator(r rune) Option {
	return func(d *Dialect) error {
		if r == 0 {
			return fmt.Errorf("ini: value separator must not be NUL")
		}
		d.ValueSeparator = r
		return nil
	}
}

// CommentChar sets the comment character.
func CommentChar(r rune) Option {
	return func(d *Dialect) error {
		d.CommentChar = r
		return nil
	}
}

// MultiSeparator sets the separator used by MultiSeparated mode.
func MultiSeparator(r rune) Option {
	return func(d *Dialect) error {
		if r == 0 {
			return fmt.Errorf("ini: multi-value separator must not be NUL")
		}
		d.MultiSeparator = r
		return nil
	}
}

// QuoteChars sets the ordered quote character set. An empty set disables
// quoting.
func QuoteChars(chars ...rune) Option {
	return func(d *Dialect) error {
		d.QuoteChars = append([]rune(nil), chars...)
		return nil
	}
}

// WithoutQuoting disables string quoting entirely.
func WithoutQuoting() Option {
	return func(d *Dialect) error {
		d.QuoteChars = nil
		return nil
	}
}

// Escaping sets the escape mode.
func Escaping(m EscapeMode) Option {
	return func(d *Dialect) error {
		d.Escape = m
		return nil
	}
}

// MultiValues sets the multi-value mode.
func MultiValues(m MultiMode) Option {
	return func(d *Dialect) error {
		d.Multi = m
		return nil
	}
}

// Quoting sets the quoting mode used on write.
func Quoting(m QuoteMode) Option {
	return func(d *Dialect) error {
		d.Quote = m
		return nil
	}
}

// DuplicateKey sets the action taken when a key recurs within a scope.
func DuplicateKey(a Action) Option {
	return func(d *Dialect) error {
		d.DuplicateKey = a
		return nil
	}
}

// DuplicateSection sets the action taken when a section name recurs within
// a scope.
func DuplicateSection(a Action) Option {
	return func(d *Dialect) error {
		d.DuplicateSection = a
		return nil
	}
}

// Comments enables or disables comment lines.
func Comments(on bool) Option {
	return func(d *Dialect) error {
		d.Comments = on
		return nil
	}
}

// InlineComments enables or disables comments after a key or value.
func InlineComments(on bool) Option {
	return func(d *Dialect) error {
		d.InlineComments = on
		return nil
	}
}

// LineContinuation enables or disables trailing-backslash line joining.
func LineContinuation(on bool) Option {
	return func(d *Dialect) error {
		d.LineContinuation = on
		return nil
	}
}

// TrimValues controls whether space around separators is significant.
func TrimValues(on bool) Option {
	return func(d *Dialect) error {
		d.TrimValues = on
		return nil
	}
}

// AllowEmptyValues permits keys with no value.
func AllowEmptyValues(on bool) Option {
	return func(d *Dialect) error {
		d.AllowEmptyValues = on
		return nil
	}
}

// AllowGlobal permits key/value lines before any section header.
func AllowGlobal(on bool) Option {
	return func(d *Dialect) error {
		d.AllowGlobal = on
		return nil
	}
}

// NestedSections controls whether section headers are split on the path
// separator into nested sections.
func NestedSections(on bool) Option {
	return func(d *Dialect) error {
		d.NestedSections = on
		return nil
	}
}

// CaseSensitiveKeys controls case sensitivity of key lookup.
func CaseSensitiveKeys(on bool) Option {
	return func(d *Dialect) error {
		d.CaseSensitiveKeys = on
		return nil
	}
}

// CaseSensitiveSections controls case sensitivity of section lookup.
func CaseSensitiveSections(on bool) Option {
	return func(d *Dialect) error {
		d.CaseSensitiveSections = on
		return nil
	}
}

// SuppressErrors makes the reader skip offending lines instead of failing.
func SuppressErrors(on bool) Option {
	return func(d *Dialect) error {
		d.SuppressErrors = on
		return nil
	}
}

// RetryHeaderAsKey makes a malformed section header be re-read as a literal
// key when errors are suppressed, instead of being dropped.
func RetryHeaderAsKey(on bool) Option {
	return func(d *Dialect) error {
		d.RetryHeaderAsKey = on
		return nil
	}
}

// SeparatorOnEmpty controls whether keys with no value are written with a
// trailing value separator.
func SeparatorOnEmpty(on bool) Option {
	return func(d *Dialect) error {
		d.SeparatorOnEmpty = on
		return nil
	}
}
