package ini

import (
	"fmt"
	"os"
	"strings"

	"github.com/expr-lang/expr"
)

// Resolver supplies replacement text for a ${name} placeholder.
type Resolver interface {
	Resolve(name string) (string, bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(name string) (string, bool)

func (f ResolverFunc) Resolve(name string) (string, bool) { return f(name) }

// MapResolver resolves placeholders from a fixed map.
func MapResolver(m map[string]string) Resolver {
	return ResolverFunc(func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	})
}

// EnvResolver resolves "env:NAME" placeholders from the process
// environment.
func EnvResolver() Resolver {
	return ResolverFunc(func(name string) (string, bool) {
		rest, ok := strings.CutPrefix(name, "env:")
		if !ok {
			return "", false
		}
		return os.LookupEnv(rest)
	})
}

// StoreResolver resolves placeholders from another key's first value in
// the given store, so sibling keys can reference each other.
func StoreResolver(s Store) Resolver {
	return ResolverFunc(func(name string) (string, bool) {
		return s.Get(name)
	})
}

// ExprResolver evaluates the placeholder text as an expression over env,
// so substitutions like ${upper(host)} or ${port + 1} work. Undefined
// variables resolve to nil rather than failing the whole expansion.
func ExprResolver(env map[string]any) Resolver {
	if env == nil {
		env = map[string]any{}
	}
	return ResolverFunc(func(name string) (string, bool) {
		program, err := expr.Compile(name, expr.Env(env), expr.AllowUndefinedVariables())
		if err != nil {
			return "", false
		}
		out, err := expr.Run(program, env)
		if err != nil || out == nil {
			return "", false
		}
		return fmt.Sprint(out), true
	})
}

// ChainResolver tries each resolver in order and returns the first hit.
func ChainResolver(rs ...Resolver) Resolver {
	return ResolverFunc(func(name string) (string, bool) {
		for _, r := range rs {
			if v, ok := r.Resolve(name); ok {
				return v, ok
			}
		}
		return "", false
	})
}

const maxExpandDepth = 10

// Interpolator post-processes retrieved string values, substituting
// ${name} placeholders through its resolver chain. Unresolvable
// placeholders are left verbatim.
type Interpolator struct {
	resolver Resolver
}

// NewInterpolator returns an Interpolator over the given resolvers.
func NewInterpolator(rs ...Resolver) *Interpolator {
	return &Interpolator{resolver: ChainResolver(rs...)}
}

// Expand substitutes every ${name} placeholder in s. Substituted text is
// itself expanded, up to a fixed depth guarding against reference cycles.
func (ip *Interpolator) Expand(s string) string {
	return ip.expand(s, maxExpandDepth)
}

// Fetch returns the first value of key in st, expanded. Sibling keys of
// st take part in resolution ahead of the interpolator's own chain.
func (ip *Interpolator) Fetch(st Store, key string) (string, bool) {
	v, ok := st.Get(key)
	if !ok {
		return "", false
	}
	local := &Interpolator{resolver: ChainResolver(StoreResolver(st), ip.resolver)}
	return local.Expand(v), true
}

func (ip *Interpolator) expand(s string, depth int) string {
	if depth <= 0 || !strings.Contains(s, "${") {
		return s
	}
	var b strings.Builder
	for {
		start := strings.Index(s, "${")
		if start < 0 {
			b.WriteString(s)
			return b.String()
		}
		end := strings.Index(s[start:], "}")
		if end < 0 {
			b.WriteString(s)
			return b.String()
		}
		end += start
		b.WriteString(s[:start])
		name := s[start+2 : end]
		if v, ok := ip.resolver.Resolve(name); ok {
			b.WriteString(ip.expand(v, depth-1))
		} else {
			b.WriteString(s[start : end+1])
		}
		s = s[end+1:]
	}
}
