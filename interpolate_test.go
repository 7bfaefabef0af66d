package ini_test

import (
	"testing"

	ini "github.com/KimNorgaard/go-ini"
	"github.com/stretchr/testify/require"
)

func TestInterpolator_Expand(t *testing.T) {
	ip := ini.NewInterpolator(ini.MapResolver(map[string]string{
		"host": "example.org",
		"port": "8080",
	}))

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no placeholders", "plain", "plain"},
		{"single", "http://${host}/", "http://example.org/"},
		{"multiple", "${host}:${port}", "example.org:8080"},
		{"unresolved stays verbatim", "${missing} here", "${missing} here"},
		{"unterminated stays verbatim", "a ${open", "a ${open"},
		{"adjacent", "${host}${port}", "example.org8080"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ip.Expand(tt.in))
		})
	}
}

func TestInterpolator_NestedExpansion(t *testing.T) {
	ip := ini.NewInterpolator(ini.MapResolver(map[string]string{
		"a": "${b}",
		"b": "deep",
	}))
	require.Equal(t, "deep", ip.Expand("${a}"))
}

func TestInterpolator_CycleStops(t *testing.T) {
	ip := ini.NewInterpolator(ini.MapResolver(map[string]string{
		"a": "${b}",
		"b": "${a}",
	}))
	// The depth guard ends the recursion; the call must return.
	out := ip.Expand("${a}")
	require.Contains(t, out, "${")
}

func TestInterpolator_Fetch(t *testing.T) {
	doc, err := ini.LoadString(`
base = /srv
data = ${base}/data
url  = https://${env:GOINI_TEST_HOST}/
`)
	require.NoError(t, err)

	ip := ini.NewInterpolator(ini.EnvResolver())

	v, ok := ip.Fetch(doc, "data")
	require.True(t, ok)
	require.Equal(t, "/srv/data", v)

	t.Setenv("GOINI_TEST_HOST", "example.org")
	v, ok = ip.Fetch(doc, "url")
	require.True(t, ok)
	require.Equal(t, "https://example.org/", v)

	_, ok = ip.Fetch(doc, "absent")
	require.False(t, ok)
}

func TestEnvResolver_PrefixOnly(t *testing.T) {
	t.Setenv("GOINI_TEST_PLAIN", "x")
	r := ini.EnvResolver()

	_, ok := r.Resolve("GOINI_TEST_PLAIN")
	require.False(t, ok)

	v, ok := r.Resolve("env:GOINI_TEST_PLAIN")
	require.True(t, ok)
	require.Equal(t, "x", v)
}

func TestExprResolver(t *testing.T) {
	r := ini.ExprResolver(map[string]any{
		"port": 8080,
		"host": "example.org",
	})

	v, ok := r.Resolve("port + 1")
	require.True(t, ok)
	require.Equal(t, "8081", v)

	v, ok = r.Resolve(`upper(host)`)
	require.True(t, ok)
	require.Equal(t, "EXAMPLE.ORG", v)

	// Undefined variables evaluate to nil, which does not resolve.
	_, ok = r.Resolve("nope")
	require.False(t, ok)

	_, ok = r.Resolve("not a ( valid expression")
	require.False(t, ok)
}

func TestChainResolver_Order(t *testing.T) {
	first := ini.MapResolver(map[string]string{"k": "first"})
	second := ini.MapResolver(map[string]string{"k": "second", "only": "here"})
	r := ini.ChainResolver(first, second)

	v, ok := r.Resolve("k")
	require.True(t, ok)
	require.Equal(t, "first", v)

	v, ok = r.Resolve("only")
	require.True(t, ok)
	require.Equal(t, "here", v)

	_, ok = r.Resolve("absent")
	require.False(t, ok)
}
