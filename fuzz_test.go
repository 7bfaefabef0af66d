package ini_test

import (
	"testing"

	ini "github.com/KimNorgaard/go-ini"
	"github.com/stretchr/testify/require"
)

// FuzzLoad feeds arbitrary text through the full pipeline: any input that
// parses must serialize, and the serialized form must parse again without
// panicking.
func FuzzLoad(f *testing.F) {
	f.Add("key = value\n")
	f.Add("[section]\nk = v\n")
	f.Add("[a.b.c]\nx = 1\nx = 2\n")
	f.Add("k = \"quoted ; value\"\n")
	f.Add("k = one\\\ntwo\n")
	f.Add("; comment\nk = v ; inline\n")
	f.Add("k = a\\nb\\tc\\\\d\n")
	f.Add("K = V1, V2, V3\n")
	f.Add("[broken\n")
	f.Add("flag\nempty =\n")

	f.Fuzz(func(t *testing.T, input string) {
		doc, err := ini.LoadString(input)
		if err != nil {
			return
		}
		out, err := ini.WriteString(doc)
		require.NoError(t, err)
		_, _ = ini.LoadString(out)
	})
}

// FuzzValueRoundTrip checks that with quoting forced on, any value written
// for a key comes back byte-identical.
func FuzzValueRoundTrip(f *testing.F) {
	f.Add("plain")
	f.Add("")
	f.Add("  padded  ")
	f.Add("semi;colon")
	f.Add(`back\slash`)
	f.Add("line\nbreak")
	f.Add(`quote"inside`)
	f.Add("tab\tand\rreturn")
	f.Add("nul\x00byte")
	f.Add("mixed 'quotes' = here, too")

	f.Fuzz(func(t *testing.T, value string) {
		doc, err := ini.NewDocument()
		require.NoError(t, err)
		doc.Set("k", value)

		out, err := ini.WriteString(doc, ini.Quoting(ini.QuoteAlways))
		require.NoError(t, err)

		again, err := ini.LoadString(out)
		require.NoError(t, err)
		require.Equal(t, []string{value}, again.Values("k"))
	})
}
