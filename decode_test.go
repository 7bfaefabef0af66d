package ini_test

import (
	"testing"

	ini "github.com/KimNorgaard/go-ini"
	"github.com/stretchr/testify/require"
)

func TestUnmarshal_Struct(t *testing.T) {
	type TLS struct {
		Enabled bool `ini:"enabled"`
	}
	type Server struct {
		Host string   `ini:"host"`
		Port int      `ini:"port"`
		Tags []string `ini:"tags"`
		TLS  TLS      `ini:"tls"`
	}
	type Config struct {
		Name   string `ini:"name"`
		Server Server `ini:"server"`
	}

	var cfg Config
	err := ini.Unmarshal([]byte(`name = demo

[server]
host = example.org
port = 8080
tags = a
tags = b

[server.tls]
enabled = true
`), &cfg)
	require.NoError(t, err)
	require.Equal(t, Config{
		Name: "demo",
		Server: Server{
			Host: "example.org",
			Port: 8080,
			Tags: []string{"a", "b"},
			TLS:  TLS{Enabled: true},
		},
	}, cfg)
}

func TestUnmarshal_FieldNameFallback(t *testing.T) {
	type Config struct {
		Host string
		Port int
	}
	var cfg Config
	err := ini.Unmarshal([]byte("host = h\nPort = 1\n"), &cfg)
	require.NoError(t, err)
	require.Equal(t, Config{Host: "h", Port: 1}, cfg)
}

func TestUnmarshal_SiblingSectionsIntoSlice(t *testing.T) {
	type Rule struct {
		Match string `ini:"match"`
	}
	type Config struct {
		Rules []Rule `ini:"rule"`
	}

	var cfg Config
	err := ini.Unmarshal([]byte("[rule]\nmatch = a\n[rule]\nmatch = b\n"), &cfg)
	require.NoError(t, err)
	require.Equal(t, []Rule{{Match: "a"}, {Match: "b"}}, cfg.Rules)
}

func TestUnmarshal_Map(t *testing.T) {
	var m map[string]any
	err := ini.Unmarshal([]byte(`single = x
multi = a
multi = b
flag =

[sec]
k = v
`), &m)
	require.NoError(t, err)

	require.Equal(t, "x", m["single"])
	require.Equal(t, []string{"a", "b"}, m["multi"])
	require.Equal(t, "", m["flag"])

	sec, ok := m["sec"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "v", sec["k"])
}

func TestUnmarshal_StringMap(t *testing.T) {
	var m map[string]string
	err := ini.Unmarshal([]byte("a = 1\nb = 2\n"), &m)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"a": "1", "b": "2"}, m)
}

func TestUnmarshal_PointerFields(t *testing.T) {
	type Config struct {
		Host *string `ini:"host"`
	}
	var cfg Config
	err := ini.Unmarshal([]byte("host = h\n"), &cfg)
	require.NoError(t, err)
	require.NotNil(t, cfg.Host)
	require.Equal(t, "h", *cfg.Host)
}

func TestUnmarshal_EmbeddedStruct(t *testing.T) {
	type Base struct {
		Name string `ini:"name"`
	}
	type Config struct {
		Base
		Port int `ini:"port"`
	}
	var cfg Config
	err := ini.Unmarshal([]byte("name = n\nport = 2\n"), &cfg)
	require.NoError(t, err)
	require.Equal(t, "n", cfg.Name)
	require.Equal(t, 2, cfg.Port)
}

func TestUnmarshal_Unmarshaler(t *testing.T) {
	type Config struct {
		Level wireLevel `ini:"level"`
	}

	var cfg Config
	err := ini.Unmarshal([]byte("level = debug\n"), &cfg)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Level.Name)

	err = ini.Unmarshal([]byte("level = \"\"\n"), &cfg)
	var uerr *ini.UnmarshalerError
	require.ErrorAs(t, err, &uerr)
}

func TestUnmarshal_Document(t *testing.T) {
	var doc *ini.Document
	err := ini.Unmarshal([]byte("[s]\nk = v\n"), &doc)
	require.NoError(t, err)
	require.NotNil(t, doc)
	v, _ := doc.Section("s").Get("k")
	require.Equal(t, "v", v)
}

func TestUnmarshal_TypeErrors(t *testing.T) {
	type Config struct {
		Port int `ini:"port"`
	}

	var cfg Config
	err := ini.Unmarshal([]byte("port = not-a-number\n"), &cfg)
	require.Error(t, err)

	err = ini.Unmarshal([]byte("k = v\n"), Config{})
	require.Error(t, err)

	var i int
	err = ini.Unmarshal([]byte("k = v\n"), &i)
	require.Error(t, err)
}

func TestUnmarshal_Overflow(t *testing.T) {
	type Config struct {
		Small int8 `ini:"small"`
	}
	var cfg Config
	err := ini.Unmarshal([]byte("small = 300\n"), &cfg)
	require.Error(t, err)
}

func TestUnmarshal_UnknownKeysIgnored(t *testing.T) {
	type Config struct {
		Known string `ini:"known"`
	}
	var cfg Config
	err := ini.Unmarshal([]byte("known = x\nunknown = y\n[extra]\nz = 1\n"), &cfg)
	require.NoError(t, err)
	require.Equal(t, "x", cfg.Known)
}
