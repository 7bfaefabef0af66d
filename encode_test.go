package ini_test

import (
	"errors"
	"testing"

	ini "github.com/KimNorgaard/go-ini"
	"github.com/stretchr/testify/require"
)

type wireLevel struct {
	Name string
}

func (l wireLevel) MarshalINI() (string, error) {
	if l.Name == "" {
		return "", errors.New("empty level")
	}
	return l.Name, nil
}

func (l *wireLevel) UnmarshalINI(value string) error {
	if value == "" {
		return errors.New("empty level")
	}
	l.Name = value
	return nil
}

func TestMarshal_Struct(t *testing.T) {
	type TLS struct {
		Enabled bool `ini:"enabled"`
	}
	type Server struct {
		Host  string   `ini:"host"`
		Port  int      `ini:"port"`
		Tags  []string `ini:"tags"`
		TLS   TLS      `ini:"tls"`
		Debug bool     `ini:"debug,omitempty"`
		Skip  string   `ini:"-"`
	}
	type Config struct {
		Name   string `ini:"name"`
		Server Server `ini:"server"`
	}

	out, err := ini.Marshal(Config{
		Name: "demo",
		Server: Server{
			Host: "example.org",
			Port: 8080,
			Tags: []string{"a", "b"},
			TLS:  TLS{Enabled: true},
			Skip: "never written",
		},
	})
	require.NoError(t, err)
	require.Equal(t, `name = demo

[server]
host = example.org
port = 8080
tags = a
tags = b

[server.tls]
enabled = true
`, string(out))
}

func TestMarshal_UntaggedFieldsUseNames(t *testing.T) {
	type Config struct {
		Host string
		Port int
	}
	out, err := ini.Marshal(Config{Host: "h", Port: 1})
	require.NoError(t, err)
	require.Equal(t, "Host = h\nPort = 1\n", string(out))
}

func TestMarshal_Map(t *testing.T) {
	out, err := ini.Marshal(map[string]any{
		"b": "2",
		"a": "1",
		"sec": map[string]string{
			"k": "v",
		},
	})
	require.NoError(t, err)
	// Map keys are written sorted.
	require.Equal(t, "a = 1\nb = 2\n\n[sec]\nk = v\n", string(out))
}

func TestMarshal_Marshaler(t *testing.T) {
	type Config struct {
		Level wireLevel `ini:"level"`
	}

	out, err := ini.Marshal(Config{Level: wireLevel{Name: "debug"}})
	require.NoError(t, err)
	require.Equal(t, "level = debug\n", string(out))

	_, err = ini.Marshal(Config{})
	var merr *ini.MarshalerError
	require.ErrorAs(t, err, &merr)
}

func TestMarshal_Errors(t *testing.T) {
	_, err := ini.Marshal("not a document")
	require.Error(t, err)

	_, err = ini.Marshal(map[int]string{1: "x"})
	require.Error(t, err)
}

func TestMarshal_NilPointerFieldSkipped(t *testing.T) {
	type Config struct {
		Host *string `ini:"host"`
		Port int     `ini:"port"`
	}
	out, err := ini.Marshal(Config{Port: 1})
	require.NoError(t, err)
	require.Equal(t, "port = 1\n", string(out))
}

func TestEncoder_Document(t *testing.T) {
	doc, err := ini.NewDocument()
	require.NoError(t, err)
	doc.Set("k", "v")

	out, err := ini.Marshal(doc)
	require.NoError(t, err)
	require.Equal(t, "k = v\n", string(out))
}
