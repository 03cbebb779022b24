package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: WarnLevel, Output: &buf})
	defer Init(Config{Level: InfoLevel})

	Info().Msg("quiet")
	Warn().Msg("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Fatalf("info line written below level: %q", out)
	}
	if !strings.Contains(out, "loud") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestInitJSONLines(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: DebugLevel, Output: &buf})
	defer Init(Config{Level: InfoLevel})

	Debug().Str("path", "a.ini").Msg("parsed")

	out := buf.String()
	if !strings.Contains(out, `"path":"a.ini"`) {
		t.Fatalf("field not in JSON output: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   DebugLevel,
		"INFO":    InfoLevel,
		" warn ":  WarnLevel,
		"warning": WarnLevel,
		"error":   ErrorLevel,
		"bogus":   InfoLevel,
		"":        InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
