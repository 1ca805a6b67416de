package obs

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevelKnown(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"info":  zerolog.InfoLevel,
		"warn":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
	}
	for raw, want := range cases {
		if got := parseLevel(raw); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestParseLevelUnknownDefaultsToInfo(t *testing.T) {
	if got := parseLevel("not-a-level"); got != zerolog.InfoLevel {
		t.Errorf("parseLevel(garbage) = %v, want InfoLevel", got)
	}
}
