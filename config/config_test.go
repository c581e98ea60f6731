package config

import (
	"testing"
	"time"
)

func TestParseDurationShorthand(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Duration
	}{
		{name: "hours", input: "24h", want: 24 * time.Hour},
		{name: "minutes", input: "90m", want: 90 * time.Minute},
		{name: "days suffix", input: "7d", want: 7 * 24 * time.Hour},
		{name: "weeks suffix", input: "2w", want: 14 * 24 * time.Hour},
		{name: "uppercase day", input: "3D", want: 3 * 24 * time.Hour},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseDurationShorthand(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("parseDurationShorthand(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseDurationShorthandInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "7x", "d"} {
		if _, err := parseDurationShorthand(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}
