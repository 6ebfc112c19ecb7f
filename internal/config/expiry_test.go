package config

import (
	"testing"
	"time"
)

func TestParseExpiry(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"90s", 90 * time.Second},
		{"15m", 15 * time.Minute},
		{"2h", 2 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"1d", 24 * time.Hour},
	}
	for _, tc := range cases {
		got, err := ParseExpiry(tc.in)
		if err != nil {
			t.Errorf("ParseExpiry(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseExpiry(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseExpiryRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "15", "m15", "15w", "1.5h", "15 m", "-5m"} {
		if _, err := ParseExpiry(in); err == nil {
			t.Errorf("ParseExpiry(%q) accepted malformed input", in)
		}
	}
}

func TestExpiryOrDefault(t *testing.T) {
	def := 15 * time.Minute
	if got := ExpiryOrDefault("2h", def); got != 2*time.Hour {
		t.Errorf("valid input = %v, want 2h", got)
	}
	if got := ExpiryOrDefault("", def); got != def {
		t.Errorf("empty input = %v, want default", got)
	}
	if got := ExpiryOrDefault("soon", def); got != def {
		t.Errorf("garbage input = %v, want default", got)
	}
}
