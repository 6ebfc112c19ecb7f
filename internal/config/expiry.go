package config

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var expiryPattern = regexp.MustCompile(`^(\d+)([smhd])$`)

// ParseExpiry parses the compact token-lifetime form "<integer><unit>" with
// unit one of s, m, h, d.
func ParseExpiry(s string) (time.Duration, error) {
	m := expiryPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("config: invalid duration format %q", s)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("config: invalid duration value %q", s)
	}
	switch m[2] {
	case "s":
		return time.Duration(n) * time.Second, nil
	case "m":
		return time.Duration(n) * time.Minute, nil
	case "h":
		return time.Duration(n) * time.Hour, nil
	case "d":
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return 0, fmt.Errorf("config: invalid duration unit %q", s)
}

// ExpiryOrDefault falls back to def when the string is empty or malformed.
func ExpiryOrDefault(s string, def time.Duration) time.Duration {
	d, err := ParseExpiry(s)
	if err != nil {
		return def
	}
	return d
}
