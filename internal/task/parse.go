package task

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDue parses a user-supplied due time into unix seconds. Accepted forms:
//
//	1700000000            unix seconds
//	2024-01-02T15:04:05Z  RFC 3339
//	2024-01-02            a date, midnight UTC
//	+3d, -4d, +12h, +30m  offset from now
func ParseDue(input string, now time.Time) (int64, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, fmt.Errorf("due time is empty")
	}

	if s[0] == '+' || s[0] == '-' {
		return parseOffset(s, now)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Unix(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Unix(), nil
	}
	return 0, fmt.Errorf("unrecognized due time %q (expected unix seconds, RFC 3339, YYYY-MM-DD, or an offset like +3d)", input)
}

func parseOffset(s string, now time.Time) (int64, error) {
	if len(s) < 3 {
		return 0, fmt.Errorf("invalid due offset %q", s)
	}
	unit := s[len(s)-1]
	n, err := strconv.Atoi(s[1 : len(s)-1])
	if err != nil {
		return 0, fmt.Errorf("invalid due offset %q", s)
	}
	if s[0] == '-' {
		n = -n
	}
	var d time.Duration
	switch unit {
	case 'd':
		return now.AddDate(0, 0, n).Unix(), nil
	case 'h':
		d = time.Duration(n) * time.Hour
	case 'm':
		d = time.Duration(n) * time.Minute
	default:
		return 0, fmt.Errorf("invalid due offset unit %q in %q (expected d, h, or m)", string(unit), s)
	}
	return now.Add(d).Unix(), nil
}

// FormatDue renders a unix timestamp for display in UTC.
func FormatDue(due int64) string {
	return time.Unix(due, 0).UTC().Format("2006-01-02 15:04 MST")
}
