// Package hhmm parses and formats 24-hour "HH:MM" wall clock strings. Working
// hours and appointment boundaries are exchanged in this form, and comparing
// them as minutes-since-midnight keeps interval math free of time zones.
package hhmm

import "fmt"

// Parse converts "HH:MM" to minutes since midnight.
func Parse(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	h, m := 0, 0
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return h*60 + m, nil
}

// Format converts minutes since midnight back to "HH:MM".
func Format(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
