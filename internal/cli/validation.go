package cli

import (
	"fmt"
	"strconv"
	"time"
)

// parseID parses a positive numeric id argument.
func parseID(kind, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q: must be a positive integer", kind, arg)
	}
	return id, nil
}

// parseTime accepts RFC 3339 or a local "2006-01-02 15:04" timestamp.
func parseTime(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("--%s is required", flag)
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid --%s %q: use RFC 3339 (2026-05-01T09:00:00Z) or \"2006-01-02 15:04\"", flag, value)
}
