package cli

import (
	"strings"
	"testing"
	"time"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		arg     string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseID("election", tt.arg)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.arg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	got, err := parseTime("start", "2026-05-01T09:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected time: %v", got)
	}

	if _, err := parseTime("start", "2026-05-01 09:00"); err != nil {
		t.Errorf("expected local layout to parse, got %v", err)
	}

	if _, err := parseTime("end", ""); err == nil || !strings.Contains(err.Error(), "--end is required") {
		t.Errorf("expected required error, got %v", err)
	}

	if _, err := parseTime("end", "tomorrow"); err == nil {
		t.Error("expected error for unparseable time")
	}
}
