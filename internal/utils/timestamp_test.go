package utils

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{"space separator", "2024-01-01 10:30", want, false},
		{"T separator", "2024-01-01T10:30", want, false},
		{"surrounding whitespace", "  2024-01-01 10:30 ", want, false},
		{"seconds not accepted", "2024-01-01 10:30:00", time.Time{}, true},
		{"date only", "2024-01-01", time.Time{}, true},
		{"rfc3339 rejected", "2024-01-01T10:30:00Z", time.Time{}, true},
		{"garbage", "next tuesday", time.Time{}, true},
		{"empty", "", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrBadTimestamp) {
					t.Fatalf("err = %v, want ErrBadTimestamp", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	in := time.Date(2024, 3, 5, 9, 7, 12, 0, time.UTC)
	if got := FormatTimestamp(in); got != "2024-03-05 09:07" {
		t.Errorf("got %q", got)
	}
}
