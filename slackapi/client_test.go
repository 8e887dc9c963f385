package slackapi

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"1722470400.000000", time.Unix(1722470400, 0)},
		{"1722470400.123456", time.Unix(1722470400, 123456000)},
		{"1722470400", time.Unix(1722470400, 0)},
	}
	for _, tt := range tests {
		got, err := parseTimestamp(tt.in)
		if err != nil {
			t.Errorf("parseTimestamp(%q): %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseTimestampInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "12.ab"} {
		if _, err := parseTimestamp(in); err == nil {
			t.Errorf("parseTimestamp(%q) succeeded, want error", in)
		}
	}
}

func TestFormatTimestampRoundTrip(t *testing.T) {
	orig := time.Unix(1722470400, 123456000)
	got, err := parseTimestamp(formatTimestamp(orig))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(orig) {
		t.Errorf("round trip = %v, want %v", got, orig)
	}
}
