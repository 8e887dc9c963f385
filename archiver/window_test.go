package archiver

import (
	"testing"
	"time"
)

func TestPreviousMonth(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "mid month",
			now:       time.Date(2025, 8, 15, 10, 30, 0, 0, time.UTC),
			wantStart: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "january rolls into previous year",
			now:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "march after february",
			now:       time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC),
			wantStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := PreviousMonth(tt.now, time.UTC)
			if !w.Start.Equal(tt.wantStart) {
				t.Errorf("Start = %v, want %v", w.Start, tt.wantStart)
			}
			if !w.End.Equal(tt.wantEnd) {
				t.Errorf("End = %v, want %v", w.End, tt.wantEnd)
			}
			if !w.Start.Before(w.End) {
				t.Errorf("window start %v is not before end %v", w.Start, w.End)
			}
		})
	}
}

func TestWindowContainsHalfOpen(t *testing.T) {
	w := MonthOf(time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC), time.UTC)

	if !w.Contains(w.Start) {
		t.Error("window must include its start instant")
	}
	if w.Contains(w.End) {
		t.Error("window must exclude its end instant")
	}
	if w.Contains(w.Start.Add(-time.Second)) {
		t.Error("window must exclude instants before start")
	}
	if !w.Contains(w.End.Add(-time.Second)) {
		t.Error("window must include the last second of the month")
	}
}

func TestWindowLabel(t *testing.T) {
	w := PreviousMonth(time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC), time.UTC)
	if got := w.Label(); got != "2025-07" {
		t.Errorf("Label() = %q, want %q", got, "2025-07")
	}
}
