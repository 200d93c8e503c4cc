package rental

import (
	"testing"
	"time"
)

func TestOverlaps(t *testing.T) {
	at := func(day int) time.Time { return time.Date(2026, time.January, day, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		expected       bool
	}{
		{"identical", at(1), at(5), at(1), at(5), true},
		{"partial", at(1), at(5), at(4), at(8), true},
		{"contained", at(1), at(10), at(3), at(4), true},
		{"touching end to start", at(1), at(5), at(5), at(8), false},
		{"touching start to end", at(5), at(8), at(1), at(5), false},
		{"disjoint", at(1), at(2), at(3), at(4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.s1, tt.e1, tt.s2, tt.e2); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
			// Overlap is symmetric
			if got := Overlaps(tt.s2, tt.e2, tt.s1, tt.e1); got != tt.expected {
				t.Errorf("Expected symmetric result %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestReservationConstraints_Validate(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	valid := ReservationConstraints{Start: start, End: start.Add(time.Hour), CarType: "Compact", Region: "Brussels"}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	empty := ReservationConstraints{Start: start, End: start}
	if err := empty.Validate(); err != ErrInvalidWindow {
		t.Errorf("Expected ErrInvalidWindow for an empty window, got %v", err)
	}

	reversed := ReservationConstraints{Start: start.Add(time.Hour), End: start}
	if err := reversed.Validate(); err != ErrInvalidWindow {
		t.Errorf("Expected ErrInvalidWindow for a reversed window, got %v", err)
	}
}

func TestCarType_OfferedIn(t *testing.T) {
	ct := CarType{Name: "Compact", Regions: []string{"Brussels", "Antwerp"}}

	if !ct.OfferedIn("Antwerp") {
		t.Error("Expected Compact to be offered in Antwerp")
	}
	if ct.OfferedIn("Leuven") {
		t.Error("Expected Compact not to be offered in Leuven")
	}
}
