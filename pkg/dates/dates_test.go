package dates

import "testing"

func TestNights(t *testing.T) {
	tests := []struct {
		name      string
		arrival   string
		departure string
		want      int
	}{
		{"two nights", "2025-06-01", "2025-06-03", 2},
		{"single night", "2025-06-01", "2025-06-02", 1},
		{"same day", "2025-06-01", "2025-06-01", 0},
		{"inverted range", "2025-06-03", "2025-06-01", -2},
		{"across month boundary", "2025-06-29", "2025-07-02", 3},
		{"unparseable arrival", "junk", "2025-06-03", 0},
		{"unparseable departure", "2025-06-01", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Nights(tt.arrival, tt.departure)
			if got != tt.want {
				t.Errorf("Nights(%q, %q) = %d, want %d", tt.arrival, tt.departure, got, tt.want)
			}
		})
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2025-06-01", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2025-06-03" {
		t.Errorf("AddDays = %q, want 2025-06-03", got)
	}

	if _, err := AddDays("not-a-date", 2); err == nil {
		t.Errorf("expected error for unparseable date")
	}
}

func TestRangeValid(t *testing.T) {
	if !RangeValid("2025-06-01", "2025-06-02") {
		t.Errorf("one-night range should be valid")
	}
	if RangeValid("2025-06-01", "2025-06-01") {
		t.Errorf("zero-night range should be invalid")
	}
	if RangeValid("2025-06-02", "2025-06-01") {
		t.Errorf("inverted range should be invalid")
	}
}
