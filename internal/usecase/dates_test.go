package usecase

import "testing"

func TestInclusiveDays(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
	}{
		{"2024-05-05", "2024-05-05", 1},
		{"2024-02-28", "2024-03-01", 3},
		{"2023-12-31", "2024-01-01", 2},
		// Longer than time.Duration can represent.
		{"1700-01-01", "2024-01-01", 118339},
		{"0001-01-01", "9999-12-31", 3652059},
	}
	for _, tt := range tests {
		start, err := parseDate("start_date", tt.start)
		if err != nil {
			t.Fatal(err)
		}
		end, err := parseDate("end_date", tt.end)
		if err != nil {
			t.Fatal(err)
		}
		if got := inclusiveDays(start, end); got != tt.want {
			t.Errorf("%s..%s: got %d, want %d", tt.start, tt.end, got, tt.want)
		}
	}
}
