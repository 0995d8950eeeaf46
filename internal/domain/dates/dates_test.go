package dates_test

import (
	"testing"
	"time"

	"github.com/supanat00/yaochaigym-data-record/internal/domain/dates"
)

// TestParse tests parsing of the two accepted date formats.
func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{"ISO date", "2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"ISO leap day", "2024-02-29", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), true},
		{"display format", "15/03/2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"display with leading space", " 15/03/2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"empty string", "", time.Time{}, false},
		{"garbage", "not-a-date", time.Time{}, false},
		{"ISO invalid day", "2023-02-29", time.Time{}, false},
		{"display invalid day", "32/01/2024", time.Time{}, false},
		{"display missing part", "15/03", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := dates.Parse(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestParseFormatRoundTrip tests that formatting then parsing returns the same date.
func TestParseFormatRoundTrip(t *testing.T) {
	ds := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range ds {
		iso, ok := dates.Parse(dates.FormatISO(d))
		if !ok || !iso.Equal(d) {
			t.Errorf("ISO round trip of %v = %v, ok=%v", d, iso, ok)
		}
		disp, ok := dates.Parse(dates.FormatDisplay(d))
		if !ok || !disp.Equal(d) {
			t.Errorf("display round trip of %v = %v, ok=%v", d, disp, ok)
		}
	}
}

// TestFormatZero tests rendering of the zero time.
func TestFormatZero(t *testing.T) {
	if got := dates.FormatISO(time.Time{}); got != "" {
		t.Errorf("FormatISO(zero) = %q, want empty", got)
	}
	if got := dates.FormatDisplay(time.Time{}); got != "-" {
		t.Errorf("FormatDisplay(zero) = %q, want -", got)
	}
}

// TestAddDays tests calendar-day addition.
func TestAddDays(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		n    int
		want time.Time
	}{
		{"zero days", 0, start},
		{"29 days", 29, time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC)},
		{"across leap february", 59, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"negative", -1, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dates.AddDays(start, tt.n); !got.Equal(tt.want) {
				t.Errorf("AddDays(%v, %d) = %v, want %v", start, tt.n, got, tt.want)
			}
		})
	}

	t.Run("zero time passes through", func(t *testing.T) {
		if got := dates.AddDays(time.Time{}, 5); !got.IsZero() {
			t.Errorf("AddDays(zero, 5) = %v, want zero", got)
		}
	})
}

// TestDiffDays tests the calendar-day difference.
func TestDiffDays(t *testing.T) {
	d := func(y int, m time.Month, day int) time.Time {
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}
	tests := []struct {
		name   string
		a, b   time.Time
		want   int
		wantOK bool
	}{
		{"same day", d(2024, 5, 10), d(2024, 5, 10), 0, true},
		{"a after b", d(2024, 5, 15), d(2024, 5, 10), 5, true},
		{"a before b", d(2024, 5, 10), d(2024, 5, 15), -5, true},
		{"ignores time of day", time.Date(2024, 5, 11, 23, 0, 0, 0, time.UTC), d(2024, 5, 10), 1, true},
		{"zero left", time.Time{}, d(2024, 5, 10), 0, false},
		{"zero right", d(2024, 5, 10), time.Time{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := dates.DiffDays(tt.a, tt.b)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("DiffDays() = %d, %v, want %d, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// TestTodayUTC tests that the anchor is at UTC midnight.
func TestTodayUTC(t *testing.T) {
	today := dates.TodayUTC()
	if today.Hour() != 0 || today.Minute() != 0 || today.Second() != 0 || today.Nanosecond() != 0 {
		t.Errorf("TodayUTC() = %v, want midnight", today)
	}
	if today.Location() != time.UTC {
		t.Errorf("TodayUTC() location = %v, want UTC", today.Location())
	}
}
