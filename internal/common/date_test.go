package common

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDayUTC(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "полночь UTC остаётся как есть",
			in:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			want: day("2026-03-01"),
		},
		{
			name: "время внутри дня обнуляется",
			in:   time.Date(2026, 3, 1, 17, 45, 12, 999, time.UTC),
			want: day("2026-03-01"),
		},
		{
			name: "поздний вечер MSK — ещё предыдущий день UTC",
			in:   time.Date(2026, 3, 2, 1, 30, 0, 0, msk),
			want: day("2026-03-01"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayUTC(tt.in); !got.Equal(tt.want) {
				t.Errorf("DayUTC(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"одинаковые дни", day("2026-03-01"), day("2026-03-01"), 0},
		{"соседние дни", day("2026-03-01"), day("2026-03-02"), 1},
		{"обратный порядок", day("2026-03-02"), day("2026-03-01"), -1},
		{"через месяц", day("2026-02-15"), day("2026-03-15"), 28},
		{"время внутри дня не влияет", time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC), day("2026-03-02"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestWeekdayCode(t *testing.T) {
	// 2026-03-02 — понедельник
	tests := []struct {
		date string
		want string
	}{
		{"2026-03-02", "Mon"},
		{"2026-03-04", "Wed"},
		{"2026-03-08", "Sun"},
	}

	for _, tt := range tests {
		if got := WeekdayCode(day(tt.date)); got != tt.want {
			t.Errorf("WeekdayCode(%s) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestIsValidWeekdayCode(t *testing.T) {
	for _, code := range WeekdayCodes {
		if !IsValidWeekdayCode(code) {
			t.Errorf("IsValidWeekdayCode(%q) = false, want true", code)
		}
	}
	for _, code := range []string{"", "mon", "Понедельник", "Funday"} {
		if IsValidWeekdayCode(code) {
			t.Errorf("IsValidWeekdayCode(%q) = true, want false", code)
		}
	}
}

func TestParseDay(t *testing.T) {
	got, err := ParseDay("2026-03-01")
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}
	if !got.Equal(day("2026-03-01")) {
		t.Errorf("ParseDay = %v, want 2026-03-01", got)
	}

	if _, err := ParseDay("01.03.2026"); err == nil {
		t.Error("ParseDay принял некорректный формат")
	}
}
