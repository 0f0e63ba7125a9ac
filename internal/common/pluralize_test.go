package common

import "testing"

func TestPluralizeDays(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "дней"},
		{1, "день"},
		{2, "дня"},
		{4, "дня"},
		{5, "дней"},
		{11, "дней"},
		{12, "дней"},
		{21, "день"},
		{22, "дня"},
		{25, "дней"},
		{100, "дней"},
		{101, "день"},
	}

	for _, tt := range tests {
		if got := PluralizeDays(tt.n); got != tt.want {
			t.Errorf("PluralizeDays(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestPluralizeMarks(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "отметка"},
		{3, "отметки"},
		{7, "отметок"},
		{11, "отметок"},
		{21, "отметка"},
	}

	for _, tt := range tests {
		if got := PluralizeMarks(tt.n); got != tt.want {
			t.Errorf("PluralizeMarks(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatStreak(t *testing.T) {
	if got := FormatStreak(8); got != "8 дней" {
		t.Errorf("FormatStreak(8) = %q", got)
	}
	if got := FormatStreak(1); got != "1 день" {
		t.Errorf("FormatStreak(1) = %q", got)
	}
}
