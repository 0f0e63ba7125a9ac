package habits

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"serotonyl.ru/habit-sys/internal/common"
)

func TestNormalizeFrequency(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []string
		wantErr error
	}{
		{
			name: "сортировка в порядке Пн..Вс",
			in:   []string{"Fri", "Mon", "Wed"},
			want: []string{"Mon", "Wed", "Fri"},
		},
		{
			name: "дубликаты схлопываются",
			in:   []string{"Mon", "Mon", "Tue"},
			want: []string{"Mon", "Tue"},
		},
		{
			name:    "неизвестный код отклоняется",
			in:      []string{"Mon", "Funday"},
			wantErr: common.ErrInvalidFrequency,
		},
		{
			name:    "пустая маска отклоняется",
			in:      nil,
			wantErr: common.ErrEmptyFrequency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeFrequency(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFrequencyInput(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []string
		wantErr bool
	}{
		{name: "русские сокращения", in: "пн, ср, пт", want: []string{"Mon", "Wed", "Fri"}},
		{name: "английские коды через пробел", in: "Mon Tue", want: []string{"Mon", "Tue"}},
		{name: "регистр не важен", in: "MON, wed", want: []string{"Mon", "Wed"}},
		{name: "все дни", in: "все", want: DefaultFrequency()},
		{name: "all по-английски", in: "all", want: DefaultFrequency()},
		{name: "полные английские названия", in: "monday, friday", want: []string{"Mon", "Fri"}},
		{name: "мусор отклоняется", in: "abc, xyz", wantErr: true},
		{name: "пустая строка отклоняется", in: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFrequencyInput(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ожидалась ошибка, получено %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFrequencyInput(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestScheduledOn(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	h := &Habit{Frequency: []string{"Mon", "Wed"}}
	if !h.ScheduledOn(monday) {
		t.Error("понедельник должен быть запланирован")
	}
	if h.ScheduledOn(tuesday) {
		t.Error("вторник не в маске")
	}

	// Пустая маска = ежедневно
	daily := &Habit{}
	if !daily.ScheduledOn(tuesday) {
		t.Error("пустая маска должна означать каждый день")
	}
}

func TestFormatFrequency(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{DefaultFrequency(), "каждый день"},
		{nil, "каждый день"},
		{[]string{"Mon", "Wed", "Fri"}, "Пн, Ср, Пт"},
		{[]string{"Sun"}, "Вс"},
	}

	for _, tt := range tests {
		if got := FormatFrequency(tt.in); got != tt.want {
			t.Errorf("FormatFrequency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
