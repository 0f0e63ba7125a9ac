package streak

import (
	"testing"
	"time"
)

var today = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

// d возвращает день за offset дней до today.
func d(offset int) time.Time {
	return today.AddDate(0, 0, -offset)
}

func TestCurrent(t *testing.T) {
	tests := []struct {
		name string
		days []time.Time
		want int
	}{
		{
			name: "нет отметок",
			days: nil,
			want: 0,
		},
		{
			name: "только сегодня",
			days: []time.Time{d(0)},
			want: 1,
		},
		{
			name: "три подряд начиная с сегодня",
			days: []time.Time{d(0), d(1), d(2)},
			want: 3,
		},
		{
			name: "последняя отметка вчера — серия жива",
			days: []time.Time{d(1), d(2), d(3)},
			want: 3,
		},
		{
			name: "последняя отметка позавчера — серия прервана",
			days: []time.Time{d(2), d(3)},
			want: 0,
		},
		{
			name: "разрыв внутри цепочки обрезает серию",
			days: []time.Time{d(0), d(1), d(2), d(4), d(5)},
			want: 3,
		},
		{
			name: "дубликаты дня не раздувают серию",
			days: []time.Time{d(0), d(0), d(1)},
			want: 2,
		},
		{
			name: "неотсортированный вход",
			days: []time.Time{d(2), d(0), d(1)},
			want: 3,
		},
		{
			name: "время внутри дня не влияет",
			days: []time.Time{
				d(0).Add(23 * time.Hour),
				d(1).Add(5 * time.Minute),
			},
			want: 2,
		},
		{
			name: "одинокая старая отметка",
			days: []time.Time{d(30)},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Current(tt.days, today); got != tt.want {
				t.Errorf("Current() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCurrentDoesNotMutateInput(t *testing.T) {
	days := []time.Time{d(2), d(0), d(1)}
	orig := make([]time.Time, len(days))
	copy(orig, days)

	Current(days, today)

	for i := range days {
		if !days[i].Equal(orig[i]) {
			t.Fatal("Current изменил входной срез")
		}
	}
}
