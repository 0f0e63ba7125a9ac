package eligibility

import (
	"testing"
	"time"

	"serotonyl.ru/habit-sys/internal/features/habits"
)

var today = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func habitCreated(daysAgo int) *habits.Habit {
	return &habits.Habit{
		Title:     "Пробежать 1 км",
		CreatedAt: today.AddDate(0, 0, -daysAgo),
	}
}

// logs возвращает daysAgo-смещения как дни отметок.
func logs(offsets ...int) []time.Time {
	out := make([]time.Time, 0, len(offsets))
	for _, o := range offsets {
		out = append(out, today.AddDate(0, 0, -o))
	}
	return out
}

func TestEvaluateFirstHabitAlwaysEligible(t *testing.T) {
	snap := Evaluate(nil, nil, today, 10, 90)
	if !snap.Eligible {
		t.Error("первый протокол должен быть разрешён безусловно")
	}
	if snap.Completions != 0 || snap.TotalDays != 0 {
		t.Errorf("ожидался пустой снимок, получено %+v", snap)
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name            string
		habit           *habits.Habit
		logDays         []time.Time
		wantEligible    bool
		wantCompletions int
		wantTotalDays   int
		wantDedication  int
	}{
		{
			name:            "создан сегодня без отметок",
			habit:           habitCreated(0),
			logDays:         nil,
			wantEligible:    false,
			wantCompletions: 0,
			wantTotalDays:   1,
			wantDedication:  0,
		},
		{
			name:            "идеальная дисциплина, но мало отметок",
			habit:           habitCreated(4),
			logDays:         logs(0, 1, 2, 3, 4),
			wantEligible:    false,
			wantCompletions: 5,
			wantTotalDays:   5,
			wantDedication:  100,
		},
		{
			name:            "10 из 10 — допуск получен",
			habit:           habitCreated(9),
			logDays:         logs(0, 1, 2, 3, 4, 5, 6, 7, 8, 9),
			wantEligible:    true,
			wantCompletions: 10,
			wantTotalDays:   10,
			wantDedication:  100,
		},
		{
			name:            "10 отметок, но дисциплина ниже порога",
			habit:           habitCreated(19),
			logDays:         logs(0, 1, 2, 3, 4, 5, 6, 7, 8, 9),
			wantEligible:    false,
			wantCompletions: 10,
			wantTotalDays:   20,
			wantDedication:  50,
		},
		{
			name:  "округление дотягивает до порога: 9/10 = 90%... 18/20",
			habit: habitCreated(19),
			logDays: logs(0, 1, 2, 3, 4, 5, 6, 7, 8,
				9, 10, 11, 12, 13, 14, 15, 16, 17),
			wantEligible:    true,
			wantCompletions: 18,
			wantTotalDays:   20,
			wantDedication:  90,
		},
		{
			name:            "граница: 10 из 11 дней — округление выше порога",
			habit:           habitCreated(10),
			logDays:         logs(0, 1, 2, 3, 4, 5, 6, 7, 8, 9),
			wantEligible:    true,
			wantCompletions: 10,
			wantTotalDays:   11,
			wantDedication:  91,
		},
		{
			name:            "граница: 9 из 11 дней — не хватает отметок и преданности",
			habit:           habitCreated(10),
			logDays:         logs(0, 1, 2, 3, 4, 5, 6, 7, 8),
			wantEligible:    false,
			wantCompletions: 9,
			wantTotalDays:   11,
			wantDedication:  82,
		},
		{
			name:            "дубликаты дней считаются один раз",
			habit:           habitCreated(0),
			logDays:         append(logs(0), logs(0)...),
			wantEligible:    false,
			wantCompletions: 1,
			wantTotalDays:   1,
			wantDedication:  100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Evaluate(tt.habit, tt.logDays, today, 10, 90)

			if snap.Eligible != tt.wantEligible {
				t.Errorf("Eligible = %v, want %v", snap.Eligible, tt.wantEligible)
			}
			if snap.Completions != tt.wantCompletions {
				t.Errorf("Completions = %d, want %d", snap.Completions, tt.wantCompletions)
			}
			if snap.TotalDays != tt.wantTotalDays {
				t.Errorf("TotalDays = %d, want %d", snap.TotalDays, tt.wantTotalDays)
			}
			if snap.Dedication != tt.wantDedication {
				t.Errorf("Dedication = %d, want %d", snap.Dedication, tt.wantDedication)
			}
		})
	}
}

func TestEvaluateCarriesRequirements(t *testing.T) {
	snap := Evaluate(habitCreated(0), nil, today, 7, 85)
	if snap.RequiredCompletions != 7 || snap.RequiredDedication != 85 {
		t.Errorf("пороговые значения не прокинулись в снимок: %+v", snap)
	}
	if snap.LatestHabitTitle != "Пробежать 1 км" {
		t.Errorf("LatestHabitTitle = %q", snap.LatestHabitTitle)
	}
}
