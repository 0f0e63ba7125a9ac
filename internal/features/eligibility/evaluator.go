// Package eligibility — evaluator.go содержит чистый расчёт допуска.
// Функция идемпотентна: одинаковый вход — одинаковый снимок, без побочных
// эффектов.
package eligibility

import (
	"math"
	"time"

	"serotonyl.ru/habit-sys/internal/common"
	"serotonyl.ru/habit-sys/internal/features/habits"
)

// Evaluate вычисляет снимок допуска по последнему протоколу и его отметкам.
//
// Правила:
//   - Протоколов ещё нет (latest == nil) → допуск безусловный: первый
//     протокол разрешён всегда.
//   - completions — число УНИКАЛЬНЫХ отмеченных дней.
//   - totalDays — дней от дня создания до сегодня включительно: протокол,
//     созданный сегодня, имеет totalDays = 1.
//   - dedication = completions / totalDays × 100, округление до целого;
//     при вырожденном totalDays <= 0 преданность равна 0.
//   - eligible = completions >= reqCompletions И dedication >= reqDedication.
func Evaluate(latest *habits.Habit, logDays []time.Time, today time.Time, reqCompletions, reqDedication int) Snapshot {
	snap := Snapshot{
		RequiredCompletions: reqCompletions,
		RequiredDedication:  reqDedication,
	}

	if latest == nil {
		// Первый протокол разрешён всегда
		snap.Eligible = true
		return snap
	}

	snap.LatestHabitTitle = latest.Title

	// Уникальные отмеченные дни
	seen := make(map[time.Time]bool, len(logDays))
	for _, d := range logDays {
		seen[common.DayUTC(d)] = true
	}
	snap.Completions = len(seen)

	// Дни с создания включительно: создан сегодня → 1
	snap.TotalDays = common.DaysBetween(latest.CreatedAt, today) + 1

	if snap.TotalDays > 0 {
		rate := float64(snap.Completions) / float64(snap.TotalDays) * 100
		snap.Dedication = int(math.Round(rate))
	}

	snap.Eligible = snap.Completions >= reqCompletions && snap.Dedication >= reqDedication
	return snap
}
