// Package punchcard генерирует панчкард — календарную сетку истории
// выполнения протокола, одна ячейка на запланированный день.
// generator.go — чистая генерация: никаких походов в БД, вход — уже
// выбранные данные.
package punchcard

import (
	"time"

	"serotonyl.ru/habit-sys/internal/common"
)

// Slot — одна ячейка панчкарда.
type Slot struct {
	Date    time.Time // Календарный день (UTC)
	Punched bool      // Есть ли отметка за этот день
}

// Generate перечисляет дни от создания протокола до сегодня включительно
// (по возрастанию — стабильный порядок для тестов) и размечает отметки.
//
// Правила:
//   - Непустая маска частоты оставляет только подходящие дни недели;
//     пустая маска = ежедневно. Неизвестные коды в маске игнорируются.
//   - Отметка ищется точным совпадением календарного дня.
//   - createdAt в будущем — вырожденный диапазон, пустой результат.
//   - Протокол, созданный сегодня, даёт ровно одну ячейку (сегодня).
func Generate(createdAt time.Time, frequency []string, logDays []time.Time, today time.Time) []Slot {
	start := common.DayUTC(createdAt)
	end := common.DayUTC(today)

	if start.After(end) {
		return nil
	}

	// Маска частоты: неизвестные коды отбрасываем молча
	mask := make(map[string]bool, len(frequency))
	for _, code := range frequency {
		if common.IsValidWeekdayCode(code) {
			mask[code] = true
		}
	}

	logged := make(map[time.Time]bool, len(logDays))
	for _, d := range logDays {
		logged[common.DayUTC(d)] = true
	}

	var slots []Slot
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if len(mask) > 0 && !mask[common.WeekdayCode(day)] {
			continue
		}
		slots = append(slots, Slot{Date: day, Punched: logged[day]})
	}

	return slots
}

// DisplayOrder возвращает копию ячеек в порядке показа: свежие сверху.
// Исходный срез не меняется.
func DisplayOrder(slots []Slot) []Slot {
	out := make([]Slot, len(slots))
	for i, s := range slots {
		out[len(slots)-1-i] = s
	}
	return out
}
