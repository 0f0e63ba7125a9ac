// Package streak управляет огоньком — серией последовательных дней
// с отметками. calculator.go содержит чистый расчёт: функция не ходит
// в БД и не мутирует входные данные, поэтому безопасна для
// параллельного вызова.
package streak

import (
	"sort"
	"time"

	"serotonyl.ru/habit-sys/internal/common"
)

// Current вычисляет текущий огонек по дням отметок.
//
// Алгоритм:
//  1. Нет отметок → 0.
//  2. Все даты нормализуются до календарных дней UTC, дубликаты схлопываются.
//  3. Если последняя отметка была раньше, чем вчера — серия прервана → 0.
//     (Пропуск только вчерашнего дня серию ещё не ломает: сегодня можно
//     отметиться и продолжить.)
//  4. Идём по дням от свежих к старым: ровно один день назад — серия +1,
//     разрыв больше дня — стоп.
//
// Порядок входных дней не важен — функция сортирует сама, чтобы не зависеть
// от дисциплины вызывающего кода.
//
// Примеры (today = Д0):
//
//	Current({Д0, Д-1, Д-2, Д-4}) → 3 (Д-4 ломает цепочку)
//	Current({Д-3, Д-4})          → 0 (последняя отметка слишком давно)
//	Current({Д0, Д0, Д-1})       → 2 (дубликат дня не раздувает серию)
func Current(days []time.Time, today time.Time) int {
	if len(days) == 0 {
		return 0
	}

	today = common.DayUTC(today)

	// Нормализуем и схлопываем дубликаты
	seen := make(map[time.Time]bool, len(days))
	norm := make([]time.Time, 0, len(days))
	for _, d := range days {
		day := common.DayUTC(d)
		if !seen[day] {
			seen[day] = true
			norm = append(norm, day)
		}
	}

	// От свежих к старым
	sort.Slice(norm, func(i, j int) bool { return norm[i].After(norm[j]) })

	// Последняя отметка позавчера или раньше — серия прервана
	if common.DaysBetween(norm[0], today) > 1 {
		return 0
	}

	streak := 1
	cursor := norm[0]
	for _, day := range norm[1:] {
		gap := common.DaysBetween(day, cursor)
		if gap == 1 {
			streak++
			cursor = day
			continue
		}
		// gap == 0 невозможен после схлопывания дубликатов; gap > 1 — разрыв
		break
	}

	return streak
}
