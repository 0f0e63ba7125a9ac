// Package common содержит общие утилиты, используемые во всём проекте.
// date.go — единая политика нормализации дат: ВСЕ расчёты (огонек, допуск,
// панчкард) работают с календарными днями в UTC. Ровно одна политика на весь
// проект — иначе на границе часовых поясов появляются ошибки "на один день".
package common

import (
	"fmt"
	"time"
)

// DayFormat — канонический формат календарного дня.
const DayFormat = "2006-01-02"

// WeekdayCodes — коды дней недели маски частоты, в порядке Пн..Вс.
// Хранятся в БД как text[], в том же виде приходят из мастера создания.
var WeekdayCodes = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DayUTC нормализует момент времени до календарного дня в UTC
// (обнуляет часы/минуты/секунды).
//
// Примеры:
//
//	DayUTC(2026-03-01 23:30 MSK) → 2026-03-01 00:00 UTC
//	DayUTC(2026-03-01 02:10 UTC) → 2026-03-01 00:00 UTC
func DayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Today возвращает сегодняшний календарный день в UTC.
func Today() time.Time {
	return DayUTC(time.Now())
}

// DaysBetween возвращает количество целых дней от дня a до дня b.
// Оба аргумента предварительно нормализуются. Результат отрицательный,
// если b раньше a.
func DaysBetween(a, b time.Time) int {
	da := DayUTC(a)
	db := DayUTC(b)
	return int(db.Sub(da).Hours() / 24)
}

// FormatDay форматирует день в каноническую строку "2006-01-02".
func FormatDay(t time.Time) string {
	return DayUTC(t).Format(DayFormat)
}

// ParseDay разбирает строку "2006-01-02" в календарный день UTC.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("некорректный день %q: %w", s, err)
	}
	return t, nil
}

// WeekdayCode возвращает код дня недели ("Mon".."Sun") для даты.
func WeekdayCode(t time.Time) string {
	// time.Weekday().String() даёт "Monday" — берём первые три символа.
	return t.UTC().Weekday().String()[:3]
}

// IsValidWeekdayCode сообщает, является ли строка известным кодом дня недели.
func IsValidWeekdayCode(code string) bool {
	for _, c := range WeekdayCodes {
		if c == code {
			return true
		}
	}
	return false
}

// FormatDateTime форматирует время в формат "02.01.2006 15:04" (UTC).
// Используется для отображения служебных дат (сессии, статистика).
func FormatDateTime(t time.Time) string {
	return t.UTC().Format("02.01.2006 15:04")
}
