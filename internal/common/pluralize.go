// Package common — pluralize.go содержит вспомогательные функции
// для правильного склонения русских числительных.
package common

import (
	"fmt"
	"math"
)

// PluralizeDays возвращает правильную форму слова «день» для числа n.
//
// Правила:
//   - 1, 21, 31 → "день"
//   - 2-4, 22-24 → "дня"
//   - 5-20, 25-30 → "дней"
func PluralizeDays(n int) string {
	absN := int(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return "день"
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "дня"
	}
	return "дней"
}

// PluralizeMarks возвращает правильную форму слова «отметка» для числа n.
//
// Примеры:
//
//	PluralizeMarks(1)  → "отметка"
//	PluralizeMarks(3)  → "отметки"
//	PluralizeMarks(11) → "отметок"
func PluralizeMarks(n int) string {
	absN := int(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return "отметка"
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "отметки"
	}
	return "отметок"
}

// FormatStreak форматирует огонек в читабельную строку.
// Пример: FormatStreak(8) → "8 дней"
func FormatStreak(n int) string {
	return fmt.Sprintf("%d %s", n, PluralizeDays(n))
}
