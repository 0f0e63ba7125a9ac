// Package punchcard — render.go форматирует панчкард в текстовую сетку
// для Telegram. Одна строка — одна неделя, свежие недели сверху.
package punchcard

import (
	"fmt"
	"strings"

	"serotonyl.ru/habit-sys/internal/common"
)

// Символы ячеек: выполнено / пропущено.
const (
	punchedMark   = "■"
	unpunchedMark = "□"
)

// Сколько недель показываем максимум — старые протоколы не должны
// раздувать сообщение за лимиты Telegram.
const maxWeeks = 12

// Render формирует текст панчкарда.
//
// Пример:
//
//	🗂 ПАНЧКАРД: ПРОБЕЖАТЬ 1 КМ
//	Создан: 2026-08-01 · выполнено 18 из 24
//
//	■■□■■■■
//	■■■■■□■
//	...
func Render(title, createdDay string, slots []Slot) string {
	if len(slots) == 0 {
		return fmt.Sprintf("🗂 ПАНЧКАРД: %s\n\nПока ни одной запланированной ячейки.", strings.ToUpper(title))
	}

	punched := 0
	for _, s := range slots {
		if s.Punched {
			punched++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🗂 ПАНЧКАРД: %s\n", strings.ToUpper(title))
	fmt.Fprintf(&b, "Создан: %s · выполнено %d из %d\n\n", createdDay, punched, len(slots))

	// Свежие ячейки сверху, строки по семь ячеек
	display := DisplayOrder(slots)
	weeks := 0
	for i := 0; i < len(display) && weeks < maxWeeks; i += 7 {
		end := i + 7
		if end > len(display) {
			end = len(display)
		}
		for _, s := range display[i:end] {
			if s.Punched {
				b.WriteString(punchedMark)
			} else {
				b.WriteString(unpunchedMark)
			}
		}
		b.WriteString("\n")
		weeks++
	}

	if len(display) > maxWeeks*7 {
		fmt.Fprintf(&b, "… и ещё %d %s\n", len(display)-maxWeeks*7,
			common.PluralizeDays(len(display)-maxWeeks*7))
	}

	return strings.TrimRight(b.String(), "\n")
}
