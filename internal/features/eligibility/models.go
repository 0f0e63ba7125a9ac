// Package eligibility решает, допущен ли пользователь к созданию
// следующего протокола. models.go описывает производный снимок допуска —
// он пересчитывается на каждый запрос и никогда не сохраняется.
package eligibility

// Snapshot — снимок допуска со всей статистикой для показа прогресса.
type Snapshot struct {
	Eligible            bool   // Допуск получен
	Completions         int    // Отметок по последнему протоколу (уникальных дней)
	Dedication          int    // Преданность в процентах (округлена до целого)
	TotalDays           int    // Дней с создания протокола включительно
	RequiredCompletions int    // Порог отметок
	RequiredDedication  int    // Порог преданности, %
	LatestHabitTitle    string // Название последнего протокола (пусто, если протоколов нет)
}
