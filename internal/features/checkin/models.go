// Package checkin управляет журналом выполнения привычек (habit_logs):
// отметка дня, снятие отметки, полный сброс протокола.
// models.go описывает структуру записи журнала.
package checkin

import (
	"time"

	"github.com/google/uuid"
)

// Log представляет одну выполненную привычку за один календарный день.
// Инвариант: не больше одной записи на пару (habit_id, день) —
// обеспечивается уникальным индексом в БД.
type Log struct {
	ID          int64     `db:"id"`
	HabitID     uuid.UUID `db:"habit_id"`
	UserID      int64     `db:"user_id"`      // Денормализованный владелец для скоупинга запросов
	CompletedOn time.Time `db:"completed_on"` // Календарный день (DATE), нормализован в UTC
	CreatedAt   time.Time `db:"created_at"`
}

// UserLogDay — пара (протокол, день) из выборки всех логов пользователя.
type UserLogDay struct {
	HabitID     uuid.UUID
	CompletedOn time.Time
}
