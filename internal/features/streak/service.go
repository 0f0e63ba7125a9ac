// Package streak — service.go связывает чистый расчёт огонька
// с источником дней отметок.
package streak

import (
	"context"
	"time"

	"github.com/google/uuid"

	"serotonyl.ru/habit-sys/internal/common"
)

// LogSource — источник дней отметок. Реализуется репозиторием журнала
// (checkin.Repository); интерфейс здесь, чтобы сервис не зависел от БД
// и легко подменялся в тестах.
type LogSource interface {
	LogDays(ctx context.Context, habitID uuid.UUID, userID int64) ([]time.Time, error)
}

// Service вычисляет огонек по данным журнала отметок.
type Service struct {
	logs LogSource
}

// NewService создаёт новый сервис огонька.
func NewService(logs LogSource) *Service {
	return &Service{logs: logs}
}

// CurrentForHabit возвращает текущий огонек протокола.
func (s *Service) CurrentForHabit(ctx context.Context, habitID uuid.UUID, userID int64) (int, error) {
	days, err := s.logs.LogDays(ctx, habitID, userID)
	if err != nil {
		return 0, err
	}
	return Current(days, common.Today()), nil
}
