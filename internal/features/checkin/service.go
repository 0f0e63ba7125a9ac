// Package checkin — service.go содержит логику переключателя отметки.
// Семантика «удалить-или-вставить»: уже отмечено сегодня → снимаем,
// не отмечено → ставим. Оба направления идемпотентны.
package checkin

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-sys/internal/common"
)

// Service управляет журналом отметок.
type Service struct {
	repo *Repository
}

// NewService создаёт новый сервис отметок.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// ToggleToday переключает отметку за сегодня.
// Возвращает итоговое состояние: true — отмечено, false — снято.
func (s *Service) ToggleToday(ctx context.Context, habitID uuid.UUID, userID int64) (bool, error) {
	today := common.Today()

	checked, err := s.repo.HasDay(ctx, habitID, userID, today)
	if err != nil {
		return false, err
	}

	if checked {
		if err := s.repo.DeleteDay(ctx, habitID, userID, today); err != nil {
			return true, err
		}
		log.WithFields(log.Fields{
			"user_id":  userID,
			"habit_id": habitID,
			"day":      common.FormatDay(today),
		}).Debug("Отметка снята")
		return false, nil
	}

	if err := s.repo.Insert(ctx, habitID, userID, today); err != nil {
		return false, err
	}
	log.WithFields(log.Fields{
		"user_id":  userID,
		"habit_id": habitID,
		"day":      common.FormatDay(today),
	}).Debug("Отметка записана")
	return true, nil
}

// CompletedToday проверяет, отмечен ли сегодняшний день.
func (s *Service) CompletedToday(ctx context.Context, habitID uuid.UUID, userID int64) (bool, error) {
	return s.repo.HasDay(ctx, habitID, userID, common.Today())
}

// LogDays возвращает все дни отметок протокола.
func (s *Service) LogDays(ctx context.Context, habitID uuid.UUID, userID int64) ([]time.Time, error) {
	return s.repo.LogDays(ctx, habitID, userID)
}

// CountOnDay возвращает количество отметок всех пользователей за день.
func (s *Service) CountOnDay(ctx context.Context, day time.Time) (int, error) {
	return s.repo.CountOnDay(ctx, day)
}

// ResetAll удаляет все отметки протокола (полный сброс, протокол остаётся).
func (s *Service) ResetAll(ctx context.Context, habitID uuid.UUID, userID int64) error {
	if err := s.repo.DeleteAll(ctx, habitID, userID); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"user_id":  userID,
		"habit_id": habitID,
	}).Info("Протокол сброшен (все отметки удалены)")
	return nil
}
