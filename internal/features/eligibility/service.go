// Package eligibility — service.go собирает данные для расчёта допуска:
// последний протокол и его отметки.
package eligibility

import (
	"context"
	"errors"
	"time"

	"serotonyl.ru/habit-sys/internal/common"
	"serotonyl.ru/habit-sys/internal/config"
	"serotonyl.ru/habit-sys/internal/features/checkin"
	"serotonyl.ru/habit-sys/internal/features/habits"
)

// Service вычисляет допуск ко второму протоколу.
type Service struct {
	habitRepo *habits.Repository
	logRepo   *checkin.Repository
	cfg       *config.Config
}

// NewService создаёт новый сервис допуска.
func NewService(habitRepo *habits.Repository, logRepo *checkin.Repository, cfg *config.Config) *Service {
	return &Service{habitRepo: habitRepo, logRepo: logRepo, cfg: cfg}
}

// Check возвращает снимок допуска пользователя.
// Отсутствие протоколов — валидное состояние (первый всегда разрешён),
// не ошибка.
func (s *Service) Check(ctx context.Context, userID int64) (Snapshot, error) {
	latest, err := s.habitRepo.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrHabitNotFound) {
			return Evaluate(nil, nil, common.Today(),
				s.cfg.EligibilityMinCompletions, s.cfg.EligibilityMinDedication), nil
		}
		return Snapshot{}, err
	}

	// Берём все отметки пользователя и фильтруем по последнему протоколу:
	// у пользователя может быть несколько протоколов, допуск считается
	// только по активному.
	all, err := s.logRepo.AllLogDaysForUser(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	days := make([]time.Time, 0, len(all))
	for _, l := range all {
		if l.HabitID == latest.ID {
			days = append(days, l.CompletedOn)
		}
	}

	return Evaluate(latest, days, common.Today(),
		s.cfg.EligibilityMinCompletions, s.cfg.EligibilityMinDedication), nil
}
