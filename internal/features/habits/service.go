// Package habits — service.go содержит бизнес-логику протоколов:
// хранение состояний мастера (in-memory конечный автомат, как в админке)
// и сохранение готовых черновиков.
package habits

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Service управляет протоколами привычек.
type Service struct {
	repo     *Repository
	states   map[int64]*WizardState // Состояния мастеров (in-memory)
	statesMu sync.RWMutex
}

// NewService создаёт новый сервис протоколов.
func NewService(repo *Repository) *Service {
	return &Service{
		repo:   repo,
		states: make(map[int64]*WizardState),
	}
}

// GetLatest возвращает активный протокол пользователя.
func (s *Service) GetLatest(ctx context.Context, userID int64) (*Habit, error) {
	return s.repo.Latest(ctx, userID)
}

// GetByID возвращает протокол по ID в рамках владельца.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID int64) (*Habit, error) {
	return s.repo.GetByID(ctx, id, userID)
}

// AllLatest возвращает активные протоколы всех пользователей (для напоминаний).
func (s *Service) AllLatest(ctx context.Context) ([]*Habit, error) {
	return s.repo.AllLatest(ctx)
}

// StartCreateWizard запускает мастер создания протокола.
// Проверку допуска делает вызывающая сторона (bot.go) ДО запуска мастера.
func (s *Service) StartCreateWizard(userID int64) *WizardState {
	state := &WizardState{
		State:     StateIdentity,
		Draft:     &Draft{},
		ExpiresAt: time.Now().Add(wizardTTL),
	}
	s.setState(userID, state)
	return state
}

// StartEditWizard запускает мастер редактирования существующего протокола.
// Черновик предзаполняется текущими значениями: пользователь проходит
// те же четыре шага, видя прежний ответ в подсказке.
func (s *Service) StartEditWizard(userID int64, h *Habit) *WizardState {
	id := h.ID
	state := &WizardState{
		State: StateIdentity,
		Draft: &Draft{
			HabitID:   &id,
			Identity:  h.Identity,
			Title:     h.Title,
			Cue:       h.Cue,
			Frequency: append([]string(nil), h.Frequency...),
		},
		ExpiresAt: time.Now().Add(wizardTTL),
	}
	s.setState(userID, state)
	return state
}

// StartResetConfirm запускает шаг подтверждения сброса логов.
func (s *Service) StartResetConfirm(userID int64) {
	s.setState(userID, &WizardState{
		State:     StateResetWait,
		Draft:     &Draft{},
		ExpiresAt: time.Now().Add(wizardTTL),
	})
}

// GetState возвращает текущее состояние мастера или nil.
func (s *Service) GetState(userID int64) *WizardState {
	s.statesMu.RLock()
	defer s.statesMu.RUnlock()

	state, ok := s.states[userID]
	if !ok {
		return nil
	}
	// Проверяем истечение
	if time.Now().After(state.ExpiresAt) {
		return nil
	}
	return state
}

// ClearState сбрасывает состояние мастера.
func (s *Service) ClearState(userID int64) {
	s.statesMu.Lock()
	defer s.statesMu.Unlock()
	delete(s.states, userID)
}

func (s *Service) setState(userID int64, state *WizardState) {
	s.statesMu.Lock()
	defer s.statesMu.Unlock()
	s.states[userID] = state
}

// SaveDraft сохраняет готовый черновик: создаёт новый протокол
// или обновляет существующий (режим редактирования).
func (s *Service) SaveDraft(ctx context.Context, userID int64, d *Draft) (*Habit, error) {
	freq, err := NormalizeFrequency(d.Frequency)
	if err != nil {
		return nil, err
	}

	if d.HabitID != nil {
		// Редактирование: created_at не меняется
		existing, err := s.repo.GetByID(ctx, *d.HabitID, userID)
		if err != nil {
			return nil, err
		}
		existing.Title = d.Title
		existing.Identity = d.Identity
		existing.Cue = d.Cue
		existing.Frequency = freq
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}

		log.WithFields(log.Fields{
			"user_id":  userID,
			"habit_id": existing.ID,
		}).Info("Протокол обновлён")
		return existing, nil
	}

	h := &Habit{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     d.Title,
		Identity:  d.Identity,
		Cue:       d.Cue,
		Frequency: freq,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("ошибка сохранения протокола: %w", err)
	}

	log.WithFields(log.Fields{
		"user_id":  userID,
		"habit_id": h.ID,
		"title":    h.Title,
	}).Info("Новый протокол создан")

	return h, nil
}
