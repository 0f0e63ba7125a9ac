// Package members — service.go содержит бизнес-логику управления пользователями.
// Сервис координирует регистрацию, проверку доступа и обновление информации.
package members

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-sys/internal/common"
)

// Service управляет пользователями бота.
type Service struct {
	repo *Repository // Репозиторий для работы с таблицей members
}

// NewService создаёт новый сервис пользователей.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// EnsureMember гарантирует, что пользователь есть в базе.
// Если пользователь уже есть — обновляет его данные (имя могло измениться).
// Если пользователь новый — создаёт запись.
func (s *Service) EnsureMember(ctx context.Context, userID int64, username, firstName, lastName string) error {
	existing, err := s.repo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, common.ErrUserNotFound) {
		return err
	}

	if existing != nil {
		return s.repo.UpdateInfo(ctx, userID, UpdateInfo{
			Username:  username,
			FirstName: firstName,
			LastName:  lastName,
		})
	}

	member := &Member{
		UserID:    userID,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		IsAdmin:   false,
		IsBanned:  false,
	}
	if err := s.repo.Create(ctx, member); err != nil {
		return fmt.Errorf("ошибка регистрации нового пользователя: %w", err)
	}

	log.WithFields(log.Fields{
		"user_id":  userID,
		"username": username,
	}).Info("Новый пользователь зарегистрирован")

	return nil
}

// BootstrapAdmins выставляет флаг is_admin пользователям из ADMIN_IDS.
// Пользователь мог ещё не писать боту — тогда создаём запись заранее.
func (s *Service) BootstrapAdmins(ctx context.Context, adminIDs []int64) error {
	for _, id := range adminIDs {
		exists, err := s.repo.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			if err := s.repo.Create(ctx, &Member{UserID: id, IsAdmin: true}); err != nil {
				return err
			}
			continue
		}
		if err := s.repo.SetAdmin(ctx, id, true); err != nil {
			return err
		}
	}
	return nil
}

// IsMember проверяет, зарегистрирован ли пользователь.
func (s *Service) IsMember(ctx context.Context, userID int64) (bool, error) {
	return s.repo.Exists(ctx, userID)
}

// GetByUserID возвращает пользователя по его Telegram user ID.
func (s *Service) GetByUserID(ctx context.Context, userID int64) (*Member, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// GetByUsername возвращает пользователя по @username (без @).
func (s *Service) GetByUsername(ctx context.Context, username string) (*Member, error) {
	return s.repo.GetByUsername(ctx, username)
}

// SetBanned блокирует или разблокирует пользователя.
func (s *Service) SetBanned(ctx context.Context, userID int64, banned bool) error {
	return s.repo.SetBanned(ctx, userID, banned)
}
