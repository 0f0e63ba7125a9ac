// Package habits — repository.go выполняет операции с таблицей habits.
// Все запросы ЖЁСТКО скоупятся по user_id владельца: ID протокола,
// пришедший от клиента, сам по себе не даёт доступа к чужим данным.
package habits

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/habit-sys/internal/common"
)

// Repository предоставляет методы для работы с таблицей habits.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий протоколов.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый протокол.
func (r *Repository) Create(ctx context.Context, h *Habit) error {
	query := `
		INSERT INTO habits (id, user_id, title, identity, cue, frequency)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, h.ID, h.UserID, h.Title, h.Identity, h.Cue, h.Frequency)
	if err != nil {
		return fmt.Errorf("ошибка создания протокола: %w", err)
	}
	return nil
}

// Update обновляет изменяемые поля протокола (title/identity/cue/frequency).
// created_at не трогаем никогда — от него считаются допуск и панчкард.
func (r *Repository) Update(ctx context.Context, h *Habit) error {
	query := `
		UPDATE habits
		SET title = $3, identity = $4, cue = $5, frequency = $6, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`
	tag, err := r.db.Exec(ctx, query, h.ID, h.UserID, h.Title, h.Identity, h.Cue, h.Frequency)
	if err != nil {
		return fmt.Errorf("ошибка обновления протокола: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("протокол не найден (id=%s): %w", h.ID, common.ErrHabitNotFound)
	}
	return nil
}

// GetByID возвращает протокол по ID в рамках владельца.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID, userID int64) (*Habit, error) {
	query := `
		SELECT id, user_id, title, identity, cue, frequency, created_at, updated_at
		FROM habits
		WHERE id = $1 AND user_id = $2
	`
	var h Habit
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&h.ID, &h.UserID, &h.Title, &h.Identity, &h.Cue, &h.Frequency,
		&h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("протокол не найден (id=%s): %w", id, common.ErrHabitNotFound)
		}
		return nil, fmt.Errorf("ошибка чтения протокола (id=%s): %w", id, err)
	}
	return &h, nil
}

// Latest возвращает последний созданный протокол пользователя —
// он и считается активным. Если протоколов нет — common.ErrHabitNotFound.
func (r *Repository) Latest(ctx context.Context, userID int64) (*Habit, error) {
	query := `
		SELECT id, user_id, title, identity, cue, frequency, created_at, updated_at
		FROM habits
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	var h Habit
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&h.ID, &h.UserID, &h.Title, &h.Identity, &h.Cue, &h.Frequency,
		&h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("у пользователя %d нет протоколов: %w", userID, common.ErrHabitNotFound)
		}
		return nil, fmt.Errorf("ошибка чтения активного протокола (user_id=%d): %w", userID, err)
	}
	return &h, nil
}

// AllLatest возвращает активный (последний созданный) протокол каждого
// пользователя. Используется планировщиком напоминаний.
func (r *Repository) AllLatest(ctx context.Context) ([]*Habit, error) {
	query := `
		SELECT DISTINCT ON (user_id)
		       id, user_id, title, identity, cue, frequency, created_at, updated_at
		FROM habits
		ORDER BY user_id, created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки активных протоколов: %w", err)
	}
	defer rows.Close()

	var out []*Habit
	for rows.Next() {
		var h Habit
		if err := rows.Scan(
			&h.ID, &h.UserID, &h.Title, &h.Identity, &h.Cue, &h.Frequency,
			&h.CreatedAt, &h.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования протокола: %w", err)
		}
		out = append(out, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}

// CountAll возвращает общее число протоколов. Используется в админ-статистике.
func (r *Repository) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM habits`).Scan(&n); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта протоколов: %w", err)
	}
	return n, nil
}
