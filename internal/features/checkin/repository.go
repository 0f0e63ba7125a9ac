// Package checkin — repository.go выполняет операции с таблицей habit_logs.
// Все мутации идемпотентны: повторная вставка того же дня — no-op
// (ON CONFLICT DO NOTHING), удаление несуществующей записи — не ошибка.
package checkin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/habit-sys/internal/common"
)

// Repository предоставляет методы для работы с таблицей habit_logs.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий журнала.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert записывает отметку за день. Дубликат дня молча игнорируется —
// конкурентный двойной тап по кнопке не должен приводить к ошибке.
func (r *Repository) Insert(ctx context.Context, habitID uuid.UUID, userID int64, day time.Time) error {
	query := `
		INSERT INTO habit_logs (habit_id, user_id, completed_on)
		VALUES ($1, $2, $3)
		ON CONFLICT (habit_id, completed_on) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, habitID, userID, common.DayUTC(day))
	if err != nil {
		return fmt.Errorf("ошибка записи отметки: %w", err)
	}
	return nil
}

// DeleteDay снимает отметку за день. Отсутствие записи — не ошибка.
func (r *Repository) DeleteDay(ctx context.Context, habitID uuid.UUID, userID int64, day time.Time) error {
	query := `
		DELETE FROM habit_logs
		WHERE habit_id = $1 AND user_id = $2 AND completed_on = $3
	`
	_, err := r.db.Exec(ctx, query, habitID, userID, common.DayUTC(day))
	if err != nil {
		return fmt.Errorf("ошибка снятия отметки: %w", err)
	}
	return nil
}

// DeleteAll удаляет ВСЕ отметки протокола (полный сброс).
// Сам протокол не удаляется.
func (r *Repository) DeleteAll(ctx context.Context, habitID uuid.UUID, userID int64) error {
	query := `DELETE FROM habit_logs WHERE habit_id = $1 AND user_id = $2`
	_, err := r.db.Exec(ctx, query, habitID, userID)
	if err != nil {
		return fmt.Errorf("ошибка сброса протокола: %w", err)
	}
	return nil
}

// HasDay проверяет, есть ли отметка за день.
func (r *Repository) HasDay(ctx context.Context, habitID uuid.UUID, userID int64, day time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM habit_logs
			WHERE habit_id = $1 AND user_id = $2 AND completed_on = $3
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, habitID, userID, common.DayUTC(day)).Scan(&exists); err != nil {
		return false, fmt.Errorf("ошибка проверки отметки: %w", err)
	}
	return exists, nil
}

// LogDays возвращает все дни отметок протокола. Порядок не гарантируется —
// алгоритмы ядра обязаны сортировать сами.
func (r *Repository) LogDays(ctx context.Context, habitID uuid.UUID, userID int64) ([]time.Time, error) {
	query := `SELECT completed_on FROM habit_logs WHERE habit_id = $1 AND user_id = $2`
	rows, err := r.db.Query(ctx, query, habitID, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки отметок: %w", err)
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("ошибка сканирования отметки: %w", err)
		}
		days = append(days, common.DayUTC(d))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return days, nil
}

// AllLogDaysForUser возвращает пары (протокол, день) по всем протоколам
// пользователя. Вызывающая сторона сама фильтрует по нужному протоколу.
func (r *Repository) AllLogDaysForUser(ctx context.Context, userID int64) ([]UserLogDay, error) {
	query := `SELECT habit_id, completed_on FROM habit_logs WHERE user_id = $1`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки отметок пользователя: %w", err)
	}
	defer rows.Close()

	var out []UserLogDay
	for rows.Next() {
		var u UserLogDay
		if err := rows.Scan(&u.HabitID, &u.CompletedOn); err != nil {
			return nil, fmt.Errorf("ошибка сканирования: %w", err)
		}
		u.CompletedOn = common.DayUTC(u.CompletedOn)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}

// CountOnDay возвращает число отметок всех пользователей за день.
// Используется в ночной статистике и админке.
func (r *Repository) CountOnDay(ctx context.Context, day time.Time) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM habit_logs WHERE completed_on = $1`
	if err := r.db.QueryRow(ctx, query, common.DayUTC(day)).Scan(&n); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта отметок за день: %w", err)
	}
	return n, nil
}

// CountAll возвращает общее число отметок.
func (r *Repository) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM habit_logs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта отметок: %w", err)
	}
	return n, nil
}
