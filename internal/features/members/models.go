// Package members управляет пользователями бота: регистрацией и флагами.
// models.go описывает структуры данных для работы с таблицей members.
package members

import "time"

// Member представляет пользователя бота в базе данных.
// Запись создаётся при первом сообщении пользователя в личку бота.
type Member struct {
	ID             int64      `db:"id"`               // Автоинкрементный ID записи в БД
	UserID         int64      `db:"user_id"`          // Telegram user ID (уникальный)
	Username       string     `db:"username"`         // @username (может быть пустым)
	FirstName      string     `db:"first_name"`       // Имя пользователя
	LastName       string     `db:"last_name"`        // Фамилия (может быть пустой)
	IsAdmin        bool       `db:"is_admin"`         // Флаг администратора
	IsBanned       bool       `db:"is_banned"`        // Флаг бана
	LastReminderOn *time.Time `db:"last_reminder_on"` // День последнего напоминания (не чаще раза в день)
	JoinedAt       time.Time  `db:"joined_at"`        // Когда впервые написал боту
	CreatedAt      time.Time  `db:"created_at"`       // Когда запись создана в БД
	UpdatedAt      time.Time  `db:"updated_at"`       // Последнее обновление записи
}

// UpdateInfo содержит данные для обновления информации о пользователе.
// Используется, когда имя/username пользователя могли измениться.
type UpdateInfo struct {
	Username  string // Новый @username
	FirstName string // Новое имя
	LastName  string // Новая фамилия
}

// DisplayName возвращает отображаемое имя пользователя.
// Если есть @username — возвращает его, иначе — имя + фамилию.
func (m *Member) DisplayName() string {
	if m.Username != "" {
		return "@" + m.Username
	}
	name := m.FirstName
	if m.LastName != "" {
		name += " " + m.LastName
	}
	return name
}
