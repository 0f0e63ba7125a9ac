// Package habits управляет протоколами привычек (HABIT.SYS: один активный
// протокол на пользователя). models.go описывает структуру протокола
// и работу с маской частоты.
package habits

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"serotonyl.ru/habit-sys/internal/common"
)

// Habit представляет протокол привычки пользователя.
// Протокол описывает желаемую идентичность, само поведение, триггер (cue)
// и маску частоты — дни недели, в которые привычка запланирована.
type Habit struct {
	ID        uuid.UUID `db:"id"`         // Уникальный ID протокола
	UserID    int64     `db:"user_id"`    // Владелец (Telegram user ID)
	Title     string    `db:"title"`      // Поведение: "Пробежать 1 км"
	Identity  string    `db:"identity"`   // Идентичность: "бегун"
	Cue       string    `db:"cue"`        // Триггер: "после чистки зубов"
	Frequency []string  `db:"frequency"`  // Маска частоты: ["Mon", "Wed", ...]
	CreatedAt time.Time `db:"created_at"` // Дата создания — неизменяемая
	UpdatedAt time.Time `db:"updated_at"`
}

// DefaultFrequency возвращает маску по умолчанию — все семь дней.
func DefaultFrequency() []string {
	out := make([]string, len(common.WeekdayCodes))
	copy(out, common.WeekdayCodes)
	return out
}

// ScheduledOn сообщает, запланирована ли привычка на указанный день.
// Пустая маска трактуется как «ежедневно». Неизвестные коды в маске
// игнорируются (политика терпимости к legacy-данным).
func (h *Habit) ScheduledOn(day time.Time) bool {
	if len(h.Frequency) == 0 {
		return true
	}
	code := common.WeekdayCode(day)
	for _, c := range h.Frequency {
		if c == code {
			return true
		}
	}
	return false
}

// NormalizeFrequency проверяет и нормализует маску частоты:
// убирает дубликаты и сортирует в порядке Пн..Вс.
// Неизвестный код — common.ErrInvalidFrequency, пустая маска — common.ErrEmptyFrequency.
func NormalizeFrequency(codes []string) ([]string, error) {
	seen := make(map[string]bool, len(codes))
	for _, c := range codes {
		if !common.IsValidWeekdayCode(c) {
			return nil, common.ErrInvalidFrequency
		}
		seen[c] = true
	}
	if len(seen) == 0 {
		return nil, common.ErrEmptyFrequency
	}

	out := make([]string, 0, len(seen))
	for _, c := range common.WeekdayCodes {
		if seen[c] {
			out = append(out, c)
		}
	}
	return out, nil
}

// ruDayAliases — русские сокращения дней недели, которые принимает мастер.
var ruDayAliases = map[string]string{
	"пн": "Mon", "вт": "Tue", "ср": "Wed", "чт": "Thu",
	"пт": "Fri", "сб": "Sat", "вс": "Sun",
}

// ParseFrequencyInput разбирает пользовательский ввод маски частоты.
// Принимает коды через запятую или пробел, по-русски или по-английски,
// регистр не важен. Слово «все» (или "all") — все семь дней.
//
// Примеры:
//
//	ParseFrequencyInput("пн, ср, пт") → ["Mon", "Wed", "Fri"]
//	ParseFrequencyInput("Mon Tue")    → ["Mon", "Tue"]
//	ParseFrequencyInput("все")        → все семь дней
func ParseFrequencyInput(text string) ([]string, error) {
	text = strings.TrimSpace(strings.ToLower(text))
	if text == "все" || text == "всё" || text == "all" {
		return DefaultFrequency(), nil
	}

	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})

	codes := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		if en, ok := ruDayAliases[f]; ok {
			codes = append(codes, en)
			continue
		}
		// Английские коды приводим к виду "Mon"
		if len(f) >= 3 {
			codes = append(codes, strings.ToUpper(f[:1])+f[1:3])
		} else {
			codes = append(codes, f)
		}
	}

	return NormalizeFrequency(codes)
}

// FormatFrequency форматирует маску для показа пользователю.
// Полная маска показывается как «каждый день».
func FormatFrequency(freq []string) string {
	if len(freq) == 0 || len(freq) == len(common.WeekdayCodes) {
		return "каждый день"
	}
	ru := map[string]string{
		"Mon": "Пн", "Tue": "Вт", "Wed": "Ср", "Thu": "Чт",
		"Fri": "Пт", "Sat": "Сб", "Sun": "Вс",
	}
	out := make([]string, 0, len(freq))
	for _, c := range freq {
		if r, ok := ru[c]; ok {
			out = append(out, r)
		}
	}
	return strings.Join(out, ", ")
}
