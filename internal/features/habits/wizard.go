// Package habits — wizard.go реализует пошаговый мастер создания/редактирования
// протокола (конечный автомат). Мастер задаёт четыре вопроса:
// идентичность → поведение → триггер → частота.
package habits

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"serotonyl.ru/habit-sys/internal/common"
)

// Возможные состояния мастера
const (
	StateNone      = ""                 // Нет активного мастера
	StateIdentity  = "wizard_identity"  // Ждём идентичность («кем хочу стать»)
	StateTitle     = "wizard_title"     // Ждём поведение («что буду делать»)
	StateCue       = "wizard_cue"       // Ждём триггер («когда/где»)
	StateFrequency = "wizard_frequency" // Ждём маску частоты
	StateResetWait = "reset_confirm"    // Ждём подтверждение сброса логов
)

// Время жизни состояния мастера. Брошенный на полпути мастер не должен
// перехватывать сообщения вечно.
const wizardTTL = 10 * time.Minute

// Draft — черновик протокола, собираемый мастером по шагам.
type Draft struct {
	HabitID   *uuid.UUID // nil = создание, иначе — редактирование этого протокола
	Identity  string
	Title     string
	Cue       string
	Frequency []string
}

// WizardState — состояние диалога пользователя с мастером.
type WizardState struct {
	State     string    // Текущее состояние (StateIdentity, ...)
	Draft     *Draft    // Накопленный черновик
	ExpiresAt time.Time // Когда состояние истекает
}

// maxFieldLen — ограничение длины текстовых полей протокола.
const maxFieldLen = 200

// ApplyInput применяет пользовательский ввод к текущему шагу мастера
// и возвращает следующее состояние. Ошибка означает, что ввод отклонён
// и состояние не изменилось.
//
// Последний шаг (частота) возвращает StateNone: черновик готов.
func (w *WizardState) ApplyInput(text string) (string, error) {
	text = strings.TrimSpace(text)

	switch w.State {
	case StateIdentity:
		if err := validateField(text); err != nil {
			return w.State, err
		}
		w.Draft.Identity = text
		w.State = StateTitle

	case StateTitle:
		if err := validateField(text); err != nil {
			return w.State, err
		}
		w.Draft.Title = text
		w.State = StateCue

	case StateCue:
		if err := validateField(text); err != nil {
			return w.State, err
		}
		w.Draft.Cue = text
		w.State = StateFrequency

	case StateFrequency:
		freq, err := ParseFrequencyInput(text)
		if err != nil {
			return w.State, err
		}
		w.Draft.Frequency = freq
		w.State = StateNone
	}

	return w.State, nil
}

// Done сообщает, собран ли черновик полностью.
func (w *WizardState) Done() bool {
	return w.State == StateNone &&
		w.Draft != nil &&
		w.Draft.Identity != "" && w.Draft.Title != "" &&
		w.Draft.Cue != "" && len(w.Draft.Frequency) > 0
}

func validateField(text string) error {
	if text == "" {
		return common.ErrEmptyField
	}
	if len([]rune(text)) > maxFieldLen {
		return common.ErrEmptyField
	}
	return nil
}

// Prompt возвращает текст вопроса для текущего шага мастера.
// Формулировки шагов повторяют методичку HABIT.SYS.
func (w *WizardState) Prompt() string {
	switch w.State {
	case StateIdentity:
		return "🌱 ИДЕНТИЧНОСТЬ: кем ты хочешь стать?\n" +
			"Каждое действие — голос за того человека, которым ты хочешь быть.\n" +
			"Например: бегуном, писателем"
	case StateTitle:
		return "📋 ПОВЕДЕНИЕ: какая привычка?\n" +
			"Конкретно, без размытых целей.\n" +
			"Например: пробежать 1 км, написать 500 слов"
	case StateCue:
		return "⏰ ТРИГГЕР: когда и где?\n" +
			"Намерение реализации: я сделаю [ПОВЕДЕНИЕ] в [ВРЕМЯ] в [МЕСТЕ].\n" +
			"Например: после чистки зубов, в 7 утра на кухне"
	case StateFrequency:
		return "📅 ЧАСТОТА: в какие дни недели?\n" +
			"Перечисли дни (пн, ср, пт) или напиши «все».\n" +
			"Для отмены — !отмена"
	}
	return ""
}
