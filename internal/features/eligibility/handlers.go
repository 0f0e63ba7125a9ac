// Package eligibility — handlers.go обрабатывает команду !допуск.
// Показывает прогресс к допуску: отметки и преданность против порогов.
package eligibility

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-sys/internal/common"
)

// Handler обрабатывает команды допуска.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт новый обработчик допуска.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleDopusk обрабатывает команду !допуск.
//
// Формат ответа (допуск не получен):
//
//	🎯 ДОПУСК КО ВТОРОМУ ПРОТОКОЛУ
//	Протокол: «Пробежать 1 км»
//	Отметки: 6/10
//	Преданность: 75% (нужно 90%)
//	Статус: ЗАБЛОКИРОВАН
func (h *Handler) HandleDopusk(ctx context.Context, chatID int64, userID int64) {
	snap, err := h.service.Check(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Ошибка расчёта допуска")
		h.sendMessage(chatID, "❌ Ошибка получения данных допуска")
		return
	}

	h.sendMessage(chatID, FormatSnapshot(snap))
}

// FormatSnapshot форматирует снимок допуска для показа пользователю.
// Используется и командой !допуск, и отказом в !новый.
func FormatSnapshot(snap Snapshot) string {
	if snap.LatestHabitTitle == "" {
		return "🎯 У тебя ещё нет ни одного протокола — первый создаётся без допуска.\nНачни: !новый"
	}

	status := "ЗАБЛОКИРОВАН 🔒"
	hint := "Продолжай отмечаться каждый день."
	if snap.Eligible {
		status = "ПОЛУЧЕН ✅"
		hint = "Можно создать следующий протокол: !новый"
	}

	return fmt.Sprintf(
		"🎯 ДОПУСК КО ВТОРОМУ ПРОТОКОЛУ\n\n"+
			"Протокол: «%s»\n"+
			"Отметки: %d/%d (%s за %d %s)\n"+
			"Преданность: %d%% (нужно %d%%)\n\n"+
			"Статус: %s\n%s",
		snap.LatestHabitTitle,
		snap.Completions, snap.RequiredCompletions,
		common.PluralizeMarks(snap.Completions), snap.TotalDays, common.PluralizeDays(snap.TotalDays),
		snap.Dedication, snap.RequiredDedication,
		status, hint,
	)
}

// sendMessage — вспомогательный метод для отправки текстовых сообщений.
func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
