// Package admin — handlers.go обрабатывает взаимодействие с админ-панелью.
// Панель работает через Reply Keyboard в личных сообщениях.
// Поток: аутентификация → клавиатура → выбор действия → пошаговый диалог.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-sys/internal/common"
	"serotonyl.ru/habit-sys/internal/features/members"
)

// Handler обрабатывает админ-команды.
type Handler struct {
	service       *Service
	memberService *members.Service
	bot           *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик админ-панели.
func NewHandler(service *Service, memberService *members.Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{
		service:       service,
		memberService: memberService,
		bot:           bot,
	}
}

// HandleAdminMessage обрабатывает любое сообщение от администратора в DM.
// Определяет текущее состояние диалога и маршрутизирует сообщение.
func (h *Handler) HandleAdminMessage(ctx context.Context, chatID int64, userID int64, text string) bool {
	// Проверяем, является ли пользователь админом
	member, err := h.memberService.GetByUserID(ctx, userID)
	if err != nil || !member.IsAdmin {
		return false // Не админ
	}

	// Проверяем состояние диалога
	state := h.service.GetState(userID)

	// Обрабатываем состояние ожидания пароля
	if state != nil && state.State == StateAwaitingPassword {
		h.handlePasswordInput(ctx, chatID, userID, text)
		return true
	}

	// Явный вход в панель
	isEntry := strings.HasPrefix(text, "/login") || text == "Админ" || text == "Панель" ||
		text == "админ" || text == "панель"

	// Проверяем активную сессию
	if !h.service.HasActiveSession(ctx, userID) {
		if !isEntry {
			return false // Без сессии обычные сообщения админа идут общим маршрутом
		}
		h.sendMessage(chatID, "🔐 Введите пароль для доступа к админ-панели:")
		h.service.SetState(userID, StateAwaitingPassword, nil)
		return true
	}

	// Обновляем активность сессии
	h.service.repo.UpdateActivity(ctx, userID)

	// Обрабатываем текущее состояние
	if state != nil {
		switch state.State {
		case StateResetUser:
			h.handleResetUser(ctx, chatID, userID, text)
			return true
		case StateBanUser:
			h.handleBanUser(ctx, chatID, userID, text, true)
			return true
		case StateUnbanUser:
			h.handleBanUser(ctx, chatID, userID, text, false)
			return true
		}
	}

	// Обрабатываем кнопки клавиатуры
	switch text {
	case "Статистика":
		h.handleStats(ctx, chatID)
		return true
	case "Сброс протокола":
		h.sendMessage(chatID, "Введите @username пользователя, чьи отметки нужно удалить:")
		h.service.SetState(userID, StateResetUser, nil)
		return true
	case "Бан":
		h.sendMessage(chatID, "Введите @username пользователя для бана:")
		h.service.SetState(userID, StateBanUser, nil)
		return true
	case "Разбан":
		h.sendMessage(chatID, "Введите @username пользователя для разбана:")
		h.service.SetState(userID, StateUnbanUser, nil)
		return true
	case "Выход":
		h.service.repo.DeactivateSession(ctx, userID)
		h.service.ClearState(userID)
		h.sendRemoveKeyboard(chatID, "Сессия завершена")
		return true
	}

	if isEntry {
		h.showKeyboard(chatID)
		return true
	}

	return false
}

// handlePasswordInput обрабатывает ввод пароля.
func (h *Handler) handlePasswordInput(ctx context.Context, chatID int64, userID int64, password string) {
	err := h.service.VerifyPassword(ctx, userID, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrTooManyAttempts):
			h.sendMessage(chatID, "❌ Слишком много попыток, подождите 1 час")
		case errors.Is(err, common.ErrWrongPassword):
			h.sendMessage(chatID, "❌ Неверный пароль")
		default:
			log.WithError(err).Error("Ошибка аутентификации админа")
			h.sendMessage(chatID, "❌ Ошибка аутентификации")
		}
		h.service.ClearState(userID)
		return
	}

	h.service.ClearState(userID)
	h.sendMessage(chatID, "✅ Аутентификация успешна!")
	h.showKeyboard(chatID)
}

// showKeyboard отображает клавиатуру админ-панели.
func (h *Handler) showKeyboard(chatID int64) {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Статистика"),
			tgbotapi.NewKeyboardButton("Сброс протокола"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Бан"),
			tgbotapi.NewKeyboardButton("Разбан"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Выход"),
		),
	)

	msg := tgbotapi.NewMessage(chatID, "✅ Админ-панель открыта")
	msg.ReplyMarkup = keyboard
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки клавиатуры")
	}
}

// handleStats показывает сводную статистику системы.
func (h *Handler) handleStats(ctx context.Context, chatID int64) {
	stats, err := h.service.CollectStats(ctx)
	if err != nil {
		log.WithError(err).Error("Ошибка сбора статистики")
		h.sendMessage(chatID, "❌ Не удалось собрать статистику")
		return
	}

	h.sendMessage(chatID, fmt.Sprintf(
		"📊 HABIT.SYS // СТАТИСТИКА\n\n"+
			"Участников: %d\n"+
			"Протоколов: %d\n"+
			"Отметок сегодня: %d\n"+
			"Отметок всего: %d",
		stats.Members, stats.Habits, stats.ChecksToday, stats.ChecksTotal))
}

// handleResetUser выполняет принудительный сброс отметок по @username.
func (h *Handler) handleResetUser(ctx context.Context, chatID int64, userID int64, text string) {
	h.service.ClearState(userID)

	username := strings.TrimPrefix(strings.TrimSpace(text), "@")
	title, err := h.service.ForceReset(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUserNotFound):
			h.sendMessage(chatID, "❌ Пользователь не найден")
		case errors.Is(err, common.ErrHabitNotFound):
			h.sendMessage(chatID, "У пользователя нет активного протокола")
		default:
			log.WithError(err).Error("Ошибка принудительного сброса")
			h.sendMessage(chatID, "❌ Ошибка сброса")
		}
		return
	}

	h.sendMessage(chatID, fmt.Sprintf("🧹 Отметки протокола «%s» пользователя @%s удалены", title, username))
}

// handleBanUser банит/разбанивает пользователя по @username.
func (h *Handler) handleBanUser(ctx context.Context, chatID int64, userID int64, text string, banned bool) {
	h.service.ClearState(userID)

	username := strings.TrimPrefix(strings.TrimSpace(text), "@")
	member, err := h.service.SetBanned(ctx, username, banned)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			h.sendMessage(chatID, "❌ Пользователь не найден")
			return
		}
		log.WithError(err).Error("Ошибка изменения бана")
		h.sendMessage(chatID, "❌ Ошибка операции")
		return
	}

	if banned {
		h.sendMessage(chatID, fmt.Sprintf("🚫 %s забанен", member.DisplayName()))
	} else {
		h.sendMessage(chatID, fmt.Sprintf("✅ %s разбанен", member.DisplayName()))
	}
}

// sendRemoveKeyboard отправляет сообщение и убирает клавиатуру.
func (h *Handler) sendRemoveKeyboard(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
