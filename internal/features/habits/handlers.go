// Package habits — handlers.go обрабатывает команды протокола:
// дашборд (!протокол), отметку (!чек), огонек, панчкард, мастер
// создания/редактирования и сброс. Это «страничный» слой: достаёт
// строки через репозитории и скармливает их чистым расчётам.
package habits

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-sys/internal/common"
	"serotonyl.ru/habit-sys/internal/features/checkin"
	"serotonyl.ru/habit-sys/internal/features/punchcard"
	"serotonyl.ru/habit-sys/internal/features/streak"
)

// Handler обрабатывает команды протокола.
type Handler struct {
	service       *Service
	checkinSvc    *checkin.Service
	streakService *streak.Service
	bot           *tgbotapi.BotAPI
}

// NewHandler создаёт новый обработчик протоколов.
func NewHandler(service *Service, checkinSvc *checkin.Service, streakService *streak.Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{
		service:       service,
		checkinSvc:    checkinSvc,
		streakService: streakService,
		bot:           bot,
	}
}

// HandleProtocol обрабатывает команду !протокол — дашборд активного протокола.
//
// Формат ответа:
//
//	📟 HABIT.SYS // АКТИВНЫЙ ПРОТОКОЛ
//	«Пробежать 1 км»
//	Идентичность: бегун
//	Триггер: после чистки зубов
//	Частота: Пн, Ср, Пт
//	Сегодня: ✅ отмечено
//	🔥 Огонек: 8 дней
func (h *Handler) HandleProtocol(ctx context.Context, chatID int64, userID int64) {
	habit, err := h.service.GetLatest(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrHabitNotFound) {
			h.sendMessage(chatID, "🌱 Ты ещё ничего не посадил.\nСоздай первый протокол: !новый")
			return
		}
		log.WithError(err).Error("Ошибка чтения активного протокола")
		h.sendMessage(chatID, "❌ Ошибка получения протокола")
		return
	}

	checked, err := h.checkinSvc.CompletedToday(ctx, habit.ID, userID)
	if err != nil {
		log.WithError(err).Error("Ошибка проверки отметки")
		h.sendMessage(chatID, "❌ Ошибка получения протокола")
		return
	}

	current, err := h.streakService.CurrentForHabit(ctx, habit.ID, userID)
	if err != nil {
		log.WithError(err).Error("Ошибка расчёта огонька")
		h.sendMessage(chatID, "❌ Ошибка получения протокола")
		return
	}

	todayLine := "⬜ не отмечено — !чек"
	if checked {
		todayLine = "✅ отмечено"
	}

	text := fmt.Sprintf(
		"📟 HABIT.SYS // АКТИВНЫЙ ПРОТОКОЛ\n\n"+
			"«%s»\n"+
			"Идентичность: %s\n"+
			"Триггер: %s\n"+
			"Частота: %s\n\n"+
			"Сегодня: %s\n"+
			"🔥 Огонек: %s",
		habit.Title, habit.Identity, habit.Cue, FormatFrequency(habit.Frequency),
		todayLine, common.FormatStreak(current),
	)
	h.sendMessage(chatID, text)
}

// HandleCheck обрабатывает команду !чек — переключатель отметки за сегодня.
// Отвечаем итоговым состоянием из БД, а не предположением: если вставка
// не прошла, пользователь не должен увидеть ложное «отмечено».
func (h *Handler) HandleCheck(ctx context.Context, chatID int64, userID int64) {
	habit, err := h.service.GetLatest(ctx, userID)
	if err != nil {
		h.sendMessage(chatID, "🌱 Нет активного протокола. Создай: !новый")
		return
	}

	checked, err := h.checkinSvc.ToggleToday(ctx, habit.ID, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка переключения отметки")
		h.sendMessage(chatID, "❌ Не удалось записать отметку, попробуй ещё раз")
		return
	}

	if checked {
		current, err := h.streakService.CurrentForHabit(ctx, habit.ID, userID)
		if err != nil {
			log.WithError(err).Warn("Огонек не посчитался после отметки")
			h.sendMessage(chatID, fmt.Sprintf("✅ «%s» отмечено за сегодня!", habit.Title))
			return
		}
		h.sendMessage(chatID, fmt.Sprintf("✅ «%s» отмечено за сегодня!\n🔥 Огонек: %s",
			habit.Title, common.FormatStreak(current)))
		return
	}

	h.sendMessage(chatID, fmt.Sprintf("↩️ Отметка за сегодня снята («%s»)", habit.Title))
}

// HandleOgonek обрабатывает команду !огонек — текущая серия.
func (h *Handler) HandleOgonek(ctx context.Context, chatID int64, userID int64) {
	habit, err := h.service.GetLatest(ctx, userID)
	if err != nil {
		h.sendMessage(chatID, "🌱 Нет активного протокола. Создай: !новый")
		return
	}

	current, err := h.streakService.CurrentForHabit(ctx, habit.ID, userID)
	if err != nil {
		log.WithError(err).Error("Ошибка расчёта огонька")
		h.sendMessage(chatID, "❌ Ошибка получения данных огонька")
		return
	}

	if current == 0 {
		h.sendMessage(chatID, fmt.Sprintf(
			"🔥 Огонек протокола «%s»\n\nСерия: 0 дней.\nОтметь сегодняшний день (!чек), чтобы зажечь огонек!",
			habit.Title))
		return
	}

	h.sendMessage(chatID, fmt.Sprintf(
		"🔥 Огонек протокола «%s»\n\nСерия: %s подряд.\nНе прерывай цепочку!",
		habit.Title, common.FormatStreak(current)))
}

// HandlePunchcard обрабатывает команду !панчкард — календарная сетка истории.
func (h *Handler) HandlePunchcard(ctx context.Context, chatID int64, userID int64) {
	habit, err := h.service.GetLatest(ctx, userID)
	if err != nil {
		h.sendMessage(chatID, "🌱 Нет активного протокола. Создай: !новый")
		return
	}

	days, err := h.checkinSvc.LogDays(ctx, habit.ID, userID)
	if err != nil {
		log.WithError(err).Error("Ошибка выборки отметок для панчкарда")
		h.sendMessage(chatID, "❌ Ошибка построения панчкарда")
		return
	}

	slots := punchcard.Generate(habit.CreatedAt, habit.Frequency, days, common.Today())
	h.sendMessage(chatID, punchcard.Render(habit.Title, common.FormatDay(habit.CreatedAt), slots))
}

// StartNewWizard запускает мастер создания. Проверку допуска делает bot.go.
func (h *Handler) StartNewWizard(chatID int64, userID int64) {
	state := h.service.StartCreateWizard(userID)
	h.sendMessage(chatID, "🆕 СОЗДАНИЕ ПРОТОКОЛА\nЧетыре шага. Для отмены — !отмена\n\n"+state.Prompt())
}

// HandleEdit обрабатывает команду !изменить — мастер редактирования.
func (h *Handler) HandleEdit(ctx context.Context, chatID int64, userID int64) {
	habit, err := h.service.GetLatest(ctx, userID)
	if err != nil {
		h.sendMessage(chatID, "🌱 Нечего менять — протокола ещё нет. Создай: !новый")
		return
	}

	state := h.service.StartEditWizard(userID, habit)
	h.sendMessage(chatID, fmt.Sprintf(
		"✏️ РЕДАКТИРОВАНИЕ «%s»\nПройди шаги заново. Для отмены — !отмена\n\nСейчас: %s\n\n%s",
		habit.Title, habit.Identity, state.Prompt()))
}

// HandleReset обрабатывает команду !сброс — запрашивает подтверждение.
// Сброс удаляет ВСЕ отметки, но не сам протокол.
func (h *Handler) HandleReset(ctx context.Context, chatID int64, userID int64) {
	if _, err := h.service.GetLatest(ctx, userID); err != nil {
		h.sendMessage(chatID, "🌱 Нет активного протокола — нечего сбрасывать")
		return
	}

	h.service.StartResetConfirm(userID)
	h.sendMessage(chatID, "⚠️ Сброс удалит ВСЕ отметки протокола. Огонек погаснет.\n"+
		"Напиши «да» для подтверждения или !отмена")
}

// HandleCancel обрабатывает команду !отмена — прерывает мастер или сброс.
func (h *Handler) HandleCancel(chatID int64, userID int64) {
	if h.service.GetState(userID) == nil {
		h.sendMessage(chatID, "Нечего отменять")
		return
	}
	h.service.ClearState(userID)
	h.sendMessage(chatID, "Действие отменено")
}

// HandleWizardInput обрабатывает обычное (не командное) сообщение,
// если у пользователя активен мастер или подтверждение сброса.
// Возвращает true, если сообщение было обработано.
func (h *Handler) HandleWizardInput(ctx context.Context, chatID int64, userID int64, text string) bool {
	state := h.service.GetState(userID)
	if state == nil {
		return false
	}

	// Подтверждение сброса
	if state.State == StateResetWait {
		h.handleResetConfirm(ctx, chatID, userID, text)
		return true
	}

	next, err := state.ApplyInput(text)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidFrequency), errors.Is(err, common.ErrEmptyFrequency):
			h.sendMessage(chatID, "❌ Не понял дни недели. Примеры: «пн, ср, пт» или «все»")
		default:
			h.sendMessage(chatID, "❌ Поле не может быть пустым (и не длиннее 200 символов)")
		}
		return true
	}

	if next != StateNone {
		h.sendMessage(chatID, state.Prompt())
		return true
	}

	// Мастер завершён — сохраняем черновик
	if !state.Done() {
		// Сюда попадать не должны: ApplyInput валидирует каждый шаг
		log.WithField("user_id", userID).Warn("Мастер завершился с неполным черновиком")
		h.service.ClearState(userID)
		h.sendMessage(chatID, "❌ Что-то пошло не так, начни заново: !новый")
		return true
	}

	habit, err := h.service.SaveDraft(ctx, userID, state.Draft)
	h.service.ClearState(userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка сохранения протокола")
		h.sendMessage(chatID, "❌ Не удалось сохранить протокол, попробуй ещё раз")
		return true
	}

	h.sendMessage(chatID, fmt.Sprintf(
		"🌱 ПРОТОКОЛ АКТИВИРОВАН\n\n«%s»\nИдентичность: %s\nТриггер: %s\nЧастота: %s\n\n"+
			"Отмечай выполнение каждый день: !чек",
		habit.Title, habit.Identity, habit.Cue, FormatFrequency(habit.Frequency)))
	return true
}

// handleResetConfirm завершает сброс после подтверждения.
func (h *Handler) handleResetConfirm(ctx context.Context, chatID int64, userID int64, text string) {
	h.service.ClearState(userID)

	answer := strings.ToLower(strings.TrimSpace(text))
	if answer != "да" && answer != "yes" {
		h.sendMessage(chatID, "Сброс не подтверждён, отметки целы")
		return
	}

	habit, err := h.service.GetLatest(ctx, userID)
	if err != nil {
		h.sendMessage(chatID, "🌱 Нет активного протокола")
		return
	}

	if err := h.checkinSvc.ResetAll(ctx, habit.ID, userID); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка сброса протокола")
		h.sendMessage(chatID, "❌ Не удалось сбросить протокол")
		return
	}

	h.sendMessage(chatID, fmt.Sprintf("🧹 Протокол «%s» сброшен. Все отметки удалены, огонек погас.", habit.Title))
}

// sendMessage — вспомогательный метод для отправки текстовых сообщений.
func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}
