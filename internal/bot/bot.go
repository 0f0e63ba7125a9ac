// Package bot содержит главный модуль бота — инициализацию, запуск и остановку.
// bot.go подключает обработчики, парсит команды и запускает polling.
package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-sys/internal/bot/filters"
	"serotonyl.ru/habit-sys/internal/bot/middleware"
	"serotonyl.ru/habit-sys/internal/config"
	"serotonyl.ru/habit-sys/internal/features/admin"
	"serotonyl.ru/habit-sys/internal/features/eligibility"
	"serotonyl.ru/habit-sys/internal/features/habits"
	"serotonyl.ru/habit-sys/internal/features/members"
)

// Bot — главная структура бота, объединяющая все компоненты.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config

	chatFilter  *filters.ChatFilter
	rateLimiter *middleware.RateLimiter

	habitsHandler      *habits.Handler
	eligibilityHandler *eligibility.Handler
	adminHandler       *admin.Handler

	memberService      *members.Service
	eligibilityService *eligibility.Service

	parser *CommandParser

	// ограничитель параллелизма обработки апдейтов
	inflight chan struct{}
}

// New создаёт новый экземпляр бота со всеми зависимостями.
func New(
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	memberService *members.Service,
	habitsHandler *habits.Handler,
	eligibilityService *eligibility.Service,
	eligibilityHandler *eligibility.Handler,
	adminHandler *admin.Handler,
	chatFilter *filters.ChatFilter,
) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	return &Bot{
		api:                api,
		cfg:                cfg,
		chatFilter:         chatFilter,
		rateLimiter:        middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		habitsHandler:      habitsHandler,
		eligibilityHandler: eligibilityHandler,
		adminHandler:       adminHandler,
		memberService:      memberService,
		eligibilityService: eligibilityService,
		parser:             NewCommandParser(),
		inflight:           make(chan struct{}, maxInFlight),
	}
}

// Start запускает polling обновлений от Telegram.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"max_inflight": b.cfg.BotMaxInflight,
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Бот запущен и ожидает сообщения...")

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (ctx done)...")
			b.api.StopReceivingUpdates()
			b.rateLimiter.Close()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал updates закрыт, бот остановлен")
				b.rateLimiter.Close()
				return
			}

			// лимит параллелизма
			b.inflight <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// handleUpdate обрабатывает одно обновление от Telegram.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic()

	if update.Message == nil || update.Message.Text == "" {
		return
	}

	message := update.Message

	// Логируем входящее
	middleware.LogMessage(message)

	// Проверяем доступ (только личка, незабаненные)
	if !b.chatFilter.CheckAccess(ctx, message) {
		return
	}

	// Rate limiting
	if message.From != nil && !b.rateLimiter.Allow(message.From.ID) {
		log.WithField("user_id", message.From.ID).Debug("rate limited")
		return
	}

	chatID := message.Chat.ID
	userID := message.From.ID

	// EnsureMember — ошибки нельзя игнорировать, иначе потом будет "оно не работает"
	if err := b.memberService.EnsureMember(ctx, userID,
		message.From.UserName, message.From.FirstName, message.From.LastName,
	); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("EnsureMember failed")
	}

	// Админ-панель (DM гарантирован фильтром)
	if b.cfg.FeatureAdminEnabled {
		if handled := b.adminHandler.HandleAdminMessage(ctx, chatID, userID, message.Text); handled {
			return
		}
	}

	// Парсим команду
	cmd, args, isCommand := b.parser.ParseCommand(message.Text)
	log.WithFields(log.Fields{
		"isCommand": isCommand,
		"cmd":       cmd,
		"args":      args,
	}).Debug("parsed command")

	if isCommand {
		// !отмена прерывает мастер даже посреди шага
		if cmd == "отмена" {
			b.habitsHandler.HandleCancel(chatID, userID)
			return
		}
		b.routeCommand(ctx, chatID, userID, cmd, args)
		return
	}

	// Не команда: возможно, пользователь отвечает мастеру
	if b.habitsHandler.HandleWizardInput(ctx, chatID, userID, message.Text) {
		return
	}
}

// routeCommand маршрутизирует команду к нужному обработчику.
func (b *Bot) routeCommand(ctx context.Context, chatID, userID int64, cmd string, args []string) {
	log.WithFields(log.Fields{
		"cmd":  cmd,
		"args": args,
	}).Debug("routing command")
	switch cmd {
	case "start", "help", "помощь":
		b.sendMessage(chatID,
			"📟 HABIT.SYS // ТРЕКЕР ПРОТОКОЛОВ\n\n"+
				"!протокол — активный протокол\n"+
				"!чек — отметить сегодня (повторно — снять)\n"+
				"!огонек — текущая серия\n"+
				"!панчкард — календарь отметок\n"+
				"!допуск — прогресс к следующему протоколу\n"+
				"!новый — создать протокол\n"+
				"!изменить — отредактировать протокол\n"+
				"!сброс — удалить все отметки\n"+
				"!отмена — прервать мастер")

	case "login":
		if chatID == userID {
			b.adminHandler.HandleAdminMessage(ctx, chatID, userID, "/login "+strings.Join(args, " "))
		}

	case "протокол":
		b.habitsHandler.HandleProtocol(ctx, chatID, userID)

	case "чек":
		b.habitsHandler.HandleCheck(ctx, chatID, userID)

	case "огонек", "огонёк":
		b.habitsHandler.HandleOgonek(ctx, chatID, userID)

	case "панчкард":
		b.habitsHandler.HandlePunchcard(ctx, chatID, userID)

	case "допуск":
		b.eligibilityHandler.HandleDopusk(ctx, chatID, userID)

	case "новый":
		b.handleNewProtocol(ctx, chatID, userID)

	case "изменить":
		b.habitsHandler.HandleEdit(ctx, chatID, userID)

	case "сброс":
		b.habitsHandler.HandleReset(ctx, chatID, userID)

	case "отмена":
		b.habitsHandler.HandleCancel(chatID, userID)
	}
}

// handleNewProtocol запускает мастер создания протокола, если допуск получен.
// Первый протокол создаётся свободно; следующий — только после 10 отметок
// и 90% дисциплины по активному.
func (b *Bot) handleNewProtocol(ctx context.Context, chatID, userID int64) {
	snap, err := b.eligibilityService.Check(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка проверки допуска")
		b.sendMessage(chatID, "❌ Ошибка проверки допуска")
		return
	}

	if !snap.Eligible {
		b.sendMessage(chatID, "🔒 Новый протокол пока недоступен.\n\n"+eligibility.FormatSnapshot(snap))
		return
	}

	b.habitsHandler.StartNewWizard(chatID, userID)
}

// sendMessage — утилита для отправки сообщений.
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

// SendMessageToUser отправляет сообщение пользователю (для напоминаний).
func (b *Bot) SendMessageToUser(userID int64, text string) {
	msg := tgbotapi.NewMessage(userID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("Не удалось отправить сообщение")
	}
}

// CommandParser парсит русские команды с префиксами !, . и /
type CommandParser struct {
	validPrefixes []string
}

// NewCommandParser создаёт парсер команд.
func NewCommandParser() *CommandParser {
	return &CommandParser{
		validPrefixes: []string{"!", ".", "/"},
	}
}

// ParseCommand разбирает текст на команду и аргументы.
func (p *CommandParser) ParseCommand(text string) (string, []string, bool) {
	text = strings.TrimSpace(text)

	hasPrefix := false
	for _, prefix := range p.validPrefixes {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimPrefix(text, prefix)
			hasPrefix = true
			break
		}
	}

	if !hasPrefix {
		return "", nil, false
	}

	text = strings.TrimSpace(text)
	parts := strings.Fields(text)

	if len(parts) == 0 {
		return "", nil, false
	}

	command := strings.ToLower(parts[0])
	var args []string
	if len(parts) > 1 {
		args = parts[1:]
	}

	return command, args, true
}
