// Package filters содержит фильтры доступа к боту.
// Трекер привычек — личная штука: бот отвечает только в личных сообщениях
// и только не забаненным пользователям.
package filters

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-sys/internal/common"
	"serotonyl.ru/habit-sys/internal/features/members"
)

// ChatFilter пропускает только личные сообщения от незабаненных пользователей.
type ChatFilter struct {
	memberService *members.Service
	bot           *tgbotapi.BotAPI
}

// NewChatFilter создаёт фильтр доступа.
func NewChatFilter(memberService *members.Service, bot *tgbotapi.BotAPI) *ChatFilter {
	return &ChatFilter{
		memberService: memberService,
		bot:           bot,
	}
}

// CheckAccess решает, обрабатывать ли сообщение.
func (f *ChatFilter) CheckAccess(ctx context.Context, message *tgbotapi.Message) bool {
	if message == nil || message.Chat == nil {
		log.WithField("component", "ChatFilter").Warn("nil message/chat")
		return false
	}
	if message.From == nil {
		log.WithFields(log.Fields{
			"component": "ChatFilter",
			"chat_id":   message.Chat.ID,
			"chat_type": message.Chat.Type,
		}).Warn("nil message.From (сервисное сообщение?)")
		return false
	}

	logger := log.WithFields(log.Fields{
		"component": "ChatFilter",
		"chat_id":   message.Chat.ID,
		"chat_type": message.Chat.Type,
		"user_id":   message.From.ID,
	})

	// Только личка: в группах бот молчит, чтобы не засорять чаты
	if !message.Chat.IsPrivate() {
		logger.Debug("deny: not a private chat")
		return false
	}

	member, err := f.memberService.GetByUserID(ctx, message.From.ID)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			// Новый пользователь — пропускаем, EnsureMember создаст запись
			logger.Debug("allow: new user")
			return true
		}
		logger.WithError(err).Error("member check failed (db)")
		return false
	}

	if member.IsBanned {
		logger.Info("deny: banned user")
		return false
	}

	logger.Debug("allow: private")
	return true
}
