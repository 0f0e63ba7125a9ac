// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы, обработчики,
// фильтры и собирает всё в один объект Bot.
package app

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-sys/internal/bot"
	"serotonyl.ru/habit-sys/internal/bot/filters"
	"serotonyl.ru/habit-sys/internal/config"
	"serotonyl.ru/habit-sys/internal/db/postgres"
	"serotonyl.ru/habit-sys/internal/features/admin"
	"serotonyl.ru/habit-sys/internal/features/checkin"
	"serotonyl.ru/habit-sys/internal/features/eligibility"
	"serotonyl.ru/habit-sys/internal/features/habits"
	"serotonyl.ru/habit-sys/internal/features/members"
	"serotonyl.ru/habit-sys/internal/features/streak"
	"serotonyl.ru/habit-sys/internal/jobs"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	BotAPI    *tgbotapi.BotAPI
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	// Запускаем миграции
	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Авторизован как @%s", botAPI.Self.UserName)

	// === 3. Репозитории ===
	memberRepo := members.NewRepository(pool)
	habitRepo := habits.NewRepository(pool)
	logRepo := checkin.NewRepository(pool)
	adminRepo := admin.NewRepository(pool)

	// === 4. Сервисы ===
	memberService := members.NewService(memberRepo)
	habitService := habits.NewService(habitRepo)
	checkinService := checkin.NewService(logRepo)
	streakService := streak.NewService(checkinService)
	eligibilityService := eligibility.NewService(habitRepo, logRepo, cfg)
	adminService := admin.NewService(adminRepo, memberRepo, habitRepo, logRepo, cfg)

	// Назначаем админов из конфига
	if err := memberService.BootstrapAdmins(ctx, cfg.AdminIDs); err != nil {
		log.WithError(err).Warn("Ошибка назначения админов из конфига")
	}

	// === 5. Обработчики ===
	habitsHandler := habits.NewHandler(habitService, checkinService, streakService, botAPI)
	eligibilityHandler := eligibility.NewHandler(eligibilityService, botAPI)
	adminHandler := admin.NewHandler(adminService, memberService, botAPI)

	// === 6. Фильтры ===
	chatFilter := filters.NewChatFilter(memberService, botAPI)

	// === 7. Собираем бота ===
	b := bot.New(
		botAPI, cfg,
		memberService,
		habitsHandler,
		eligibilityService, eligibilityHandler,
		adminHandler,
		chatFilter,
	)

	// === 8. Планировщик задач ===
	scheduler := jobs.NewScheduler(cfg, habitService, checkinService, streakService, memberRepo, b.SendMessageToUser)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		DB:        pool,
		BotAPI:    botAPI,
	}, nil
}

// runMigrations выполняет все SQL-миграции.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	// Инициализируем систему миграций
	if err := postgres.EnsureMigrationsTable(ctx, pool); err != nil {
		return err
	}

	// Выполняем миграции по порядку
	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Members},
		{2, migration002Habits},
		{3, migration003HabitLogs},
		{4, migration004Admin},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}

	return nil
}

// SQL-миграции встроены в код для упрощения деплоя.

var migration001Members = `
CREATE TABLE IF NOT EXISTS members (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT UNIQUE NOT NULL,
    username VARCHAR(255),
    first_name VARCHAR(255) NOT NULL,
    last_name VARCHAR(255),
    is_admin BOOLEAN DEFAULT FALSE,
    is_banned BOOLEAN DEFAULT FALSE,
    last_reminder_on DATE,
    joined_at TIMESTAMP DEFAULT NOW(),
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_members_user_id ON members(user_id);
CREATE INDEX IF NOT EXISTS idx_members_username ON members(username);
`

var migration002Habits = `
CREATE TABLE IF NOT EXISTS habits (
    id UUID PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES members(user_id),
    title VARCHAR(255) NOT NULL,
    identity VARCHAR(255) NOT NULL,
    cue VARCHAR(255) NOT NULL,
    frequency TEXT[] NOT NULL DEFAULT '{}',
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_habits_user_id ON habits(user_id);
CREATE INDEX IF NOT EXISTS idx_habits_user_created ON habits(user_id, created_at DESC);
`

var migration003HabitLogs = `
CREATE TABLE IF NOT EXISTS habit_logs (
    id BIGSERIAL PRIMARY KEY,
    habit_id UUID NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
    user_id BIGINT NOT NULL REFERENCES members(user_id),
    completed_on DATE NOT NULL,
    created_at TIMESTAMP DEFAULT NOW(),
    UNIQUE (habit_id, completed_on)
);
CREATE INDEX IF NOT EXISTS idx_habit_logs_habit_id ON habit_logs(habit_id);
CREATE INDEX IF NOT EXISTS idx_habit_logs_user_id ON habit_logs(user_id);
CREATE INDEX IF NOT EXISTS idx_habit_logs_completed_on ON habit_logs(completed_on);
`

var migration004Admin = `
CREATE TABLE IF NOT EXISTS admin_sessions (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT REFERENCES members(user_id),
    session_token VARCHAR(255) UNIQUE,
    authenticated_at TIMESTAMP DEFAULT NOW(),
    expires_at TIMESTAMP,
    last_activity TIMESTAMP DEFAULT NOW(),
    is_active BOOLEAN DEFAULT TRUE
);
CREATE INDEX IF NOT EXISTS idx_admin_sessions_user_id ON admin_sessions(user_id);
CREATE TABLE IF NOT EXISTS admin_login_attempts (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT,
    attempt_time TIMESTAMP DEFAULT NOW(),
    success BOOLEAN DEFAULT FALSE
);
`
