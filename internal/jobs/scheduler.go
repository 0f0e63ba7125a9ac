// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ежечасные напоминания об отметке
// и ночная сводка статистики.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-sys/internal/common"
	"serotonyl.ru/habit-sys/internal/config"
	"serotonyl.ru/habit-sys/internal/features/checkin"
	"serotonyl.ru/habit-sys/internal/features/habits"
	"serotonyl.ru/habit-sys/internal/features/members"
	"serotonyl.ru/habit-sys/internal/features/streak"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron          *cron.Cron
	cfg           *config.Config
	habitService  *habits.Service
	checkinSvc    *checkin.Service
	streakService *streak.Service
	memberRepo    *members.Repository
	sendFunc      func(userID int64, text string)
}

// NewScheduler создаёт планировщик задач. Все расписания в UTC:
// календарные дни протоколов тоже считаются по UTC, так что напоминания
// и сводки не разъезжаются с отметками.
func NewScheduler(
	cfg *config.Config,
	habitService *habits.Service,
	checkinSvc *checkin.Service,
	streakService *streak.Service,
	memberRepo *members.Repository,
	sendFunc func(userID int64, text string),
) *Scheduler {
	c := cron.New(cron.WithLocation(time.UTC))

	return &Scheduler{
		cron:          c,
		cfg:           cfg,
		habitService:  habitService,
		checkinSvc:    checkinSvc,
		streakService: streakService,
		memberRepo:    memberRepo,
		sendFunc:      sendFunc,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Напоминания каждый час (отправляются только вечером)
	s.cron.AddFunc("0 * * * *", func() {
		log.Debug("[CRON] Проверка напоминаний")
		if err := s.sendReminders(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка напоминаний")
		}
	})

	// Ночная сводка в 00:10 UTC — статистика за прошедший день
	s.cron.AddFunc("10 0 * * *", func() {
		log.Info("[CRON] Ночная сводка")
		if err := s.logDailyStats(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка сводки")
		}
	})

	s.cron.Start()
	log.Info("Планировщик задач запущен (UTC)")
}

// Stop останавливает планировщик.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}

// sendReminders рассылает вечерние напоминания пользователям, которые
// сегодня должны выполнить протокол, но ещё не отметились.
// Одно напоминание на пользователя в день (last_reminder_on).
func (s *Scheduler) sendReminders(ctx context.Context) error {
	if !s.cfg.FeatureRemindersEnabled {
		return nil
	}
	if time.Now().UTC().Hour() < s.cfg.ReminderFromHourUTC {
		return nil
	}

	today := common.Today()

	latest, err := s.habitService.AllLatest(ctx)
	if err != nil {
		return fmt.Errorf("ошибка выборки протоколов: %w", err)
	}

	sent := 0
	for _, habit := range latest {
		// Сегодня не по расписанию — молчим
		if !habit.ScheduledOn(today) {
			continue
		}

		member, err := s.memberRepo.GetByUserID(ctx, habit.UserID)
		if err != nil {
			log.WithError(err).WithField("user_id", habit.UserID).Warn("[CRON] Участник не найден")
			continue
		}
		if member.IsBanned {
			continue
		}
		// Уже напоминали сегодня
		if member.LastReminderOn != nil && common.DayUTC(*member.LastReminderOn).Equal(today) {
			continue
		}

		done, err := s.checkinSvc.CompletedToday(ctx, habit.ID, habit.UserID)
		if err != nil {
			log.WithError(err).WithField("habit_id", habit.ID).Warn("[CRON] Ошибка проверки отметки")
			continue
		}
		if done {
			continue
		}

		// Напоминаем только тем, кому есть что терять
		current, err := s.streakService.CurrentForHabit(ctx, habit.ID, habit.UserID)
		if err != nil {
			log.WithError(err).WithField("habit_id", habit.ID).Warn("[CRON] Ошибка расчёта огонька")
			continue
		}
		if current < s.cfg.ReminderMinStreak {
			continue
		}

		s.sendFunc(habit.UserID, fmt.Sprintf(
			"🔥 Огонек протокола «%s» — %s.\nСегодня ещё не отмечено! Не прерывай цепочку: !чек",
			habit.Title, common.FormatStreak(current)))

		if err := s.memberRepo.MarkReminded(ctx, habit.UserID, today); err != nil {
			log.WithError(err).WithField("user_id", habit.UserID).Warn("[CRON] Ошибка отметки напоминания")
		}
		sent++
	}

	if sent > 0 {
		log.WithField("count", sent).Info("[CRON] Напоминания отправлены")
	}
	return nil
}

// logDailyStats пишет в лог сводку за прошедший день.
func (s *Scheduler) logDailyStats(ctx context.Context) error {
	yesterday := common.Today().AddDate(0, 0, -1)

	membersCount, err := s.memberRepo.CountAll(ctx)
	if err != nil {
		return err
	}
	checksYesterday, err := s.checkinSvc.CountOnDay(ctx, yesterday)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"day":     common.FormatDay(yesterday),
		"members": membersCount,
		"checks":  checksYesterday,
	}).Info("[CRON] Сводка за день")
	return nil
}
