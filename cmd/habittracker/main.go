package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"habit-tracker/internal/bot"
	"habit-tracker/internal/config"
	"habit-tracker/internal/repository"
	"habit-tracker/internal/service"
	"habit-tracker/internal/streak"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	clock := streak.NewSystemClock(cfg.Location)

	userRepo := repository.NewUserRepository(db)
	recordRepo := repository.NewRecordRepository(db)

	streakSvc := service.NewStreakService(recordRepo, userRepo, clock)
	habitSvc := service.NewHabitService(recordRepo, streakSvc, clock)
	reminderSvc := service.NewReminderService(habitSvc, clock)

	telegramBot, err := bot.New(cfg.TelegramToken, userRepo, habitSvc, streakSvc, reminderSvc, clock)
	if err != nil {
		log.Fatalf("bot: %v", err)
	}

	scheduler := service.NewSchedulerService(cfg.Location)

	// Coarse day-rollover timer: re-runs the reconciliation pipeline for
	// users whose last active day is behind the clock.
	if _, err := scheduler.ScheduleInterval(cfg.DayCheckInterval, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := streakSvc.CheckRollover(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("rollover check: %v", err)
		}
	}); err != nil {
		log.Fatalf("schedule rollover check: %v", err)
	}

	if _, err := scheduler.ScheduleDaily(cfg.ReminderTime, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := telegramBot.SendDailyReports(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("daily report: %v", err)
		}
	}); err != nil {
		log.Fatalf("schedule reports: %v", err)
	}

	scheduler.Start()
	defer scheduler.Stop()

	log.Println("Habit tracker bot started.")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bot stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
