package service

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"

	"habit-tracker/internal/model"
	"habit-tracker/internal/streak"
)

// ReminderService builds human-readable summaries for daily notifications.
type ReminderService struct {
	habitSvc *HabitService
	clock    streak.Clock
}

func NewReminderService(habitSvc *HabitService, clock streak.Clock) *ReminderService {
	return &ReminderService{habitSvc: habitSvc, clock: clock}
}

// DailySummary renders today's objectives and the current streak for one
// user. Virtual instances of recurring objectives are included so the list
// shows everything the user is expected to complete today.
func (s *ReminderService) DailySummary(ctx context.Context, user *model.User) (string, error) {
	records, err := s.habitSvc.ListToday(ctx, user)
	if err != nil {
		return "", err
	}

	sort.SliceStable(records, func(i, j int) bool {
		switch {
		case records[i].ReminderTime == records[j].ReminderTime:
			return records[i].Title < records[j].Title
		case records[i].ReminderTime == "":
			return false
		case records[j].ReminderTime == "":
			return true
		default:
			return records[i].ReminderTime < records[j].ReminderTime
		}
	})

	var builder strings.Builder
	builder.WriteString("📋 <b>План на сегодня</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", s.clock.Today()))

	if len(records) == 0 {
		builder.WriteString("— на сегодня целей нет\n")
	} else {
		done := 0
		for _, rec := range records {
			builder.WriteString(formatRecord(rec))
			if rec.Completed {
				done++
			}
		}
		builder.WriteString(fmt.Sprintf("\nВыполнено: %d из %d\n", done, len(records)))
	}

	builder.WriteString(fmt.Sprintf("\n🔥 Серия: <b>%d</b> дн.", user.StreakCount))
	if user.LastCompletedDate != "" {
		builder.WriteString(fmt.Sprintf("\n✅ Последний идеальный день: %s", user.LastCompletedDate))
	}

	return strings.TrimSpace(builder.String()), nil
}

func formatRecord(rec model.TaskRecord) string {
	var sb strings.Builder

	icon := "⬜"
	if rec.Completed {
		icon = "✅"
	}
	sb.WriteString(fmt.Sprintf("%s %s", icon, html.EscapeString(strings.TrimSpace(rec.Title))))

	if rec.IsRecurring {
		sb.WriteString(" ♻️")
	}
	if rec.ReminderTime != "" {
		sb.WriteString(fmt.Sprintf(" · ⏰ %s", rec.ReminderTime))
	}

	sb.WriteByte('\n')
	return sb.String()
}
