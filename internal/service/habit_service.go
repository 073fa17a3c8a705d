package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"habit-tracker/internal/model"
	"habit-tracker/internal/repository"
	"habit-tracker/internal/streak"
)

var reminderTimeRe = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

// ObjectiveInput represents data required to create an objective.
type ObjectiveInput struct {
	Title        string
	IsRecurring  bool
	ReminderTime string
}

// HabitService wraps objective-related business logic. Every mutation ends
// with a reconciliation run so the stored streak aggregate tracks the
// history it was derived from.
type HabitService struct {
	recordRepo *repository.RecordRepository
	streakSvc  *StreakService
	clock      streak.Clock
}

func NewHabitService(recordRepo *repository.RecordRepository, streakSvc *StreakService, clock streak.Clock) *HabitService {
	return &HabitService{recordRepo: recordRepo, streakSvc: streakSvc, clock: clock}
}

// ListToday returns today's objectives: concrete records plus virtual
// instances of recurring objectives the user has not touched today.
func (s *HabitService) ListToday(ctx context.Context, user *model.User) ([]model.TaskRecord, error) {
	history, err := s.recordRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return streak.MaterializeToday(history, s.clock.Today()), nil
}

// AddObjective creates a record for today. Duplicate titles for the same day
// are rejected up front: (user, date, title) identifies the authoritative row.
func (s *HabitService) AddObjective(ctx context.Context, user *model.User, input ObjectiveInput) (*model.TaskRecord, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if input.ReminderTime != "" && !reminderTimeRe.MatchString(input.ReminderTime) {
		return nil, fmt.Errorf("reminder time %q is not HH:MM", input.ReminderTime)
	}

	today := s.clock.Today()
	existing, err := s.ListToday(ctx, user)
	if err != nil {
		return nil, err
	}
	for _, rec := range existing {
		if rec.Title == title {
			return nil, fmt.Errorf("objective %q already exists for today", title)
		}
	}

	record := model.TaskRecord{
		ID:           streak.NewRecordID(),
		UserID:       user.ID,
		Title:        title,
		Date:         today,
		IsRecurring:  input.IsRecurring,
		ReminderTime: input.ReminderTime,
	}
	if err := s.recordRepo.Upsert(ctx, &record); err != nil {
		return nil, err
	}

	if _, err := s.streakSvc.Reconcile(ctx, user); err != nil {
		return &record, err
	}
	return &record, nil
}

// ToggleRecord flips the completion flag of one of today's records. A virtual
// record is promoted on first toggle: it becomes a real row with a fresh id,
// today's date, and Completed=true.
func (s *HabitService) ToggleRecord(ctx context.Context, user *model.User, recordID string) (*model.TaskRecord, error) {
	today := s.clock.Today()
	records, err := s.ListToday(ctx, user)
	if err != nil {
		return nil, err
	}

	var target *model.TaskRecord
	for i := range records {
		if records[i].ID == recordID {
			target = &records[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("record %s not found for today", recordID)
	}

	if streak.IsVirtual(target.ID) {
		target.ID = streak.NewRecordID()
		target.Date = today
		target.Completed = true
	} else {
		target.Completed = !target.Completed
	}

	if err := s.recordRepo.Upsert(ctx, target); err != nil {
		return nil, err
	}

	if _, err := s.streakSvc.Reconcile(ctx, user); err != nil {
		return target, err
	}
	return target, nil
}

// DeleteRecord removes a single record. Deleting a virtual record is a no-op
// on the store: nothing was persisted yet.
func (s *HabitService) DeleteRecord(ctx context.Context, user *model.User, recordID string) error {
	if !streak.IsVirtual(recordID) {
		if err := s.recordRepo.Delete(ctx, user.ID, recordID); err != nil {
			return err
		}
	}
	_, err := s.streakSvc.Reconcile(ctx, user)
	return err
}

// DeleteByTitle removes one of today's objectives by name. A recurring
// objective is removed with its whole instance history; a one-off loses just
// today's record.
func (s *HabitService) DeleteByTitle(ctx context.Context, user *model.User, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title is required")
	}

	records, err := s.ListToday(ctx, user)
	if err != nil {
		return err
	}

	var target *model.TaskRecord
	for i := range records {
		if strings.EqualFold(records[i].Title, title) {
			target = &records[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("objective %q not found for today", title)
	}

	if target.IsRecurring {
		return s.DeleteRecurring(ctx, user, target.Title)
	}
	return s.DeleteRecord(ctx, user, target.ID)
}

// DeleteRecurring removes every instance of a recurring objective, so it
// stops materializing on new days.
func (s *HabitService) DeleteRecurring(ctx context.Context, user *model.User, title string) error {
	if err := s.recordRepo.DeleteRecurringByTitle(ctx, user.ID, title); err != nil {
		return err
	}
	_, err := s.streakSvc.Reconcile(ctx, user)
	return err
}
