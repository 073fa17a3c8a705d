package service

import (
	"context"
	"log"
	"sync"

	"habit-tracker/internal/model"
	"habit-tracker/internal/repository"
	"habit-tracker/internal/streak"
)

// StreakService applies a reconciliation decision exactly once per triggering
// event: app start, add/toggle/delete of a record, and the periodic
// day-rollover check. The aggregate is updated optimistically in memory
// first; the store write is best-effort and is not retried automatically.
// The next triggering event re-runs the whole pipeline from a fresh history
// read.
type StreakService struct {
	recordRepo *repository.RecordRepository
	userRepo   *repository.UserRepository
	clock      streak.Clock

	mu sync.Mutex
}

func NewStreakService(recordRepo *repository.RecordRepository, userRepo *repository.UserRepository, clock streak.Clock) *StreakService {
	return &StreakService{
		recordRepo: recordRepo,
		userRepo:   userRepo,
		clock:      clock,
	}
}

// Reconcile runs the full pipeline for one user: load history, evaluate,
// decide, apply. The session moves idle → evaluating → (accepted | purging →
// evaluating) → idle; purging re-enters evaluation exactly once, because a
// purge removes everything after the breach and cannot expose a second breach
// beyond it. The user struct is mutated optimistically; if the aggregate
// write fails the in-memory state is kept and a transient error is returned
// so the caller can surface a non-blocking notification.
//
// On a breach the applied purge DELETES every task record after the breach
// date for this user. That loss of logged activity is the product's intended
// penalty for an unresolved failed day.
func (s *StreakService) Reconcile(ctx context.Context, user *model.User) (streak.Evaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.clock.Today()

	if !streak.ValidKey(user.JoinDate) {
		// Corrupt bookkeeping; the evaluator's walk bound still protects
		// us, so proceed with a best-effort result.
		log.Printf("[warn] %v", &streak.EngineError{
			Code:    streak.CodeInvariantViolation,
			Message: "malformed join date " + user.JoinDate,
			UserID:  user.ID,
		})
	}

	history, err := s.recordRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return streak.Evaluation{}, streak.NewTransientError(user.ID, "load history", err)
	}

	eval := streak.Evaluate(history, today, user.JoinDate)

	switch streak.Decide(eval, user.StreakCount) {
	case streak.DecisionPurge:
		log.Printf("[info] streak breach for user %d on %s, purging records after it", user.ID, eval.BreachDate)
		if err := s.recordRepo.DeleteAfter(ctx, user.ID, eval.BreachDate); err != nil {
			return eval, streak.NewTransientError(user.ID, "purge", err)
		}

		// Re-enter evaluation exactly once on the cleaned history. The
		// breach day itself survives the purge and keeps reporting as
		// breached; only the records after it are gone, so no second
		// purge can be needed.
		history, err = s.recordRepo.ListByUser(ctx, user.ID)
		if err != nil {
			return eval, streak.NewTransientError(user.ID, "reload history", err)
		}
		eval = streak.Evaluate(history, today, user.JoinDate)

	case streak.DecisionNoop:
		if user.LastActiveDate == today {
			return eval, nil
		}
	}

	s.applyOptimistic(user, eval, today)

	if err := s.userRepo.SaveAggregate(ctx, user); err != nil {
		// Keep the optimistic in-memory state; the next triggering event
		// retries naturally.
		return eval, streak.NewTransientError(user.ID, "save aggregate", err)
	}
	return eval, nil
}

// CheckRollover re-runs the pipeline for every user whose last active day
// differs from today. Driven by the scheduler on a coarse timer and meant to
// catch the day boundary while a session is open.
func (s *StreakService) CheckRollover(ctx context.Context) error {
	today := s.clock.Today()
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return streak.NewTransientError(0, "list users", err)
	}

	for i := range users {
		user := &users[i]
		if user.LastActiveDate == today {
			continue
		}
		if _, err := s.Reconcile(ctx, user); err != nil {
			log.Printf("[warn] rollover reconcile for user %d: %v", user.ID, err)
		}
	}
	return nil
}

// applyOptimistic writes the evaluation into the in-memory aggregate.
func (s *StreakService) applyOptimistic(user *model.User, eval streak.Evaluation, today string) {
	user.StreakCount = eval.Streak
	user.PersistenceLog = eval.PerfectDays
	user.LastActiveDate = today
	if n := len(eval.PerfectDays); n > 0 {
		user.LastCompletedDate = eval.PerfectDays[n-1]
	}
}
