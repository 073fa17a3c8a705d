package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habit-tracker/internal/streak"
)

func TestAddObjectiveCreatesTodayRecord(t *testing.T) {
	env := newTestEnv(t, "2024-01-01")
	user := env.newUser(t, "2024-01-01")
	ctx := context.Background()

	record, err := env.habitSvc.AddObjective(ctx, user, ObjectiveInput{Title: "Read", ReminderTime: "08:30"})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", record.Date)
	assert.Equal(t, "08:30", record.ReminderTime)
	assert.False(t, record.Completed)
	assert.False(t, streak.IsVirtual(record.ID))
}

func TestAddObjectiveValidation(t *testing.T) {
	env := newTestEnv(t, "2024-01-01")
	user := env.newUser(t, "2024-01-01")
	ctx := context.Background()

	_, err := env.habitSvc.AddObjective(ctx, user, ObjectiveInput{Title: "   "})
	assert.Error(t, err)

	_, err = env.habitSvc.AddObjective(ctx, user, ObjectiveInput{Title: "Read", ReminderTime: "25:99"})
	assert.Error(t, err)
}

func TestAddObjectiveRejectsDuplicateTitleForToday(t *testing.T) {
	env := newTestEnv(t, "2024-01-01")
	user := env.newUser(t, "2024-01-01")
	ctx := context.Background()

	_, err := env.habitSvc.AddObjective(ctx, user, ObjectiveInput{Title: "Read"})
	require.NoError(t, err)

	_, err = env.habitSvc.AddObjective(ctx, user, ObjectiveInput{Title: "Read"})
	assert.Error(t, err, "one authoritative record per (user, date, title)")
}

func TestAddObjectiveRejectsTitleShadowedByVirtual(t *testing.T) {
	env := newTestEnv(t, "2024-01-01")
	user := env.newUser(t, "2024-01-01")
	ctx := context.Background()

	_, err := env.habitSvc.AddObjective(ctx, user, ObjectiveInput{Title: "Meditate", IsRecurring: true})
	require.NoError(t, err)

	env.clock.day = "2024-01-02"
	_, err = env.habitSvc.AddObjective(ctx, user, ObjectiveInput{Title: "Meditate"})
	assert.Error(t, err, "a recurring title already materializes for today")
}

func TestListTodayIncludesVirtualRecords(t *testing.T) {
	env := newTestEnv(t, "2024-01-01")
	user := env.newUser(t, "2024-01-01")
	ctx := context.Background()

	_, err := env.habitSvc.AddObjective(ctx, user, ObjectiveInput{Title: "Meditate", IsRecurring: true})
	require.NoError(t, err)

	env.clock.day = "2024-01-02"
	records, err := env.habitSvc.ListToday(ctx, user)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, streak.IsVirtual(records[0].ID))
	assert.Equal(t, "2024-01-02", records[0].Date)
	assert.False(t, records[0].Completed)
}

func TestToggleVirtualPromotesToRealRecord(t *testing.T) {
	env := newTestEnv(t, "2024-01-01")
	user := env.newUser(t, "2024-01-01")
	ctx := context.Background()

	created, err := env.habitSvc.AddObjective(ctx, user, ObjectiveInput{Title: "Meditate", IsRecurring: true})
	require.NoError(t, err)
	_, err = env.habitSvc.ToggleRecord(ctx, user, created.ID)
	require.NoError(t, err)

	env.clock.day = "2024-01-02"
	records, err := env.habitSvc.ListToday(ctx, user)
	require.NoError(t, err)
	require.Len(t, records, 1)
	virtualID := records[0].ID
	require.True(t, streak.IsVirtual(virtualID))

	promoted, err := env.habitSvc.ToggleRecord(ctx, user, virtualID)
	require.NoError(t, err)
	assert.False(t, streak.IsVirtual(promoted.ID), "promotion must mint a fresh persistent id")
	assert.Equal(t, "2024-01-02", promoted.Date)
	assert.True(t, promoted.Completed)

	// The concrete record now suppresses the virtual one.
	records, err = env.habitSvc.ListToday(ctx, user)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, promoted.ID, records[0].ID)

	// Both days perfect, so the promotion carried the streak forward.
	assert.Equal(t, 2, user.StreakCount)
}

func TestToggleTwiceLeavesSingleRow(t *testing.T) {
	env := newTestEnv(t, "2024-01-01")
	user := env.newUser(t, "2024-01-01")
	ctx := context.Background()

	created, err := env.habitSvc.AddObjective(ctx, user, ObjectiveInput{Title: "Read"})
	require.NoError(t, err)

	toggled, err := env.habitSvc.ToggleRecord(ctx, user, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	toggled, err = env.habitSvc.ToggleRecord(ctx, user, created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)

	records, err := env.recordRepo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, records, 1, "upsert-by-id must never duplicate a row")
	assert.Equal(t, created.ID, records[0].ID)
	assert.False(t, records[0].Completed)
}

func TestToggleUnknownRecord(t *testing.T) {
	env := newTestEnv(t, "2024-01-01")
	user := env.newUser(t, "2024-01-01")

	_, err := env.habitSvc.ToggleRecord(context.Background(), user, "nope")
	assert.Error(t, err)
}

func TestDeleteRecurringRemovesAllInstances(t *testing.T) {
	env := newTestEnv(t, "2024-01-01")
	user := env.newUser(t, "2024-01-01")
	ctx := context.Background()

	created, err := env.habitSvc.AddObjective(ctx, user, ObjectiveInput{Title: "Meditate", IsRecurring: true})
	require.NoError(t, err)
	_, err = env.habitSvc.ToggleRecord(ctx, user, created.ID)
	require.NoError(t, err)

	env.clock.day = "2024-01-02"
	records, err := env.habitSvc.ListToday(ctx, user)
	require.NoError(t, err)
	_, err = env.habitSvc.ToggleRecord(ctx, user, records[0].ID)
	require.NoError(t, err)

	require.NoError(t, env.habitSvc.DeleteRecurring(ctx, user, "Meditate"))

	history, err := env.recordRepo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	env.clock.day = "2024-01-03"
	today, err := env.habitSvc.ListToday(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, today, "no template left to materialize from")
}

func TestDeleteByTitleRemovesRecurringWithHistory(t *testing.T) {
	env := newTestEnv(t, "2024-01-01")
	user := env.newUser(t, "2024-01-01")
	ctx := context.Background()

	created, err := env.habitSvc.AddObjective(ctx, user, ObjectiveInput{Title: "Meditate", IsRecurring: true})
	require.NoError(t, err)
	_, err = env.habitSvc.ToggleRecord(ctx, user, created.ID)
	require.NoError(t, err)

	// On the next day only the virtual instance exists; deletion by name
	// must still resolve it and drop the whole recurring history.
	env.clock.day = "2024-01-02"
	require.NoError(t, env.habitSvc.DeleteByTitle(ctx, user, "meditate"))

	history, err := env.recordRepo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestDeleteByTitleRemovesOneOff(t *testing.T) {
	env := newTestEnv(t, "2024-01-01")
	user := env.newUser(t, "2024-01-01")
	ctx := context.Background()

	_, err := env.habitSvc.AddObjective(ctx, user, ObjectiveInput{Title: "Dentist"})
	require.NoError(t, err)
	_, err = env.habitSvc.AddObjective(ctx, user, ObjectiveInput{Title: "Read"})
	require.NoError(t, err)

	require.NoError(t, env.habitSvc.DeleteByTitle(ctx, user, "Dentist"))

	history, err := env.recordRepo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Read", history[0].Title)
}

func TestDeleteByTitleUnknownObjective(t *testing.T) {
	env := newTestEnv(t, "2024-01-01")
	user := env.newUser(t, "2024-01-01")

	err := env.habitSvc.DeleteByTitle(context.Background(), user, "Nope")
	assert.Error(t, err)

	err = env.habitSvc.DeleteByTitle(context.Background(), user, "  ")
	assert.Error(t, err)
}

func TestDeleteVirtualRecordIsLocalOnly(t *testing.T) {
	env := newTestEnv(t, "2024-01-01")
	user := env.newUser(t, "2024-01-01")
	ctx := context.Background()

	_, err := env.habitSvc.AddObjective(ctx, user, ObjectiveInput{Title: "Meditate", IsRecurring: true})
	require.NoError(t, err)

	env.clock.day = "2024-01-02"
	records, err := env.habitSvc.ListToday(ctx, user)
	require.NoError(t, err)
	require.True(t, streak.IsVirtual(records[0].ID))

	// Nothing was persisted for the virtual record, so the store is untouched.
	require.NoError(t, env.habitSvc.DeleteRecord(ctx, user, records[0].ID))

	history, err := env.recordRepo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1, "the template record stays")
}
