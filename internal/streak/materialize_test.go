package streak

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habit-tracker/internal/model"
)

func rec(id, title, date string, completed, recurring bool) model.TaskRecord {
	return model.TaskRecord{
		ID:          id,
		UserID:      1,
		Title:       title,
		Date:        date,
		Completed:   completed,
		IsRecurring: recurring,
	}
}

func TestMaterializeToday_SynthesizesVirtualForRecurring(t *testing.T) {
	history := []model.TaskRecord{
		rec("t1", "Meditate", "2024-01-01", true, true),
	}

	result := MaterializeToday(history, "2024-01-02")

	require.Len(t, result, 1)
	virtual := result[0]
	assert.Equal(t, "virtual-t1-2024-01-02", virtual.ID)
	assert.Equal(t, "Meditate", virtual.Title)
	assert.Equal(t, "2024-01-02", virtual.Date)
	assert.False(t, virtual.Completed)
	assert.True(t, virtual.IsRecurring)
	assert.True(t, IsVirtual(virtual.ID))
}

func TestMaterializeToday_ConcreteRecordSuppressesVirtual(t *testing.T) {
	history := []model.TaskRecord{
		rec("t1", "Meditate", "2024-01-01", true, true),
		rec("r2", "Meditate", "2024-01-02", false, true),
	}

	result := MaterializeToday(history, "2024-01-02")

	require.Len(t, result, 1)
	assert.Equal(t, "r2", result[0].ID, "today's concrete record must win over a virtual")
}

func TestMaterializeToday_MostRecentTemplateWins(t *testing.T) {
	older := rec("t1", "Meditate", "2024-01-01", true, true)
	older.ReminderTime = "07:00"
	newer := rec("t2", "Meditate", "2024-01-03", false, true)
	newer.ReminderTime = "08:30"

	result := MaterializeToday([]model.TaskRecord{older, newer}, "2024-01-05")

	require.Len(t, result, 1)
	assert.Equal(t, "virtual-t2-2024-01-05", result[0].ID)
	assert.Equal(t, "08:30", result[0].ReminderTime)
}

func TestMaterializeToday_SameDateTieKeepsInputOrder(t *testing.T) {
	first := rec("t1", "Meditate", "2024-01-01", true, true)
	first.ReminderTime = "07:00"
	second := rec("t2", "Meditate", "2024-01-01", true, true)
	second.ReminderTime = "21:00"

	result := MaterializeToday([]model.TaskRecord{first, second}, "2024-01-02")

	require.Len(t, result, 1)
	assert.Equal(t, "virtual-t1-2024-01-02", result[0].ID, "ties on date keep the earlier input")
	assert.Equal(t, "07:00", result[0].ReminderTime)
}

func TestMaterializeToday_TodayRecordsComeFirst(t *testing.T) {
	history := []model.TaskRecord{
		rec("t1", "Meditate", "2024-01-01", true, true),
		rec("r2", "Read", "2024-01-02", true, false),
	}

	result := MaterializeToday(history, "2024-01-02")

	require.Len(t, result, 2)
	assert.Equal(t, "r2", result[0].ID)
	assert.Equal(t, "virtual-t1-2024-01-02", result[1].ID)
}

func TestMaterializeToday_Idempotent(t *testing.T) {
	history := []model.TaskRecord{
		rec("t1", "Meditate", "2024-01-01", true, true),
		rec("t2", "Stretch", "2024-01-01", false, true),
	}

	first := MaterializeToday(history, "2024-01-02")
	second := MaterializeToday(history, "2024-01-02")

	require.Equal(t, first, second, "same history and day must produce identical virtual records")
}

func TestMaterializeToday_NonRecurringDoesNotMaterialize(t *testing.T) {
	history := []model.TaskRecord{
		rec("r1", "Dentist", "2024-01-01", true, false),
	}

	result := MaterializeToday(history, "2024-01-02")
	assert.Empty(t, result)
}

func TestIsVirtual(t *testing.T) {
	assert.True(t, IsVirtual("virtual-t1-2024-01-02"))
	assert.False(t, IsVirtual(NewRecordID()))
}
