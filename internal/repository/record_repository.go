package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"habit-tracker/internal/model"
)

// RecordRepository handles persistence of task records. It is the engine's
// task record store: the engine re-reads the full history on every triggering
// event and never caches it, so every method here answers from the database.
type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// ListByUser returns the user's full task record history.
func (r *RecordRepository) ListByUser(ctx context.Context, userID uint) ([]model.TaskRecord, error) {
	var records []model.TaskRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("date ASC, created_at ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// Upsert creates or replaces a record by id. Concurrent upserts of the same
// id resolve last-write-wins at the store level; the engine does not attempt
// conflict resolution beyond that.
func (r *RecordRepository) Upsert(ctx context.Context, record *model.TaskRecord) error {
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(record).Error; err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

func (r *RecordRepository) Delete(ctx context.Context, userID uint, id string) error {
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.TaskRecord{}).Error; err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// DeleteRecurringByTitle removes every instance of a recurring objective,
// i.e. "remove this whole recurring objective".
func (r *RecordRepository) DeleteRecurringByTitle(ctx context.Context, userID uint, title string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND title = ? AND is_recurring = ?", userID, title, true).
		Delete(&model.TaskRecord{}).Error; err != nil {
		return fmt.Errorf("delete recurring %q: %w", title, err)
	}
	return nil
}

// DeleteAfter is the purge primitive: it deletes every record strictly after
// the given day key. Date keys compare lexicographically, so a plain string
// comparison is correct.
func (r *RecordRepository) DeleteAfter(ctx context.Context, userID uint, dateKey string) error {
	if err := r.db.WithContext(ctx).Where("user_id = ? AND date > ?", userID, dateKey).
		Delete(&model.TaskRecord{}).Error; err != nil {
		return fmt.Errorf("purge records after %s: %w", dateKey, err)
	}
	return nil
}
