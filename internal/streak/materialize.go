package streak

import (
	"strings"

	"github.com/google/uuid"

	"habit-tracker/internal/model"
)

const virtualPrefix = "virtual-"

// MaterializeToday derives the user's task list for today: today's concrete
// records followed by a virtual record for every recurring title that has no
// concrete record today yet.
//
// Virtual records are in-memory only. They carry the template's title and
// reminder time, Completed=false, today's date, and a deterministic id of the
// form "virtual-<templateID>-<today>", so calling this twice on the same
// history and day yields the same ids. On first toggle the service promotes a virtual
// record to a real one with a fresh id.
func MaterializeToday(history []model.TaskRecord, today string) []model.TaskRecord {
	var todayRecords []model.TaskRecord
	todayTitles := make(map[string]bool)
	for _, rec := range history {
		if rec.Date == today {
			todayRecords = append(todayRecords, rec)
			todayTitles[rec.Title] = true
		}
	}

	// Most recent instance of each recurring title wins as the template;
	// ties on date keep the earlier input (stable).
	templates := make(map[string]model.TaskRecord)
	var order []string
	for _, rec := range history {
		if !rec.IsRecurring {
			continue
		}
		prev, seen := templates[rec.Title]
		if !seen {
			templates[rec.Title] = rec
			order = append(order, rec.Title)
			continue
		}
		if rec.Date > prev.Date {
			templates[rec.Title] = rec
		}
	}

	result := todayRecords
	for _, title := range order {
		if todayTitles[title] {
			continue
		}
		tpl := templates[title]
		result = append(result, model.TaskRecord{
			ID:           virtualPrefix + tpl.ID + "-" + today,
			UserID:       tpl.UserID,
			Title:        tpl.Title,
			Date:         today,
			Completed:    false,
			IsRecurring:  true,
			ReminderTime: tpl.ReminderTime,
		})
	}
	return result
}

// IsVirtual reports whether id belongs to an unsaved virtual record.
func IsVirtual(id string) bool {
	return strings.HasPrefix(id, virtualPrefix)
}

// NewRecordID generates the id for a freshly persisted record, including a
// virtual record being promoted on first toggle.
func NewRecordID() string {
	return uuid.NewString()
}
