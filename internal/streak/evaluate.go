package streak

import (
	"log"

	"habit-tracker/internal/model"
)

// maxWalkDays bounds the backward walk (~10 years). Exceeding it means the
// join date bookkeeping is corrupt; the walk logs and stops with the value
// computed so far instead of looping.
const maxWalkDays = 3650

// Evaluation is the result of a streak walk over a user's history.
type Evaluation struct {
	// Streak is the count of consecutive perfect days ending at today or,
	// when today is still in progress, at yesterday.
	Streak int

	// BreachDate is the most recent day found with existing but incomplete
	// records. Empty means no breach was found down to the join date.
	BreachDate string

	// PerfectDays lists the perfect days the walk credited, oldest first.
	// Backs the aggregate's persistence log.
	PerfectDays []string
}

// Breached reports whether the walk found a breach.
func (e Evaluation) Breached() bool { return e.BreachDate != "" }

// Evaluate walks backward from today and computes the consecutive-perfect-day
// streak. A day is perfect iff it has at least one record and all of them are
// completed. A day with zero records is neutral: it neither extends the streak
// nor breaches it, and the walk continues past it. Only a day with existing
// incomplete records stops the walk and becomes the breach date.
func Evaluate(history []model.TaskRecord, today, joinDate string) Evaluation {
	byDay := groupByDay(history)

	var eval Evaluation

	// Today gets a grace period: incomplete tasks now do not yet constitute
	// a breach, the user may still finish them.
	if perfect(byDay[today]) {
		eval.Streak = 1
		eval.PerfectDays = append(eval.PerfectDays, today)
	}

	cursor := PrevDay(today)
	for steps := 0; cursor != "" && cursor >= joinDate; steps++ {
		if steps >= maxWalkDays {
			log.Printf("[warn] streak walk exceeded %d days (today=%s join=%s), stopping", maxWalkDays, today, joinDate)
			break
		}
		recs := byDay[cursor]
		switch {
		case perfect(recs):
			eval.Streak++
			eval.PerfectDays = append(eval.PerfectDays, cursor)
		case len(recs) > 0:
			eval.BreachDate = cursor
			reverse(eval.PerfectDays)
			return eval
		default:
			// Idle day: no records, neutral. Does not count, does not breach.
		}
		cursor = PrevDay(cursor)
	}

	reverse(eval.PerfectDays)
	return eval
}

// groupByDay buckets records by their day key, dropping records whose date
// does not parse. Malformed rows are logged and skipped rather than failing
// the whole evaluation.
func groupByDay(history []model.TaskRecord) map[string][]model.TaskRecord {
	byDay := make(map[string][]model.TaskRecord, len(history))
	for _, rec := range history {
		if !ValidKey(rec.Date) {
			log.Printf("[warn] task record %s has malformed date %q, skipping", rec.ID, rec.Date)
			continue
		}
		byDay[rec.Date] = append(byDay[rec.Date], rec)
	}
	return byDay
}

func perfect(recs []model.TaskRecord) bool {
	if len(recs) == 0 {
		return false
	}
	for _, rec := range recs {
		if !rec.Completed {
			return false
		}
	}
	return true
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
