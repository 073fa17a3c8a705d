package streak

// Decision is the reconciliation policy's verdict on an evaluation.
type Decision int

const (
	// DecisionNoop: computed streak matches the stored aggregate, nothing
	// to write.
	DecisionNoop Decision = iota

	// DecisionAccept: no breach; the stored streak is replaced with the
	// computed one. History is untouched.
	DecisionAccept

	// DecisionPurge: a breach was found. ALL task records dated after the
	// breach date are deleted: the user's logged activity since the
	// failure is void, not merely the counter. This is intentionally
	// data-destructive: after an unresolved failed day the stored history
	// must never show tasks completed "after" it. The caller re-fetches
	// history and re-evaluates exactly once after applying the purge.
	DecisionPurge
)

func (d Decision) String() string {
	switch d {
	case DecisionAccept:
		return "accept"
	case DecisionPurge:
		return "purge"
	default:
		return "noop"
	}
}

// Decide maps an evaluation against the stored streak count to a decision.
// Purge fires exactly when a breach date is present; Accept when the streak
// value changed; Noop keeps repeated runs on unchanged history write-free.
func Decide(eval Evaluation, storedStreak int) Decision {
	if eval.Breached() {
		return DecisionPurge
	}
	if eval.Streak != storedStreak {
		return DecisionAccept
	}
	return DecisionNoop
}
