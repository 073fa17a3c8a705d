// Package streak implements the streak consistency engine.
//
// The engine derives, from a user's full TaskRecord history, the count of
// consecutive "perfect" days ending at (or just before) today, detects the
// most recent breach, and decides what corrective action must be applied to
// the stored aggregate.
//
// ARCHITECTURE:
//
// Pure core, impure shell. Everything in this package is a pure function of
// (history, today, joinDate): no ambient clock reads, no I/O. The current
// date enters through the Clock interface so every computation is
// deterministic and replayable in tests. Applying a decision (writes, purges,
// aggregate saves) lives in the service layer.
//
// POLICY:
//
// Exactly one streak policy is implemented: a breach on any day before today
// purges all records after the breach date. The purge is data-destructive:
// it erases logged activity after an unresolved failure, it does not merely
// reset a counter. See Decision for details.
package streak
