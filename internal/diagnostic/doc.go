// Package diagnostic provides structured errors, warnings and notes for
// entity declaration checks.
//
// Key capabilities:
//   - Accumulate every problem instead of stopping at the first
//   - Tie each message to an entity and a field, alias or aux slot
//   - Carry did-you-mean suggestions
package diagnostic
