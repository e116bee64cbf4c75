package game

import "github.com/google/uuid"

// LedgerDelta is the drink charge produced by one terminal transaction.
type LedgerDelta struct {
	Player uuid.UUID `json:"player"`
	Drinks int       `json:"drinks"`
}

// appliedKey identifies an applied transaction by (round number, trans num).
type appliedKey struct {
	round int
	trans int
}

// DrinkLedger aggregates resolved transactions into cumulative per-player
// totals. Application is idempotent: every (round, transaction) pair is
// charged at most once, so replaying a broadcast cannot double-charge.
// Totals never decrease; they are reset only by starting a new game.
type DrinkLedger struct {
	totals  map[uuid.UUID]int
	applied map[appliedKey]bool
}

// NewDrinkLedger returns an empty ledger.
func NewDrinkLedger() *DrinkLedger {
	return &DrinkLedger{
		totals:  make(map[uuid.UUID]int),
		applied: make(map[appliedKey]bool),
	}
}

// deltaFor computes the drink charge for a transaction in a round with the
// given row multiplier. Non-terminal transactions carry no charge.
func deltaFor(roundRow int, t *Transaction) (LedgerDelta, bool) {
	switch t.Result {
	case ResultAccepted:
		return LedgerDelta{Player: t.To, Drinks: roundRow}, true
	case ResultBullshitCorrect:
		return LedgerDelta{Player: t.To, Drinks: 2 * roundRow}, true
	case ResultBullshitWrong:
		return LedgerDelta{Player: t.From, Drinks: 2 * roundRow}, true
	}
	return LedgerDelta{}, false
}

// Apply charges the delta for a terminal transaction exactly once. The second
// return is false when nothing was charged: the transaction is not terminal,
// or this (round, trans) pair was already applied.
func (l *DrinkLedger) Apply(roundNumber, roundRow int, t *Transaction) (LedgerDelta, bool) {
	delta, ok := deltaFor(roundRow, t)
	if !ok {
		return LedgerDelta{}, false
	}
	key := appliedKey{round: roundNumber, trans: t.Num}
	if l.applied[key] {
		return LedgerDelta{}, false
	}
	l.applied[key] = true
	l.totals[delta.Player] += delta.Drinks
	return delta, true
}

// Total returns the cumulative drinks for one player.
func (l *DrinkLedger) Total(player uuid.UUID) int {
	return l.totals[player]
}

// Summary returns a copy of all cumulative totals across the whole game.
func (l *DrinkLedger) Summary() map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(l.totals))
	for id, n := range l.totals {
		out[id] = n
	}
	return out
}
