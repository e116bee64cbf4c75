package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/pyramid-live/pyramid/internal/models"
)

// TransactionResult is the lifecycle state of a drink call.
type TransactionResult string

const (
	// ResultPending means the target has not yet accepted or disputed.
	ResultPending TransactionResult = "pending"
	// ResultAccepted means the target accepted and drinks 1x the round row.
	ResultAccepted TransactionResult = "accepted"
	// ResultBullshit means the target disputed; the caller must now reveal a
	// hand card as proof. Not terminal.
	ResultBullshit TransactionResult = "bullshit"
	// ResultBullshitCorrect means the caller proved the claim; the target
	// drinks 2x the round row.
	ResultBullshitCorrect TransactionResult = "bullshit_correct"
	// ResultBullshitWrong means the caller was bluffing and drinks 2x the
	// round row themselves.
	ResultBullshitWrong TransactionResult = "bullshit_wrong"
)

// Terminal reports whether no further mutation of the transaction is allowed.
func (r TransactionResult) Terminal() bool {
	switch r {
	case ResultAccepted, ResultBullshitCorrect, ResultBullshitWrong:
		return true
	}
	return false
}

// Transaction is a single drink call within a round. Num is unique within the
// round and assigned in call order. CanWin is a snapshot taken at call time:
// whether the caller's hand held a card matching the round card's rank.
// Result mutates exactly once, pending -> terminal (via bullshit), and the
// transaction is never deleted while its round is open.
type Transaction struct {
	Num    int               `json:"trans_num"`
	From   uuid.UUID         `json:"from_player"`
	To     uuid.UUID         `json:"to_player"`
	CanWin bool              `json:"can_win"`
	Result TransactionResult `json:"result"`
}

// Round is the period during which one pyramid card is face up. Numbers are
// 1-based, strictly increasing for the lifetime of a game and never reused.
// RevealedAt anchors the card-view countdown: clients recompute remaining
// time from this timestamp rather than a local countdown.
type Round struct {
	Number       int            `json:"round_number"`
	Row          int            `json:"round_row"`
	Card         models.Card    `json:"round_card"`
	RevealedAt   time.Time      `json:"revealed_at"`
	Transactions []*Transaction `json:"round_transactions"`
}

// FirstPending returns the oldest unresolved transaction, or nil. The "current
// decision" shown to clients is derived from call order rather than stored.
func (r *Round) FirstPending() *Transaction {
	for _, t := range r.Transactions {
		if t.Result == ResultPending {
			return t
		}
	}
	return nil
}

// findTransaction returns the transaction with the given number, or nil.
func (r *Round) findTransaction(num int) *Transaction {
	for _, t := range r.Transactions {
		if t.Num == num {
			return t
		}
	}
	return nil
}
