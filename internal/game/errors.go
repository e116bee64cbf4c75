package game

import "errors"

// Validation errors reported back to the originating participant. None of
// these are fatal to the room.
var (
	ErrAlreadyShown                 = errors.New("pyramid card has already been shown")
	ErrRoundInProgress              = errors.New("a round is still open; close it before revealing another card")
	ErrNoActiveRound                = errors.New("no round is currently open")
	ErrUnknownOrResolvedTransaction = errors.New("transaction does not exist or is already resolved")
	ErrUnknownPlayer                = errors.New("player is not part of this room")
	ErrSelfCall                     = errors.New("players cannot call a drink on themselves")
	ErrCardNotInHand                = errors.New("revealed card is not in the caller's hand")
	ErrNotHost                      = errors.New("only the host may perform this action")
	ErrGameStarted                  = errors.New("game has already started")
	ErrGameNotStarted               = errors.New("game has not started yet")
	ErrGameOver                     = errors.New("game has already ended")
)
