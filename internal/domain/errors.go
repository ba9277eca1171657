package domain

import "errors"

// Validation errors surfaced to the acting client. Rejected actions never
// leave partial state behind.
var (
	ErrNotYourTurn              = errors.New("not your turn")
	ErrWrongPhase               = errors.New("action not allowed in current phase")
	ErrInvalidCardIndex         = errors.New("card index out of hand bounds")
	ErrSlotFull                 = errors.New("situation already holds 5 energies")
	ErrNoTargetSituation        = errors.New("no situation card in target slot")
	ErrHandFull                 = errors.New("hand already holds 3 energies")
	ErrEmptyDeckAndDiscard      = errors.New("deck and discard are both empty")
	ErrEmptyDiscard             = errors.New("discard pile is empty")
	ErrInvalidReplacementTarget = errors.New("only the common or own private situation can be replaced")
	ErrInvalidEffectTarget      = errors.New("effect target must be player1 or player2")
	ErrUnknownAction            = errors.New("unknown action type")
	ErrUnknownPlayer            = errors.New("player not part of this match")
	ErrMatchOver                = errors.New("match already over")
)
