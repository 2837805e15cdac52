package model

import "errors"

// Common errors used across the application
var (
	// Reducer errors. All of these leave the roster untouched: the
	// failed action is a no-op reported to the acting user only.
	ErrWrongPassword    = errors.New("incorrect password")
	ErrDraftInProgress  = errors.New("draft is in progress, new players cannot join")
	ErrWrongState       = errors.New("action not allowed in current player state")
	ErrNoLock           = errors.New("player has no locked character")
	ErrInvalidTurn      = errors.New("player cannot take a turn in this state")
	ErrInsufficientPool = errors.New("not enough characters left to allocate")

	// Draft management errors
	ErrDraftNotFound = errors.New("draft not found")
	ErrDraftExists   = errors.New("draft name already taken")
	ErrUnknownGame   = errors.New("unknown game id")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
)
