package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotRegistered is returned when an operation targets an identity with no account
	ErrNotRegistered = errors.New("account not registered")
	// ErrAlreadyRegistered is returned by Register when the identity already has an account
	ErrAlreadyRegistered = errors.New("account already registered")
	// ErrInvalidStake is returned for non-positive stakes and stakes the player cannot cover
	ErrInvalidStake = errors.New("invalid stake")
	// ErrInsufficientBalance is the stake error for balances too small to cover the stake or debit
	ErrInsufficientBalance = fmt.Errorf("%w: insufficient balance", ErrInvalidStake)
	// ErrInvalidCurrency is returned for currencies outside the configured economy
	ErrInvalidCurrency = errors.New("invalid currency")
	// ErrInvalidGuess is returned for guesses or options that do not belong to the game
	ErrInvalidGuess = errors.New("invalid guess")
	// ErrChallengeNotFound is returned for unknown or forgotten challenge IDs
	ErrChallengeNotFound = errors.New("challenge not found")
	// ErrChallengeExpired is returned to the initiator when the deadline has passed
	ErrChallengeExpired = errors.New("challenge expired")
	// ErrChallengeAlreadyResolved is returned to the initiator on a second answer
	ErrChallengeAlreadyResolved = errors.New("challenge already resolved")
	// ErrStorageUnavailable is returned when the account store keeps failing after retries
	ErrStorageUnavailable = errors.New("storage unavailable")
)

const genericFailureMessage = "Sorry, something went wrong. Please try again later."

// UserMessage maps an error to a short message that is safe to show to a user
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if message, ok := userFacing(err); ok {
		return message
	}
	return genericFailureMessage
}

// IsInternal reports whether err has no user-facing meaning and should be logged by the caller
func IsInternal(err error) bool {
	if err == nil {
		return false
	}
	_, ok := userFacing(err)
	return !ok
}

func userFacing(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrNotRegistered):
		return "You need to register first! Use `/register`", true
	case errors.Is(err, ErrAlreadyRegistered):
		return "You already have an account!", true
	case errors.Is(err, ErrInsufficientBalance):
		return "You don't have enough balance to make that bet.", true
	case errors.Is(err, ErrInvalidStake):
		return "Your bet must be greater than 0.", true
	case errors.Is(err, ErrInvalidCurrency):
		return "That currency is not available.", true
	case errors.Is(err, ErrInvalidGuess):
		return "That is not a valid choice.", true
	case errors.Is(err, ErrChallengeNotFound):
		return "This challenge is no longer available.", true
	case errors.Is(err, ErrChallengeExpired):
		return "Time's up! You took too long to answer.", true
	case errors.Is(err, ErrChallengeAlreadyResolved):
		return "You already answered this challenge.", true
	default:
		return "", false
	}
}
