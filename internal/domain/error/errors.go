package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientFunds = 4001
	CodeInvalidAmount     = 4002
	CodeInvalidPlayerID   = 4003
	CodeInvalidBet        = 4004
	CodeDuplicatePlayer   = 4005
	CodeAmountOverflow    = 4006
	CodeInvalidRequest    = 4007
	CodePlayerNotFound    = 4040

	// 5xxx - Server errors
	CodeInternalServer = 5000
	CodeTransientStore = 5030
	CodeDelivery       = 5031
)

// Base error types
var (
	// ErrPlayerNotFound is returned when the referenced player doesn't exist
	ErrPlayerNotFound = errors.New("player not found")

	// ErrInvalidBet is returned when a wager is zero or negative
	ErrInvalidBet = errors.New("bet must be positive")

	// ErrInsufficientFunds is returned when a debit would take a balance below zero
	ErrInsufficientFunds = errors.New("insufficient balance")

	// ErrTransientStore is returned when the store could not complete a unit of work.
	// The whole operation may be retried by the caller.
	ErrTransientStore = errors.New("transient store error")

	// ErrDelivery is returned when the event bus rejects or fails to accept an event
	ErrDelivery = errors.New("event delivery failed")

	// ErrInvalidAmount is returned when a ledger amount is not positive
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrAmountOverflow is returned when a credit would overflow the balance
	ErrAmountOverflow = errors.New("amount is too large and would cause overflow")

	// ErrInvalidPlayerID is returned when the player ID is empty
	ErrInvalidPlayerID = errors.New("player ID cannot be empty")

	// ErrDuplicatePlayer is returned when trying to create a player that already exists
	ErrDuplicatePlayer = errors.New("player already exists")

	// ErrOutboxEntryNotFound is returned when an outbox sequence is unknown
	ErrOutboxEntryNotFound = errors.New("outbox entry not found")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrSerializerClosed is returned when work is submitted after shutdown
	ErrSerializerClosed = errors.New("player serializer is shut down")

	// ErrRandomSource is returned when the random source cannot produce a value
	ErrRandomSource = errors.New("random source failure")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidPlayerID):
		return CodeInvalidPlayerID
	case errors.Is(err, ErrInvalidBet):
		return CodeInvalidBet
	case errors.Is(err, ErrDuplicatePlayer):
		return CodeDuplicatePlayer
	case errors.Is(err, ErrAmountOverflow):
		return CodeAmountOverflow
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrPlayerNotFound):
		return CodePlayerNotFound
	case errors.Is(err, ErrTransientStore), errors.Is(err, ErrSerializerClosed):
		return CodeTransientStore
	case errors.Is(err, ErrDelivery):
		return CodeDelivery
	default:
		return CodeInternalServer
	}
}

// InsufficientFundsError provides detailed error information for a rejected debit
type InsufficientFundsError struct {
	PlayerID       string
	Amount         int64
	CurrentBalance int64
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient balance for player %s: required %d, available %d",
		e.PlayerID, e.Amount, e.CurrentBalance)
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_funds",
		"player_id":       e.PlayerID,
		"amount":          e.Amount,
		"current_balance": e.CurrentBalance,
		"error_code":      CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a new detailed insufficient funds error
func NewInsufficientFundsError(playerID string, amount, currentBalance int64) error {
	return &InsufficientFundsError{
		PlayerID:       playerID,
		Amount:         amount,
		CurrentBalance: currentBalance,
	}
}

// SpinError records the state a failed spin reached before it was aborted
type SpinError struct {
	PlayerID string
	Bet      int64
	State    string
	Err      error
}

// Error implements the error interface for SpinError
func (e *SpinError) Error() string {
	return fmt.Sprintf("spin failed for player %s (bet: %d, state: %s): %v",
		e.PlayerID, e.Bet, e.State, e.Err)
}

// Unwrap returns the underlying error
func (e *SpinError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *SpinError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type": "spin_error",
		"player_id":  e.PlayerID,
		"bet":        e.Bet,
		"state":      e.State,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}

	var funds *InsufficientFundsError
	if errors.As(e.Err, &funds) {
		fields["current_balance"] = funds.CurrentBalance
	}
	return fields
}

// NewSpinError creates a detailed spin error
func NewSpinError(playerID string, bet int64, state string, err error) error {
	return &SpinError{
		PlayerID: playerID,
		Bet:      bet,
		State:    state,
		Err:      err,
	}
}

// DeliveryError wraps a bus failure for a single outbox entry
type DeliveryError struct {
	Sequence uint64
	Topic    string
	Err      error
}

// Error implements the error interface
func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery of outbox entry %d to %s failed: %v", e.Sequence, e.Topic, e.Err)
}

// Unwrap returns the underlying error
func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrDelivery
func (e *DeliveryError) Is(target error) bool {
	return target == ErrDelivery
}

// NewDeliveryError creates a new delivery error
func NewDeliveryError(sequence uint64, topic string, err error) error {
	return &DeliveryError{Sequence: sequence, Topic: topic, Err: err}
}

// IsPlayerNotFoundError checks if the error is a player not found error
func IsPlayerNotFoundError(err error) bool {
	return errors.Is(err, ErrPlayerNotFound)
}

// IsInsufficientFundsError checks if the error is related to insufficient funds
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsTransientStoreError checks if the caller may retry the operation
func IsTransientStoreError(err error) bool {
	return errors.Is(err, ErrTransientStore)
}

// IsClientError reports whether the error was caused by caller input
func IsClientError(err error) bool {
	code := ErrorCode(err)
	return code >= 4000 && code < 5000
}
