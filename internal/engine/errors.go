// ABOUTME: Error types returned by the engine.
// ABOUTME: StoreError wraps persistence failures; ErrInvalidMealLog flags bad payloads.
package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidMealLog is returned when a meal log fails validation.
var ErrInvalidMealLog = errors.New("invalid meal log")

// StoreError reports a failed store operation for a user.
type StoreError struct {
	Op     string
	UserID string
	Err    error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s for user %s: %v", e.Op, e.UserID, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op, userID string, err error) error {
	return &StoreError{Op: op, UserID: userID, Err: err}
}
