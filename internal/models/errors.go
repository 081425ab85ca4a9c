package models

import (
	"errors"
	"fmt"
)

// ValidationError rejects malformed input before any state mutation
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError signals that an operation referenced a campaign id that is
// not present in the store
type NotFoundError struct {
	CampaignID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("campaign %d not found", e.CampaignID)
}

// InvalidTransitionError signals a status change outside the allowed
// state-machine edges. The campaign state is left unchanged.
type InvalidTransitionError struct {
	From CampaignStatus
	To   CampaignStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %q to %q", e.From, e.To)
}

// IsValidation returns true if err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound returns true if err is (or wraps) a NotFoundError
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// IsInvalidTransition returns true if err is (or wraps) an InvalidTransitionError
func IsInvalidTransition(err error) bool {
	var ite *InvalidTransitionError
	return errors.As(err, &ite)
}
