package booking

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPolicyViolation   = errors.New("booking policy violation")
	ErrNotFound          = errors.New("booking not found")
	ErrServiceNotFound   = errors.New("service not found")
	ErrForbidden         = errors.New("forbidden")

	// ErrReferenceExhausted is returned when reference generation keeps
	// colliding after the bounded number of retries.
	ErrReferenceExhausted = errors.New("could not allocate a unique booking reference")
)

// Policy rules named in PolicyError so callers can present the exact refusal.
const (
	RuleCancelStatus     = "cancel_status"
	RuleCancelWindow     = "cancel_window"
	RuleRescheduleStatus = "reschedule_status"
	RuleRescheduleWindow = "reschedule_window"
	RuleRescheduleLimit  = "reschedule_limit"
)

// ValidationError reports malformed or missing input on a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// TransitionError reports a status change attempted out of a terminal or
// incompatible state.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition booking from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// PolicyError reports a business-rule refusal with the specific rule
// violated, so the caller can present an actionable message.
type PolicyError struct {
	Rule    string
	Message string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("policy %s: %s", e.Rule, e.Message)
}

func (e *PolicyError) Unwrap() error { return ErrPolicyViolation }
