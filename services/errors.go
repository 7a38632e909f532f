package services

import "errors"

// ValidationError marks a recoverable request error: the caller gets a 4xx
// and the datastore is left untouched. Raised before or inside the atomic
// unit that would otherwise commit, never after a partial mutation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

var (
	ErrInvalidAmount     = &ValidationError{Msg: "amount must be greater than zero"}
	ErrInsufficientFunds = &ValidationError{Msg: "insufficient wallet balance"}
	ErrNotPending        = &ValidationError{Msg: "only pending records can be reviewed"}
	ErrPlanLimits        = &ValidationError{Msg: "amount is outside the plan limits"}
	ErrPlanInactive      = &ValidationError{Msg: "investment plan is not active"}
	ErrUnsupportedType   = &ValidationError{Msg: "unsupported transaction type"}
	ErrNotMatured        = &ValidationError{Msg: "investment has not reached its end date"}
	ErrNotApproved       = &ValidationError{Msg: "investment is not approved"}
)

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
