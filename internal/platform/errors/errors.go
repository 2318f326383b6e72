package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrExternalService = errors.New("external service failed")
	ErrAlreadyAudited  = errors.New("wager already audited")
)
