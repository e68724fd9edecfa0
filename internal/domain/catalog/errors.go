package catalog

import "errors"

var (
	ErrNotFound   = errors.New("service not found")
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("forbidden")
)
