package bike

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("bike not found")
)
