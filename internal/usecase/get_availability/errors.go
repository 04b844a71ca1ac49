package get_availability

import "errors"

var (
	// ErrInvalidMonth невалидный формат месяца
	ErrInvalidMonth = errors.New("invalid month format")
)
