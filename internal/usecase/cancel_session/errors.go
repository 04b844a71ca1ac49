package cancel_session

import "errors"

var (
	// ErrInvalidData невалидные данные запроса
	ErrInvalidData = errors.New("invalid cancellation data")

	// ErrSessionNotFound сессия не найдена
	ErrSessionNotFound = errors.New("session not found")

	// ErrAccessDenied сессия принадлежит другому участнику
	ErrAccessDenied = errors.New("access denied")

	// ErrAlreadyTerminal сессия уже завершена или отменена
	ErrAlreadyTerminal = errors.New("session already in terminal status")
)
