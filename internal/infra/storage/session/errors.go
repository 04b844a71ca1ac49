package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("session.repository: session not found")

	// ErrSlotTaken возвращается при нарушении уникальности активной сессии
	// на пару (дата, слот) — слот уже занят
	ErrSlotTaken = errors.New("session.repository: slot already taken")

	// ErrNotCancellable возвращается, когда сессия уже в финальном статусе
	ErrNotCancellable = errors.New("session.repository: session is not cancellable")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("session.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("session.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("session.repository: failed to scan row")
)
