package ledger

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись не найдена
	ErrEntryNotFound = errors.New("ledger.repository: entry not found")

	// ErrAlreadyRefunded возвращается при повторном refund по одному booking_ref
	// Гарантируется частичным уникальным индексом по reference для refund-записей
	ErrAlreadyRefunded = errors.New("ledger.repository: booking already refunded")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("ledger.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("ledger.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("ledger.repository: failed to scan row")
)
