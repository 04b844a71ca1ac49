package book_session

import "errors"

var (
	// ErrInvalidData невалидные данные запроса
	ErrInvalidData = errors.New("invalid booking data")

	// ErrMemberNotFound участник не найден или деактивирован
	ErrMemberNotFound = errors.New("member not found")

	// ErrSlotNotFound слот с таким кодом не существует
	ErrSlotNotFound = errors.New("slot not found")

	// ErrDateTooFarInFuture дата брони за пределами горизонта бронирования
	ErrDateTooFarInFuture = errors.New("session date is too far in the future")

	// ErrSlotUnavailable слот занят или не предлагается в эту дату
	ErrSlotUnavailable = errors.New("slot unavailable")

	// ErrInsufficientCredits недостаточно кредитов для списания
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrBookingFailed бронирование не удалось после списания кредитов;
	// компенсация могла не примениться, требуется вмешательство оператора
	ErrBookingFailed = errors.New("booking failed")
)
