package purchase_credits

import "errors"

var (
	// ErrInvalidData невалидные данные запроса
	ErrInvalidData = errors.New("invalid purchase data")

	// ErrMemberNotFound участник не найден или деактивирован
	ErrMemberNotFound = errors.New("member not found")

	// ErrPaymentDeclined платёж отклонён провайдером; покупку можно повторить
	ErrPaymentDeclined = errors.New("payment declined")

	// ErrPaymentUnavailable платёжный провайдер недоступен
	ErrPaymentUnavailable = errors.New("payment provider unavailable")

	// ErrInternal платёж прошёл, но кредиты не зачислены;
	// требуется вмешательство оператора
	ErrInternal = errors.New("internal error")
)
