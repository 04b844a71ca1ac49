package payments

import "errors"

var (
	// ErrChargeDeclined возвращается, когда провайдер отклонил платёж
	// Ошибка провайдера непрозрачна; вызывающая сторона может повторить
	// покупку новой попыткой charge
	ErrChargeDeclined = errors.New("payments client: charge declined")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("payments client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от провайдера
	ErrInvalidResponse = errors.New("payments client: invalid response")
)
