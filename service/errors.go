package service

import "errors"

var (
	// ErrInvalidInput is returned for out-of-range or non-finite inputs.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNonAmortizingPayment is returned when the monthly payment can never
	// retire the principal.
	ErrNonAmortizingPayment = errors.New("payment does not amortize the principal")
)
