package mockpay

import "errors"

var (
	// ErrInvalidRequest is returned when the request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidCardNumber is returned when the card number is not 16 digits
	ErrInvalidCardNumber = errors.New("card number must be 16 digits")

	// ErrInvalidCVV is returned when the CVV is not 3 digits
	ErrInvalidCVV = errors.New("cvv must be 3 digits")

	// ErrInvalidExpiry is returned when the expiry month/year is malformed or past
	ErrInvalidExpiry = errors.New("invalid card expiry")

	// ErrMissingHolderName is returned when the card holder name is empty
	ErrMissingHolderName = errors.New("card holder name is required")

	// ErrInvalidAmount is returned when the charge amount is not positive
	ErrInvalidAmount = errors.New("charge amount must be positive")

	// ErrCardDeclined is returned when the card is on the configured decline list
	ErrCardDeclined = errors.New("card declined")

	// ErrProcessingAborted is returned when the caller cancels mid-processing
	ErrProcessingAborted = errors.New("payment processing aborted")
)
