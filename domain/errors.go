package domain

import "errors"

var (
	// ErrInternalServerError will throw if any Internal Server Error happens
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item does not exist
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrInvalidInput will throw if the given request-body or params is not valid
	ErrInvalidInput = errors.New("Given Param is not valid")
	// ErrUnauthorized will throw if the caller lacks the required identity or approval
	ErrUnauthorized = errors.New("Unauthorized")
	// ErrAlreadyFinalized will throw when operating on a fulfilled or cancelled item
	ErrAlreadyFinalized = errors.New("Already finalized")
	// ErrInsufficientFunds will throw when attached value plus balance is below the required amount
	ErrInsufficientFunds = errors.New("Insufficient funds")
	// ErrTransferFailed will throw when the value transfer primitive reports failure
	ErrTransferFailed = errors.New("Transfer failed")

	ErrInvalidNumberFormat = errors.New("invalid number format")

	// request error
	ErrInvalidAddress = errors.New("Invalid address")
)
