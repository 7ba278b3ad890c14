package utils

import "errors"

// Common application errors used across services.
var (
	ErrProductNotFound     = errors.New("PRODUCT_NOT_FOUND")
	ErrProductTypeNotFound = errors.New("PRODUCT_TYPE_NOT_FOUND")
	ErrUserNotFound        = errors.New("USER_NOT_FOUND")
	ErrAlreadyReacted      = errors.New("ALREADY_REACTED")
	ErrNotOwner            = errors.New("NOT_OWNER")
	ErrInvalidToken        = errors.New("INVALID_TOKEN")
	ErrInvalidCredentials  = errors.New("INVALID_CREDENTIALS")
	ErrEmailTaken          = errors.New("EMAIL_TAKEN")
)
