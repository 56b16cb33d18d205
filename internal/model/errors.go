package model

import "errors"

var (
	ErrInvalidBet          = errors.New("bet must be a positive number")
	ErrBetTooHigh          = errors.New("bet exceeds the table limit")
	ErrInvalidMultiplier   = errors.New("multiplier must be at least 1")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidGridSize     = errors.New("grid size must be at least 3")
	ErrMalformedGrid       = errors.New("grid must be square")
	ErrUnknownSymbol       = errors.New("symbol is not in the catalog")
	ErrInvalidCatalog      = errors.New("invalid symbol catalog")
	ErrInsufficientBalance = errors.New("not enough balance")
	ErrNoUser              = errors.New("user id not found in context")
	ErrUserNotFound        = errors.New("user not found")
)
