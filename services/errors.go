package services

import "errors"

// Service-level failures the controllers translate to HTTP statuses.
// Anything else bubbling out of a service call is a persistence failure.
var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrRewardNotFound     = errors.New("reward not found")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrNoItems            = errors.New("sale requires at least one item")
	ErrInvalidRate        = errors.New("thbPerPoint must be positive")
	ErrDebtsNotSettleable = errors.New("one or more debts are missing or already paid")
)
