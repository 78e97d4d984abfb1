package domain

import "errors"

// Engine errors. Handlers map each to a distinct HTTP response; services
// return them wrapped so errors.Is works across layers.
var (
	ErrInvalidAmount                = errors.New("amount must be a positive number of paise")
	ErrInsufficientFunds            = errors.New("insufficient balance in the selected source")
	ErrInsufficientPoolFunds        = errors.New("round-up pool balance is insufficient")
	ErrUnknownOption                = errors.New("unknown portfolio option")
	ErrStalePrice                   = errors.New("option has no usable price")
	ErrSettlementVerificationFailed = errors.New("payment settlement verification failed")
	ErrConcurrentModification       = errors.New("record was modified concurrently, retry")
)
