package errors

import (
	"powchain/jsonx"
)

// ChainErrorCode represents standardized error codes for ledger operations
type ChainErrorCode string

const (
	// General errors
	ErrCodeInternal ChainErrorCode = "internal_error"

	// Configuration errors
	ErrCodeInvalidDifficulty = "invalid_difficulty"

	// Integrity errors
	ErrCodeDigestMismatch = "digest_mismatch"
	ErrCodeLinkMismatch   = "link_mismatch"

	// Operational errors
	ErrCodeMiningCancelled = "mining_cancelled"
)

// ChainError represents a standardized ledger error
type ChainError struct {
	Code    ChainErrorCode `json:"code"`
	Message string         `json:"message"`
}

// Error implements the error interface
func (e *ChainError) Error() string {
	err, _ := jsonx.Marshal(ChainError{
		Code:    e.Code,
		Message: e.Message,
	})
	return string(err)
}

func NewChainError(code ChainErrorCode, message string) *ChainError {
	return &ChainError{
		Code:    code,
		Message: message,
	}
}

func NewInvalidDifficultyError(message string) *ChainError {
	return NewChainError(ErrCodeInvalidDifficulty, message)
}

func NewDigestMismatchError(message string) *ChainError {
	return NewChainError(ErrCodeDigestMismatch, message)
}

func NewLinkMismatchError(message string) *ChainError {
	return NewChainError(ErrCodeLinkMismatch, message)
}

func NewMiningCancelledError(message string) *ChainError {
	return NewChainError(ErrCodeMiningCancelled, message)
}
