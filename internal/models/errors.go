package models

import "fmt"

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrConnection ErrorType = iota
	ErrRemoteCommand
	ErrTransfer
	ErrCatalog
	ErrFileOp
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrConnection:
		return "Connection"
	case ErrRemoteCommand:
		return "RemoteCommand"
	case ErrTransfer:
		return "Transfer"
	case ErrCatalog:
		return "Catalog"
	case ErrFileOp:
		return "FileOp"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// CabFetchError represents an error during a cabfetch operation
type CabFetchError struct {
	Type ErrorType
	Item string
	Err  error
}

// Error implements the error interface
func (e *CabFetchError) Error() string {
	if e.Item != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Item, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *CabFetchError) Unwrap() error {
	return e.Err
}
