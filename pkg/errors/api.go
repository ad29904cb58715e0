package errors

import "fmt"

/*
APIError represents an application-level error signaled by an "error" field
in an otherwise successful response from the memory API.
*/
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

/*
ContractError represents a response that violates the memory API contract,
such as a create response that reports no error but carries no identifier.
*/
type ContractError struct {
	Message string
}

func (e *ContractError) Error() string {
	return e.Message
}

// NewContractErrorf creates a ContractError with a formatted message.
func NewContractErrorf(format string, args ...any) *ContractError {
	return &ContractError{Message: fmt.Sprintf(format, args...)}
}
