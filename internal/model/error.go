package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeEmptyFile           = "EMPTY_FILE"
	ErrCodeInvalidFileType     = "INVALID_FILE_TYPE"
	ErrCodeInvalidCSV          = "INVALID_CSV"
	ErrCodeMissingFile         = "MISSING_FILE"
	ErrCodeFileTooLarge        = "FILE_TOO_LARGE"
	ErrCodeDealIDRequired      = "DEAL_ID_REQUIRED"
	ErrCodeInvalidFromCurrency = "INVALID_FROM_CURRENCY"
	ErrCodeInvalidToCurrency   = "INVALID_TO_CURRENCY"
	ErrCodeInvalidAmount       = "INVALID_AMOUNT"
	ErrCodeInvalidTimestamp    = "INVALID_TIMESTAMP"
	ErrCodeDuplicateDeal       = "DUPLICATE_DEAL"
	ErrCodeDealNotFound        = "DEAL_NOT_FOUND"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// DomainError is a business error identified by its Code.
// Two DomainErrors match under errors.Is when their codes are equal, so a
// wrapped copy produced by Wrap still matches the sentinel it came from.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap returns a copy of e carrying err as its cause.
func (e *DomainError) Wrap(err error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Batch-level rejections. Any of these aborts an import before a single row is processed.
var (
	ErrEmptyFile       = NewDomainError(ErrCodeEmptyFile, "File is empty")
	ErrInvalidFileType = NewDomainError(ErrCodeInvalidFileType, "Invalid file type. Only CSV files are allowed")
	ErrInvalidCSV      = NewDomainError(ErrCodeInvalidCSV, "Invalid CSV format")
)

// Record-level validation reasons. The message is reported verbatim in ImportResult.Errors.
var (
	ErrDealIDRequired      = NewDomainError(ErrCodeDealIDRequired, "Deal ID is required")
	ErrInvalidFromCurrency = NewDomainError(ErrCodeInvalidFromCurrency, "Invalid fromCurrency code")
	ErrInvalidToCurrency   = NewDomainError(ErrCodeInvalidToCurrency, "Invalid toCurrency code")
	ErrInvalidAmount       = NewDomainError(ErrCodeInvalidAmount, "Amount must be a positive number")
	ErrInvalidTimestamp    = NewDomainError(ErrCodeInvalidTimestamp, "Invalid or future timestamp")
)

// Storage errors
var (
	ErrDuplicateDeal = NewDomainError(ErrCodeDuplicateDeal, "Deal already exists")
	ErrDealNotFound  = NewDomainError(ErrCodeDealNotFound, "Deal not found")
)

// IsBatchRejection reports whether err rejects a whole import batch.
func IsBatchRejection(err error) bool {
	return errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrInvalidFileType) ||
		errors.Is(err, ErrInvalidCSV)
}
