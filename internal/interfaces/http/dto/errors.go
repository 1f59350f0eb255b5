package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Cost allocation error codes
const (
	// ErrCodeManualValueMissing is used when a manual line has no assigned unit cost
	ErrCodeManualValueMissing = "ERR_MANUAL_VALUE_MISSING"
	// ErrCodeManualExceedsTotal is used when manual line costs exceed the order total
	ErrCodeManualExceedsTotal = "ERR_MANUAL_EXCEEDS_TOTAL"
	// ErrCodeZeroWeightPool is used when market-value lines carry no usable weight
	ErrCodeZeroWeightPool = "ERR_ZERO_WEIGHT_POOL"
)

// Receiving error codes
const (
	// ErrCodeLineNotFound is used when a commit references a line outside the order
	ErrCodeLineNotFound = "ERR_LINE_NOT_FOUND"
	// ErrCodeStaleWrite is used when a line changed underneath a receiving commit
	ErrCodeStaleWrite = "ERR_STALE_WRITE"
	// ErrCodeQuantityExceedsRemaining is used when a receipt overshoots the remaining quantity
	ErrCodeQuantityExceedsRemaining = "ERR_QUANTITY_EXCEEDS_REMAINING"
	// ErrCodeNothingToReceive is used when a commit carries no positive quantities
	ErrCodeNothingToReceive = "ERR_NOTHING_TO_RECEIVE"
	// ErrCodeOrderLocked is used when modifying a locked purchase order
	ErrCodeOrderLocked = "ERR_ORDER_LOCKED"
	// ErrCodeOrderNotLocked is used when receiving against an unlocked purchase order
	ErrCodeOrderNotLocked = "ERR_ORDER_NOT_LOCKED"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,

	// Cost allocation errors -> 422 Unprocessable Entity
	ErrCodeManualValueMissing: http.StatusUnprocessableEntity,
	ErrCodeManualExceedsTotal: http.StatusUnprocessableEntity,
	ErrCodeZeroWeightPool:     http.StatusUnprocessableEntity,

	// Receiving errors
	ErrCodeLineNotFound:             http.StatusNotFound,
	ErrCodeStaleWrite:               http.StatusConflict,
	ErrCodeQuantityExceedsRemaining: http.StatusUnprocessableEntity,
	ErrCodeNothingToReceive:         http.StatusUnprocessableEntity,
	ErrCodeOrderLocked:              http.StatusConflict,
	ErrCodeOrderNotLocked:           http.StatusConflict,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps raw domain error codes to the standardized
// HTTP-facing codes. Domain packages raise codes without the ERR_ prefix.
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"BAD_REQUEST":          ErrCodeBadRequest,
	"INTERNAL_ERROR":       ErrCodeInternal,

	// Field-level validation raised by domain constructors
	"INVALID_ORDER_NUMBER":     ErrCodeValidation,
	"INVALID_PRODUCT_REF":      ErrCodeValidation,
	"INVALID_QUANTITY":         ErrCodeValidation,
	"INVALID_COST_METHOD":      ErrCodeValidation,
	"INVALID_COST_FIELD":       ErrCodeValidation,
	"INVALID_ALLOCATION_BASIS": ErrCodeValidation,
	"INVALID_UNIT_COST":        ErrCodeValidation,
	"INVALID_SKU":              ErrCodeValidation,

	// Cost allocation
	"MANUAL_VALUE_MISSING": ErrCodeManualValueMissing,
	"MANUAL_EXCEEDS_TOTAL": ErrCodeManualExceedsTotal,
	"ZERO_WEIGHT_POOL":     ErrCodeZeroWeightPool,

	// Receiving
	"LINE_NOT_FOUND":             ErrCodeLineNotFound,
	"STALE_WRITE":                ErrCodeStaleWrite,
	"QUANTITY_EXCEEDS_REMAINING": ErrCodeQuantityExceedsRemaining,
	"NOTHING_TO_RECEIVE":         ErrCodeNothingToReceive,
	"PO_LOCKED":                  ErrCodeOrderLocked,
	"PO_NOT_LOCKED":              ErrCodeOrderNotLocked,
}

// NormalizeErrorCode converts a raw domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
