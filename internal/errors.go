package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeConflict   ErrorType = "CONFLICT"
	ErrorTypeInternal   ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Permit eligibility reasons.
	ErrCodeQuotaExceeded            ErrorCode = "QUOTA_EXCEEDED"
	ErrCodeRestrictedSlotPermitType ErrorCode = "INVALID_PERMIT_TYPE_FOR_RESTRICTED_SLOT"
	ErrCodeInvalidPermitType        ErrorCode = "INVALID_PERMIT_TYPE"
	ErrCodeInvalidZoneForClass      ErrorCode = "INVALID_ZONE_FOR_CLASS"
	ErrCodeInvalidSpaceType         ErrorCode = "INVALID_SPACE_TYPE"
	ErrCodeInvalidDateRange         ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeDuplicatePermitID        ErrorCode = "DUPLICATE_PERMIT_ID"

	// Vehicle assignment reasons.
	ErrCodeVehicleLimitReached ErrorCode = "VEHICLE_LIMIT_REACHED"

	// Lookups on weak references.
	ErrCodeDriverNotFound   ErrorCode = "DRIVER_NOT_FOUND"
	ErrCodeVehicleNotFound  ErrorCode = "VEHICLE_NOT_FOUND"
	ErrCodePermitNotFound   ErrorCode = "PERMIT_NOT_FOUND"
	ErrCodeLotNotFound      ErrorCode = "LOT_NOT_FOUND"
	ErrCodeZoneNotFound     ErrorCode = "ZONE_NOT_FOUND"
	ErrCodeSpaceNotFound    ErrorCode = "SPACE_NOT_FOUND"
	ErrCodeCitationNotFound ErrorCode = "CITATION_NOT_FOUND"

	// CRUD-side validation and integrity.
	ErrCodeInvalidDriverClass    ErrorCode = "INVALID_DRIVER_CLASS"
	ErrCodeInvalidDriverID       ErrorCode = "INVALID_DRIVER_ID"
	ErrCodeInvalidLicense        ErrorCode = "INVALID_LICENSE"
	ErrCodeInvalidVehicleYear    ErrorCode = "INVALID_VEHICLE_YEAR"
	ErrCodeInvalidZoneID         ErrorCode = "INVALID_ZONE_ID"
	ErrCodeInvalidFee            ErrorCode = "INVALID_FEE"
	ErrCodeInvalidCitationStatus ErrorCode = "INVALID_CITATION_STATUS"
	ErrCodeDuplicateDriverID     ErrorCode = "DUPLICATE_DRIVER_ID"
	ErrCodeDuplicateLicense      ErrorCode = "DUPLICATE_LICENSE"
	ErrCodeDuplicateLotName      ErrorCode = "DUPLICATE_LOT_NAME"
	ErrCodeDuplicateZone         ErrorCode = "DUPLICATE_ZONE"
	ErrCodeDuplicateSpace        ErrorCode = "DUPLICATE_SPACE"
	ErrCodeDriverHasPermits      ErrorCode = "DRIVER_HAS_PERMITS"
	ErrCodeVehicleHasPermits     ErrorCode = "VEHICLE_HAS_PERMITS"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// Sentinel business outcomes. Every rejection the rule engine or a service
// can produce maps to exactly one of these, so callers branch on identity
// and users always see a specific reason.
var (
	ErrQuotaExceeded            = NewConflictError("driver already holds the maximum number of permits for its class", ErrCodeQuotaExceeded)
	ErrRestrictedSlotPermitType = NewValidationError("only special event or park & ride permits may fill the last slot before quota", ErrCodeRestrictedSlotPermitType)
	ErrInvalidPermitType        = NewValidationError("permit type is not one of the recognized types", ErrCodeInvalidPermitType)
	ErrInvalidZoneForClass      = NewValidationError("zone is not assignable to the driver class", ErrCodeInvalidZoneForClass)
	ErrInvalidSpaceType         = NewValidationError("space type is not one of the recognized types", ErrCodeInvalidSpaceType)
	ErrInvalidDateRange         = NewValidationError("expiration date must be after start date", ErrCodeInvalidDateRange)
	ErrDuplicatePermitID        = NewConflictError("a permit with this ID already exists", ErrCodeDuplicatePermitID)
	ErrVehicleLimitReached      = NewConflictError("permit already carries the maximum number of vehicles", ErrCodeVehicleLimitReached)

	ErrDriverNotFound   = NewNotFoundError("driver not found", ErrCodeDriverNotFound)
	ErrVehicleNotFound  = NewNotFoundError("vehicle not found", ErrCodeVehicleNotFound)
	ErrPermitNotFound   = NewNotFoundError("permit not found", ErrCodePermitNotFound)
	ErrLotNotFound      = NewNotFoundError("parking lot not found", ErrCodeLotNotFound)
	ErrZoneNotFound     = NewNotFoundError("zone not found", ErrCodeZoneNotFound)
	ErrSpaceNotFound    = NewNotFoundError("space not found", ErrCodeSpaceNotFound)
	ErrCitationNotFound = NewNotFoundError("citation not found", ErrCodeCitationNotFound)

	ErrInvalidDriverClass    = NewValidationError("driver class must be employee, student or visitor", ErrCodeInvalidDriverClass)
	ErrInvalidCitationStatus = NewValidationError("citation payment status only moves from DUE to PAID or APPEALED", ErrCodeInvalidCitationStatus)
	ErrDuplicateDriverID     = NewConflictError("a driver with this ID already exists", ErrCodeDuplicateDriverID)
	ErrDuplicateLicense      = NewConflictError("a vehicle with this license already exists", ErrCodeDuplicateLicense)
	ErrDuplicateLotName      = NewConflictError("a parking lot with this name already exists", ErrCodeDuplicateLotName)
	ErrDuplicateZone         = NewConflictError("this zone already exists in the lot", ErrCodeDuplicateZone)
	ErrDuplicateSpace        = NewConflictError("this space already exists in the zone", ErrCodeDuplicateSpace)
	ErrDriverHasPermits      = NewConflictError("driver still holds permits; delete or reassign them first", ErrCodeDriverHasPermits)
	ErrVehicleHasPermits     = NewConflictError("vehicle is still attached to permits; detach it first", ErrCodeVehicleHasPermits)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
