/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

type ErrorCode string

const (
	ErrNotFound                    ErrorCode = "NOT_FOUND"
	ErrBadRequest                  ErrorCode = "BAD_REQUEST"
	ErrInternalServer              ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrConsentNotFound             ErrorCode = "CONSENT_NOT_FOUND"
	ErrConsentNotAuthorised        ErrorCode = "CONSENT_NOT_AUTHORISED"
	ErrAccountNotAuthorised        ErrorCode = "ACCOUNT_NOT_AUTHORISED"
	ErrValidationFailed            ErrorCode = "VALIDATION_FAILED"
	ErrIdempotencyKeyReuseConflict ErrorCode = "IDEMPOTENCY_KEY_REUSE_CONFLICT"
	ErrInvalidStatusTransition     ErrorCode = "INVALID_STATUS_TRANSITION"
	ErrStorageUnavailable          ErrorCode = "STORAGE_UNAVAILABLE"
)

// Open Banking field level error codes.
const (
	OBFieldMissing            = "UK.OBIE.Field.Missing"
	OBFieldInvalid            = "UK.OBIE.Field.Invalid"
	OBFieldInvalidDate        = "UK.OBIE.Field.InvalidDate"
	OBFieldExpected           = "UK.OBIE.Field.Expected"
	OBFieldUnexpected         = "UK.OBIE.Field.Unexpected"
	OBHeaderMissing           = "UK.OBIE.Header.Missing"
	OBHeaderInvalid           = "UK.OBIE.Header.Invalid"
	OBResourceNotFound        = "UK.OBIE.Resource.NotFound"
	OBResourceConsentMismatch = "UK.OBIE.Resource.ConsentMismatch"
	OBResourceInvalidConsent  = "UK.OBIE.Resource.InvalidConsentStatus"
	OBUnsupportedScheme       = "UK.OBIE.Unsupported.Scheme"
	OBUnsupportedCurrency     = "UK.OBIE.Unsupported.Currency"
	OBUnsupportedFrequency    = "UK.OBIE.Unsupported.Frequency"
	OBIdempotencyKeyReused    = "UK.OBIE.Resource.IdempotencyKeyReused"
	OBInvalidStatusTransition = "UK.OBIE.Resource.InvalidStatusTransition"
	OBUnexpectedError         = "UK.OBIE.UnexpectedError"
)

// FieldError is one entry of the errors array of an Open Banking error response.
type FieldError struct {
	ErrorCode string `json:"ErrorCode"`
	Message   string `json:"Message"`
	Path      string `json:"Path,omitempty"`
}

type APIError struct {
	Code    ErrorCode    `json:"code"`
	Message string       `json:"message"`
	Details interface{}  `json:"details,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (e APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAPIError(code ErrorCode, message string, details interface{}) APIError {
	if details != nil {
		logrus.WithField("code", code).Error(details)
	}
	return APIError{
		Code:    code,
		Message: message,
		Details: details,
		Errors:  []FieldError{{ErrorCode: defaultFieldCode(code), Message: message}},
	}
}

// NewValidationError aggregates field errors into a single VALIDATION_FAILED error.
func NewValidationError(fieldErrors []FieldError) APIError {
	return APIError{
		Code:    ErrValidationFailed,
		Message: "The request failed validation",
		Errors:  fieldErrors,
	}
}

// HasCode reports whether err is, or wraps, an APIError carrying code.
func HasCode(err error, code ErrorCode) bool {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}

func defaultFieldCode(code ErrorCode) string {
	switch code {
	case ErrNotFound, ErrConsentNotFound:
		return OBResourceNotFound
	case ErrConsentNotAuthorised:
		return OBResourceInvalidConsent
	case ErrAccountNotAuthorised:
		return OBResourceConsentMismatch
	case ErrValidationFailed, ErrBadRequest:
		return OBFieldInvalid
	case ErrIdempotencyKeyReuseConflict:
		return OBIdempotencyKeyReused
	case ErrInvalidStatusTransition:
		return OBInvalidStatusTransition
	default:
		return OBUnexpectedError
	}
}

func MapErrorToHTTPStatus(err error) int {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case ErrNotFound:
			return http.StatusNotFound
		case ErrBadRequest, ErrValidationFailed, ErrConsentNotFound, ErrConsentNotAuthorised, ErrAccountNotAuthorised:
			return http.StatusBadRequest
		case ErrIdempotencyKeyReuseConflict, ErrInvalidStatusTransition:
			return http.StatusConflict
		case ErrStorageUnavailable:
			return http.StatusServiceUnavailable
		case ErrInternalServer:
			return http.StatusInternalServerError
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the Open Banking error body.
type ErrorResponse struct {
	Code    string       `json:"Code"`
	ID      string       `json:"Id,omitempty"`
	Message string       `json:"Message"`
	Errors  []FieldError `json:"Errors"`
}

// ToResponse renders err as an Open Banking error body. Errors that are not APIErrors are
// reported as unexpected without leaking their text.
func ToResponse(err error, requestID string) ErrorResponse {
	var apiErr APIError
	if !errors.As(err, &apiErr) {
		return ErrorResponse{
			Code:    string(ErrInternalServer),
			ID:      requestID,
			Message: "An unexpected error occurred",
			Errors:  []FieldError{{ErrorCode: OBUnexpectedError, Message: "An unexpected error occurred"}},
		}
	}
	fieldErrors := apiErr.Errors
	if len(fieldErrors) == 0 {
		fieldErrors = []FieldError{{ErrorCode: defaultFieldCode(apiErr.Code), Message: apiErr.Message}}
	}
	return ErrorResponse{
		Code:    string(apiErr.Code),
		ID:      requestID,
		Message: apiErr.Message,
		Errors:  fieldErrors,
	}
}
