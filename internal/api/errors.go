// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package api

import (
	"net/http"

	"github.com/tomtom215/cratedigger/internal/models"
	"github.com/tomtom215/cratedigger/internal/validation"
)

// Error codes for API responses
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeValidation         = validation.ErrorCode
)

// handlerError is an API error paired with its HTTP status.
type handlerError struct {
	status int
	err    models.APIError
}

func newHandlerError(status int, code, message string) *handlerError {
	return &handlerError{
		status: status,
		err:    models.APIError{Code: code, Message: message},
	}
}

func errBadRequest(message string) *handlerError {
	return newHandlerError(http.StatusBadRequest, ErrCodeBadRequest, message)
}

func errNotFound(message string) *handlerError {
	return newHandlerError(http.StatusNotFound, ErrCodeNotFound, message)
}

func errInternal(message string) *handlerError {
	return newHandlerError(http.StatusInternalServerError, ErrCodeInternalError, message)
}

// errValidation converts a validation failure into a 422 response.
func errValidation(verr *validation.RequestValidationError) *handlerError {
	apiErr := verr.ToAPIError()
	return &handlerError{
		status: http.StatusUnprocessableEntity,
		err: models.APIError{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		},
	}
}
