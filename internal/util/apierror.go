package util

import "net/http"

// ApiError is an error with an HTTP status attached. Services return these;
// controllers map anything else to a 500.
type ApiError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewApiError(statusCode int, message string) *ApiError {
	return &ApiError{StatusCode: statusCode, Message: message}
}

func BadRequest(message string) *ApiError {
	return NewApiError(http.StatusBadRequest, message)
}

func Unauthorized(message string) *ApiError {
	return NewApiError(http.StatusUnauthorized, message)
}

func Forbidden(message string) *ApiError {
	return NewApiError(http.StatusForbidden, message)
}

func NotFound(message string) *ApiError {
	return NewApiError(http.StatusNotFound, message)
}

func Conflict(message string) *ApiError {
	return NewApiError(http.StatusConflict, message)
}

func UnprocessableEntity(message string) *ApiError {
	return NewApiError(http.StatusUnprocessableEntity, message)
}

func Internal(message string) *ApiError {
	return NewApiError(http.StatusInternalServerError, message)
}
