package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/weather-beats/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// fromDomainError maps a domain error onto a response. invalid_input is a 400 carrying the
// domain message; everything else is a 500. A non-empty internalMessage replaces the domain
// message on 500s so upstream details stay in the logs.
func fromDomainError(err error, internalMessage string) *HTTPError {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		message := internalMessage
		if message == "" {
			message = "something went wrong"
		}
		return NewHTTPError(http.StatusInternalServerError, "internal_error", message, err)
	}
	if appErr.Code == apperrors.CodeInvalidInput {
		return NewHTTPError(http.StatusBadRequest, appErr.Code, appErr.Message, err)
	}
	message := appErr.Message
	if internalMessage != "" {
		message = internalMessage
	}
	return NewHTTPError(http.StatusInternalServerError, appErr.Code, message, err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return fromDomainError(err, "")
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
