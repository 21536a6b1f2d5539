package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "payrecon/internal/errors"
)

// Response is the envelope of every JSON endpoint. Exactly one of Data
// and Error is set.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error is the error part of a Response
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success creates a successful response with data.
func Success(data any) Response {
	return Response{Data: data}
}

// Fail creates an error response.
func Fail(code, message, details string) Response {
	return Response{Error: &Error{Code: code, Message: message, Details: details}}
}

// statusOf maps an error to the HTTP status it is reported with
func statusOf(err error) int {
	switch code := apperrors.CodeOf(err); {
	case code == apperrors.CodeUploadTooLarge:
		return http.StatusRequestEntityTooLarge
	case code == apperrors.CodeInvalidInput:
		return http.StatusBadRequest
	case apperrors.IsUserError(err):
		return http.StatusUnprocessableEntity
	case code == apperrors.CodeNotFound:
		return http.StatusNotFound
	case code == apperrors.CodeBusy:
		return http.StatusServiceUnavailable
	case code == apperrors.CodeConfigInvalid:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// messageOf returns the text shown to the user. Internal failures are not
// described beyond their code.
func messageOf(err error) string {
	if statusOf(err) == http.StatusInternalServerError {
		return "internal error"
	}
	return err.Error()
}

func (s *Server) failJSON(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed: %v", err)
	}
	c.AbortWithStatusJSON(status, Fail(apperrors.CodeOf(err), messageOf(err), ""))
}
