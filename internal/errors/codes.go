package errors

import "net/http"

// Code classifies an error for boundary translation.
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeNotFound        Code = "NOT_FOUND"
	CodeAlreadyExists   Code = "ALREADY_EXISTS"
	CodeUnavailable     Code = "UNAVAILABLE"
	CodeRateLimited     Code = "RATE_LIMITED"
	CodeBadUpstream     Code = "BAD_UPSTREAM"
	CodeInternal        Code = "INTERNAL"
)

// String returns the string representation of the code.
func (c Code) String() string {
	return string(c)
}

// HTTPStatus returns the HTTP status code this error code maps to.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeUnavailable, CodeBadUpstream, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
