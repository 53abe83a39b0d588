package errutil

import "net/http"

// CoreStatus is the transport-independent error classification used across
// the platform. Services return BaseError values carrying one of these codes
// and the HTTP layer maps them at the edge.
type CoreStatus string

const (
	StatusBadRequest         CoreStatus = "BAD_REQUEST"
	StatusValidationFailed   CoreStatus = "VALIDATION_FAILED"
	StatusUnauthorized       CoreStatus = "UNAUTHORIZED"
	StatusForbidden          CoreStatus = "FORBIDDEN"
	StatusNotFound           CoreStatus = "NOT_FOUND"
	StatusConflict           CoreStatus = "CONFLICT"
	StatusTooManyRequests    CoreStatus = "TOO_MANY_REQUESTS"
	StatusInternal           CoreStatus = "INTERNAL"
	StatusNotImplemented     CoreStatus = "NOT_IMPLEMENTED"
	StatusServiceUnavailable CoreStatus = "SERVICE_UNAVAILABLE"
	StatusTimeout            CoreStatus = "TIMEOUT"
	StatusUnknown            CoreStatus = "UNKNOWN"
)

// HTTPStatus converts the CoreStatus to its closest HTTP status code equivalent.
func (s CoreStatus) HTTPStatus() int {
	switch s {
	case StatusBadRequest, StatusValidationFailed:
		return http.StatusBadRequest
	case StatusUnauthorized:
		return http.StatusUnauthorized
	case StatusForbidden:
		return http.StatusForbidden
	case StatusNotFound:
		return http.StatusNotFound
	case StatusConflict:
		return http.StatusConflict
	case StatusTooManyRequests:
		return http.StatusTooManyRequests
	case StatusNotImplemented:
		return http.StatusNotImplemented
	case StatusServiceUnavailable:
		return http.StatusServiceUnavailable
	case StatusTimeout:
		return http.StatusGatewayTimeout
	case StatusInternal, StatusUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
