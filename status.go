package markdownizer

import "net/http"

// MaxSkeletonBytes is the largest request body a conversion backend accepts.
const MaxSkeletonBytes = 1 << 20

// StatusMessage maps an HTTP status returned by a conversion backend to a
// message suitable for showing to the user.
func StatusMessage(status int, technical string) string {
	switch status {
	case http.StatusBadRequest:
		return "The request was invalid. Try refreshing the page."
	case http.StatusForbidden:
		return "Unauthorized request. Try reinstalling the extension."
	case http.StatusRequestEntityTooLarge:
		return "This page is too large to convert (Limit: 1MB)."
	case http.StatusTooManyRequests:
		return "Too many requests! Please wait a minute before trying again."
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return "Our server is temporarily down. Please try again later."
	}
	if technical != "" {
		return technical
	}
	return "An unexpected error occurred."
}

// StatusCode maps an HTTP status to an application error code.
func StatusCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return EINVALID
	case http.StatusUnauthorized, http.StatusForbidden:
		return EUNAUTHORIZED
	case http.StatusNotFound:
		return ENOTFOUND
	case http.StatusConflict:
		return ECONFLICT
	case http.StatusRequestEntityTooLarge:
		return ETOOLARGE
	case http.StatusTooManyRequests:
		return ERATELIMIT
	case http.StatusNotImplemented:
		return ENOTIMPLEMENTED
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return EUNAVAILABLE
	}
	return EINTERNAL
}

// HTTPStatus maps an application error code to an HTTP status.
func HTTPStatus(code string) int {
	switch code {
	case "":
		return http.StatusOK
	case EINVALID:
		return http.StatusBadRequest
	case EUNAUTHORIZED:
		return http.StatusForbidden
	case ENOTFOUND:
		return http.StatusNotFound
	case ECONFLICT:
		return http.StatusConflict
	case ETOOLARGE:
		return http.StatusRequestEntityTooLarge
	case ERATELIMIT:
		return http.StatusTooManyRequests
	case ENOTIMPLEMENTED:
		return http.StatusNotImplemented
	case EUNAVAILABLE:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
