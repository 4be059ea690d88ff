package errors

import "net/http"

var ErrInvalidLinkFormat = &Exception{
	Message:    "invalid drive link format",
	StatusCode: http.StatusBadRequest,
}
