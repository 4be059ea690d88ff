package errors

import "net/http"

var ErrLinkNotFound = &Exception{
	Message:    "drive link not found",
	StatusCode: http.StatusNotFound,
}
