package errors

import "net/http"

var ErrDuplicateLink = &Exception{
	Message:    "drive link already exists",
	StatusCode: http.StatusConflict,
}
