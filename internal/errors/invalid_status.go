package errors

import "net/http"

var ErrInvalidStatus = &Exception{
	Message:    "unrecognized status value",
	StatusCode: http.StatusBadRequest,
}
