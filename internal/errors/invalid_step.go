package errors

import "net/http"

var ErrInvalidStep = &Exception{
	Message:    "unrecognized step number",
	StatusCode: http.StatusBadRequest,
}
