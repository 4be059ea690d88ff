package errors

import "net/http"

var ErrTaskNotFound = &Exception{
	Message:    "qa task not found",
	StatusCode: http.StatusNotFound,
}
