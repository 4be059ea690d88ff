package errors

import "net/http"

var ErrTaskFinalized = &Exception{
	Message:    "qa task already finalized",
	StatusCode: http.StatusConflict,
}
