package errors

import "net/http"

var ErrAccountInactive = &Exception{
	Message:    "account is not active",
	StatusCode: http.StatusBadRequest,
}
