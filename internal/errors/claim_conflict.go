package errors

import "net/http"

var ErrClaimConflict = &Exception{
	Message:    "account already has an active qa task for another link",
	StatusCode: http.StatusConflict,
}
