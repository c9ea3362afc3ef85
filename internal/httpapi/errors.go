package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/archivekeeper/internal/common"
)

// errorBody is the JSON shape of every failed response.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type errorKind struct {
	target error
	status int
	code   string
}

// errorKinds is checked in order; the first match wins.
var errorKinds = []errorKind{
	{common.ErrorValidation, http.StatusBadRequest, "validation"},
	{common.ErrorRecordNotFound, http.StatusNotFound, "record_not_found"},
	{common.ErrorNotFound, http.StatusNotFound, "not_found"},
	{common.ErrorInUse, http.StatusConflict, "in_use"},
	{common.ErrorAlreadyExists, http.StatusConflict, "already_exists"},
	{common.ErrorInvalidReference, http.StatusUnprocessableEntity, "invalid_reference"},
	{common.ErrorTimeout, http.StatusGatewayTimeout, "timeout"},
	{common.ErrorUpstream, http.StatusBadGateway, "upstream"},
	{context.Canceled, http.StatusServiceUnavailable, "canceled"},
}

// statusFor maps err to an HTTP status and a stable machine code.
func statusFor(err error) (int, string) {
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return k.status, k.code
		}
	}
	return http.StatusInternalServerError, "internal"
}
