package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/secure-vault/internal/app"
	"github.com/MKhiriev/secure-vault/internal/service"
	"github.com/MKhiriev/secure-vault/internal/store"
	"github.com/MKhiriev/secure-vault/internal/validators"
)

type errorResponse struct {
	err    error
	status int
	msg    string
}

// errorResponses is checked in order; more specific errors come first
// because validation errors are also wrapped in ErrInvalidDataProvided.
var errorResponses = []errorResponse{
	{validators.ErrPasswordTooShort, http.StatusBadRequest, app.MsgPasswordTooShort},
	{validators.ErrInvalidEmail, http.StatusBadRequest, app.MsgInvalidEmail},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{ErrInvalidVaultItemID, http.StatusBadRequest, app.MsgInvalidDataProvided},

	{service.ErrWrongPassword, http.StatusUnauthorized, app.MsgInvalidEmailPassword},
	{service.ErrTwoFactorRequired, http.StatusUnauthorized, app.MsgTwoFactorRequired},
	{service.ErrInvalidTwoFactorCode, http.StatusUnauthorized, app.MsgInvalidTwoFactorCode},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized, app.MsgUnauthorized},

	{service.ErrTwoFactorNotSetUp, http.StatusBadRequest, app.MsgTwoFactorNotSetUp},

	{store.ErrEmailAlreadyExists, http.StatusConflict, app.MsgEmailAlreadyExists},
	{store.ErrVaultItemNotFound, http.StatusNotFound, app.MsgItemNotFound},
	{store.ErrNoUserWasFound, http.StatusNotFound, app.MsgUserNotFound},
}

// responseFromError returns the status code and body message for err.
// Unknown errors map to 500 with a generic message.
func responseFromError(err error) (int, string) {
	for _, e := range errorResponses {
		if errors.Is(err, e.err) {
			return e.status, e.msg
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}
