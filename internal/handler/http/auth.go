package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/secure-vault/internal/app"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/service"
	"github.com/MKhiriev/secure-vault/internal/utils"
	"github.com/MKhiriev/secure-vault/models"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	user, err := h.services.AuthService.Signup(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("user_id", user.UserID).Msg("user signed up")
	_, _ = utils.WriteJSON(w, models.MessageResponse{Message: app.MsgUserCreated}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	user, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	log.Info().Int64("user_id", user.UserID).Msg("user logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	_, _ = utils.WriteJSON(w, models.LoginResponse{
		UserID:           user.UserID,
		Email:            user.Email,
		KDFSalt:          user.KDFSalt,
		KDFIterations:    user.KDFIterations,
		TwoFactorEnabled: user.TwoFactorEnabled,
	}, http.StatusOK)
}

func (h *Handler) setupTwoFactor(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.writeServiceError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	setup, err := h.services.AuthService.SetupTwoFactor(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, setup, http.StatusOK)
}

func (h *Handler) verifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		h.writeServiceError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	var req models.TwoFactorVerifyRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	err := h.services.AuthService.VerifyTwoFactor(ctx, userID, req.Token)
	switch {
	case errors.Is(err, service.ErrInvalidTwoFactorCode):
		// the caller is already authenticated, a wrong code is bad input here
		logger.FromRequest(r).Debug().Int64("user_id", userID).Msg("wrong 2fa confirmation code")
		utils.WriteError(w, app.MsgInvalidTwoFactorCode, http.StatusBadRequest)
		return
	case err != nil:
		h.writeServiceError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("user_id", userID).Msg("two-factor authentication enabled")
	_, _ = utils.WriteJSON(w, models.MessageResponse{Message: app.MsgTwoFactorEnabled}, http.StatusOK)
}
