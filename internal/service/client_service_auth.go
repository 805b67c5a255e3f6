package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/secure-vault/internal/adapter"
	"github.com/MKhiriev/secure-vault/internal/crypto"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/validators"
	"github.com/MKhiriev/secure-vault/models"
)

// minKDFIterations rejects login responses that would derive a key with a
// trivially small work factor.
const minKDFIterations = crypto.LegacyIterations

type clientAuthService struct {
	adapter   adapter.ServerAdapter
	validator validators.Validator

	logger *logger.Logger
}

func NewClientAuthService(serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{
		adapter:   serverAdapter,
		validator: validators.NewUserValidator(),
		logger:    logger,
	}
}

func (a *clientAuthService) Signup(ctx context.Context, email, password string) error {
	req := models.SignupRequest{Email: email, Password: password}
	if err := a.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := a.adapter.Signup(ctx, req); err != nil {
		mapped := mapAdapterError(err)
		if errors.Is(mapped, ErrEmailAlreadyExists) || errors.Is(mapped, ErrInvalidDataProvided) || errors.Is(mapped, ErrServerUnavailable) {
			return mapped
		}
		return fmt.Errorf("%w: %w", ErrSignupOnServer, mapped)
	}

	a.logger.Info().Msg("account created")
	return nil
}

// Login derives the session key exactly once, after the server has accepted
// the credentials. The account's salt and iteration count come from the
// login response; the password is the KDF input. The keys of the original
// web client are derived alongside for import and legacy export.
func (a *clientAuthService) Login(ctx context.Context, email, password, totp string) (*crypto.Session, error) {
	resp, err := a.adapter.Login(ctx, models.LoginRequest{Email: email, Password: password, TOTP: totp})
	if err != nil {
		mapped := mapAdapterError(err)
		switch {
		case errors.Is(mapped, ErrWrongPassword),
			errors.Is(mapped, ErrTwoFactorRequired),
			errors.Is(mapped, ErrInvalidTwoFactorCode),
			errors.Is(mapped, ErrServerUnavailable),
			errors.Is(mapped, ErrInvalidDataProvided):
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: %w", ErrLoginOnServer, mapped)
	}

	if resp.KDFSalt == "" || resp.KDFIterations < minKDFIterations {
		a.adapter.SetToken("")
		return nil, fmt.Errorf("%w: salt=%t iterations=%d", ErrInvalidKDFParams, resp.KDFSalt != "", resp.KDFIterations)
	}

	if resp.Email == "" {
		resp.Email = email
	}

	key := crypto.NewKeyDeriver(resp.KDFIterations).DeriveKey(password, resp.KDFSalt)
	session, err := crypto.NewSession(resp.UserID, resp.Email, key,
		crypto.WithLegacyKeys(crypto.LegacyKeys(password, resp.Email)...))
	if err != nil {
		a.adapter.SetToken("")
		return nil, fmt.Errorf("error opening session: %w", err)
	}

	a.logger.Info().Int64("user_id", resp.UserID).Msg("session opened")
	return session, nil
}

func (a *clientAuthService) Logout(session *crypto.Session) {
	if session != nil {
		session.Destroy()
	}
	a.adapter.SetToken("")
	a.logger.Info().Msg("session closed")
}

func (a *clientAuthService) SetupTwoFactor(ctx context.Context) (models.TwoFactorSetupResponse, error) {
	resp, err := a.adapter.SetupTwoFactor(ctx)
	if err != nil {
		return models.TwoFactorSetupResponse{}, mapAdapterError(err)
	}
	return resp, nil
}

func (a *clientAuthService) VerifyTwoFactor(ctx context.Context, code string) error {
	return mapAdapterError(a.adapter.VerifyTwoFactor(ctx, code))
}
