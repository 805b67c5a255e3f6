package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/secure-vault/internal/config"
	"github.com/MKhiriev/secure-vault/internal/crypto"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/store"
	"github.com/MKhiriev/secure-vault/internal/utils"
	"github.com/MKhiriev/secure-vault/internal/validators"
	"github.com/MKhiriev/secure-vault/models"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"
)

// totpValidateOpts matches what authenticator apps generate by default.
// One step of skew on each side tolerates clock drift.
var totpValidateOpts = totp.ValidateOpts{
	Period:    30,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// authService is the concrete implementation of AuthService.
//
// Login passwords are hashed with bcrypt. The KDF salt stored next to the
// hash is unrelated to it: the client feeds it into the vault key
// derivation, so the server never sees anything that can open the vault.
type authService struct {
	userRepository store.UserRepository
	validator      validators.Validator

	passwordHashCost int
	kdfIterations    int

	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration

	totpIssuer string

	// now is swapped in tests that need a fixed TOTP window.
	now func() time.Time

	// dummyHash is compared against when the email is unknown so that
	// unknown accounts and wrong passwords take the same time.
	dummyHashOnce sync.Once
	dummyHash     []byte

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	kdfIterations := cfg.KDFIterations
	if kdfIterations <= 0 {
		kdfIterations = crypto.DefaultIterations
	}
	hashCost := cfg.PasswordHashCost
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}

	return &authService{
		userRepository:   userRepository,
		validator:        validators.NewUserValidator(),
		passwordHashCost: hashCost,
		kdfIterations:    kdfIterations,
		tokenSignKey:     cfg.TokenSignKey,
		tokenIssuer:      cfg.TokenIssuer,
		tokenDuration:    cfg.TokenDuration,
		totpIssuer:       cfg.TOTPIssuer,
		now:              time.Now,
		logger:           logger,
	}
}

// Signup validates the request, hashes the password and stores the account
// with a fresh KDF salt and the configured iteration count.
//
// Returns ErrInvalidDataProvided (wrapping the validator error) for a bad
// email or a short password and store.ErrEmailAlreadyExists for a taken
// email.
func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Msg("invalid signup data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.passwordHashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrPasswordHashingFailed, err)
	}

	salt, err := crypto.NewKDFSalt()
	if err != nil {
		log.Err(err).Msg("kdf salt generation failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrKDFSaltGenerationFailed, err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Email:         req.Email,
		PasswordHash:  string(hash),
		KDFSalt:       salt,
		KDFIterations: a.kdfIterations,
	})
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return user, nil
}

// Login checks the password and, for accounts with two-factor
// authentication, the TOTP code.
//
// An unknown email and a wrong password both return ErrWrongPassword.
// A missing code returns ErrTwoFactorRequired, a wrong one
// ErrInvalidTwoFactorCode.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Msg("invalid login data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		_ = bcrypt.CompareHashAndPassword(a.getDummyHash(), []byte(req.Password))
		log.Debug().Msg("login for unknown email")
		return models.User{}, ErrWrongPassword
	}
	if err != nil {
		log.Err(err).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Debug().Int64("user_id", user.UserID).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	if !user.TwoFactorEnabled {
		return user, nil
	}
	if req.TOTP == "" {
		return models.User{}, ErrTwoFactorRequired
	}
	if !a.validateTOTP(req.TOTP, user.TOTPSecret) {
		log.Debug().Int64("user_id", user.UserID).Msg("wrong two-factor code")
		return models.User{}, ErrInvalidTwoFactorCode
	}

	return user, nil
}

// CreateToken issues a signed JWT for the given user.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a raw JWT string. Every validation failure is
// reported as ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func (a *authService) SetupTwoFactor(ctx context.Context, userID int64) (models.TwoFactorSetupResponse, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.TwoFactorSetupResponse{}, fmt.Errorf("user search by id failed: %w", err)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      a.totpIssuer,
		AccountName: user.Email,
	})
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("totp secret generation failed")
		return models.TwoFactorSetupResponse{}, fmt.Errorf("%w: %w", ErrTwoFactorSetupFailed, err)
	}

	if err = a.userRepository.SetPendingTOTPSecret(ctx, userID, key.Secret()); err != nil {
		return models.TwoFactorSetupResponse{}, fmt.Errorf("error saving pending totp secret: %w", err)
	}

	return models.TwoFactorSetupResponse{
		Secret:     key.Secret(),
		OTPAuthURL: key.URL(),
	}, nil
}

func (a *authService) VerifyTwoFactor(ctx context.Context, userID int64, code string) error {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("user search by id failed: %w", err)
	}

	if user.TOTPPendingSecret == "" {
		return ErrTwoFactorNotSetUp
	}
	if code == "" || !a.validateTOTP(code, user.TOTPPendingSecret) {
		return ErrInvalidTwoFactorCode
	}

	if err = a.userRepository.EnableTwoFactor(ctx, userID, user.TOTPPendingSecret); err != nil {
		return fmt.Errorf("error enabling two-factor authentication: %w", err)
	}

	logger.FromContext(ctx).Info().Int64("user_id", userID).Msg("two-factor authentication enabled")
	return nil
}

func (a *authService) validateTOTP(code, secret string) bool {
	ok, err := totp.ValidateCustom(code, secret, a.now().UTC(), totpValidateOpts)
	return err == nil && ok
}

func (a *authService) getDummyHash() []byte {
	a.dummyHashOnce.Do(func() {
		a.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("secure-vault-dummy-password"), a.passwordHashCost)
	})
	return a.dummyHash
}
