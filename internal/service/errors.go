package service

import "errors"

// Server-side errors.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong email or password")

	ErrTwoFactorRequired    = errors.New("two-factor code required")
	ErrInvalidTwoFactorCode = errors.New("invalid two-factor code")
	ErrTwoFactorNotSetUp    = errors.New("two-factor authentication is not set up")
	ErrTwoFactorSetupFailed = errors.New("two-factor setup failed")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrPasswordHashingFailed   = errors.New("password hashing failed")
	ErrKDFSaltGenerationFailed = errors.New("kdf salt generation failed")

	ErrVersionIsNotSpecified = errors.New("version is not specified")
)

// Client-side errors.
var (
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrSignupOnServer     = errors.New("signup on server failed")
	ErrLoginOnServer      = errors.New("login on server failed")
	ErrServerUnavailable  = errors.New("server unavailable")
	ErrEncryptingRecord   = errors.New("error encrypting vault record")
	ErrInvalidKDFParams   = errors.New("server returned invalid key derivation parameters")
	ErrRecordNotFound     = errors.New("vault item not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrReadingExport      = errors.New("error reading export file")
	ErrWritingExport      = errors.New("error writing export file")
)
