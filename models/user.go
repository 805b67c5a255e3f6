package models

import "time"

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"-"`

	// Email is the unique login identifier.
	Email string `json:"email"`

	// Password is the plaintext password received from the client.
	// It is hashed before persistence and never stored.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash of the login password.
	PasswordHash string `json:"-"`

	// KDFSalt is the random per-account salt the client feeds into the
	// key derivation. It is not a secret.
	KDFSalt string `json:"-"`

	// KDFIterations is the PBKDF2 iteration count fixed for this account.
	KDFIterations int `json:"-"`

	// TOTPSecret is the confirmed two-factor secret. Empty when 2FA is off.
	TOTPSecret string `json:"-"`

	// TOTPPendingSecret is a secret issued by setup and not yet confirmed.
	TOTPPendingSecret string `json:"-"`

	// TwoFactorEnabled is set once the pending secret is verified.
	TwoFactorEnabled bool `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
