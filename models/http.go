// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SignupRequest is the body of POST /api/auth/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login.
// TOTP is required only for accounts with two-factor authentication enabled.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TOTP     string `json:"totp,omitempty"`
}

// LoginResponse carries the key-derivation parameters of the account.
// The JWT itself travels in the Authorization header.
type LoginResponse struct {
	UserID           int64  `json:"user_id"`
	Email            string `json:"email"`
	KDFSalt          string `json:"kdf_salt"`
	KDFIterations    int    `json:"kdf_iterations"`
	TwoFactorEnabled bool   `json:"two_factor_enabled"`
}

// TwoFactorSetupResponse is returned by POST /api/auth/2fa/setup.
type TwoFactorSetupResponse struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
}

// TwoFactorVerifyRequest is the body of POST /api/auth/2fa/verify.
type TwoFactorVerifyRequest struct {
	Token string `json:"token"`
}

// ImportRequest is the body of POST /api/vault/import.
type ImportRequest struct {
	Items []VaultRecord `json:"items"`
}

// ImportResponse reports how many records were imported.
type ImportResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// MessageResponse is a generic {"message": ...} body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// VersionResponse is returned by GET /api/version.
type VersionResponse struct {
	Version string `json:"version"`
	Date    string `json:"date,omitempty"`
	Commit  string `json:"commit,omitempty"`
}
