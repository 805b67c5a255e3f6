// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the message strings the server writes into response
// bodies. The client matches on the same constants to turn an HTTP error
// back into a typed error, so the wording is part of the wire contract.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidJSON is returned when the body is not valid JSON.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgInvalidImportFormat is returned when an import body has no items
	// array.
	MsgInvalidImportFormat = "invalid data format, expected an array of items"

	// MsgInvalidEmailPassword is returned for an unknown email or a wrong
	// password. Both cases share one message.
	MsgInvalidEmailPassword = "invalid email or password"

	// MsgPasswordTooShort is returned by signup.
	MsgPasswordTooShort = "password must be at least 8 characters long"

	// MsgInvalidEmail is returned by signup and login.
	MsgInvalidEmail = "invalid email"

	// MsgEmailAlreadyExists is returned by signup for a taken email.
	MsgEmailAlreadyExists = "user with this email already exists"

	// MsgTwoFactorRequired is returned by login when the account has 2FA
	// enabled and no code was sent.
	MsgTwoFactorRequired = "two-factor code required"

	// MsgInvalidTwoFactorCode is returned by login and 2FA verification
	// for a wrong code.
	MsgInvalidTwoFactorCode = "invalid two-factor code"

	// MsgTwoFactorNotSetUp is returned by 2FA verification before setup.
	MsgTwoFactorNotSetUp = "two-factor authentication is not set up"

	// MsgTokenIsExpiredOrInvalid is returned for a missing, malformed,
	// expired or forged bearer token.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgUnauthorized is returned when no bearer token was sent.
	MsgUnauthorized = "unauthorized"

	// MsgItemNotFound is returned for a vault item that does not exist or
	// belongs to another account.
	MsgItemNotFound = "item not found"

	// MsgUserNotFound is returned when the token refers to a deleted user.
	MsgUserNotFound = "user not found"

	// MsgTooManyRequests is returned by the login rate limiter.
	MsgTooManyRequests = "too many requests, try again later"

	// MsgInternalServerError is returned for every unexpected failure.
	MsgInternalServerError = "internal server error"

	// MsgUserCreated is the body of a successful signup.
	MsgUserCreated = "user created successfully"

	// MsgTwoFactorEnabled is the body of a successful 2FA verification.
	MsgTwoFactorEnabled = "two-factor authentication enabled"

	// MsgItemsImportedFmt formats the body of a successful import.
	MsgItemsImportedFmt = "%d items imported successfully"
)
