// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads before they reach storage.
//
// Validators only see ciphertext for vault records: they check presence and
// size, never content.
package validators

import "context"

// Validator validates a value. fields optionally restricts the check to the
// named fields; with no fields every rule of the value's type applies.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
