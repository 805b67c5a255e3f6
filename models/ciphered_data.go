// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CipherString is a self-describing encrypted field value.
//
// The server stores it verbatim and never interprets it. The empty string is
// the sentinel for "field not set".
type CipherString string

// EmptyCipherString encodes an absent field.
const EmptyCipherString CipherString = ""

// IsEmpty reports whether c is the absent-field sentinel.
func (c CipherString) IsEmpty() bool {
	return c == EmptyCipherString
}

// String implements [fmt.Stringer].
func (c CipherString) String() string {
	return string(c)
}
