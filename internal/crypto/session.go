// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"
	"sync"

	"github.com/awnumar/memguard"
)

// Session owns the SessionKey for the lifetime of one login.
//
// The key lives in a memguard Enclave: encrypted at rest in memory and
// decrypted into locked, guarded pages only for the duration of a WithKey
// callback. A Session is created at login, passed by reference to whatever
// needs cryptographic access, and destroyed at logout or by the idle lock.
type Session struct {
	mu      sync.RWMutex
	enclave *memguard.Enclave
	userID  int64
	email   string

	// legacy holds the concatenated web-client keys, if any.
	legacy *memguard.Enclave
}

// SessionOption configures a Session at creation.
type SessionOption func(*sessionOptions) error

type sessionOptions struct {
	legacy []byte
}

// WithLegacyKeys seals keys the original web client would derive for the
// account, so that its ciphertext can be imported and exported. The keys
// are wiped.
func WithLegacyKeys(keys ...SessionKey) SessionOption {
	return func(o *sessionOptions) error {
		for _, k := range keys {
			if err := k.validate(); err != nil {
				return fmt.Errorf("legacy key: %w", err)
			}
			o.legacy = append(o.legacy, k...)
			k.Wipe()
		}
		return nil
	}
}

// NewSession seals key into a new Session. The key slice is wiped.
func NewSession(userID int64, email string, key SessionKey, opts ...SessionOption) (*Session, error) {
	if err := key.validate(); err != nil {
		return nil, err
	}

	var o sessionOptions
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			clear(o.legacy)
			return nil, err
		}
	}

	s := &Session{
		enclave: memguard.NewEnclave(key),
		userID:  userID,
		email:   email,
	}
	if len(o.legacy) > 0 {
		s.legacy = memguard.NewEnclave(o.legacy)
	}
	return s, nil
}

// WithKey calls fn with a transient copy of the key. The copy is destroyed
// when fn returns and must not be retained.
//
// Calls may run concurrently. fn must not call Destroy on the same Session.
func (s *Session) WithKey(fn func(SessionKey) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.enclave == nil {
		return ErrSessionClosed
	}

	buf, err := s.enclave.Open()
	if err != nil {
		return fmt.Errorf("open session key: %w", err)
	}
	defer buf.Destroy()

	return fn(SessionKey(buf.Bytes()))
}

// WithLegacyKeys is WithKey that also passes transient copies of the web
// client keys, in the order they were sealed. legacy is nil when the
// session has none.
func (s *Session) WithLegacyKeys(fn func(key SessionKey, legacy []SessionKey) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.enclave == nil {
		return ErrSessionClosed
	}

	buf, err := s.enclave.Open()
	if err != nil {
		return fmt.Errorf("open session key: %w", err)
	}
	defer buf.Destroy()

	if s.legacy == nil {
		return fn(SessionKey(buf.Bytes()), nil)
	}

	legacyBuf, err := s.legacy.Open()
	if err != nil {
		return fmt.Errorf("open legacy keys: %w", err)
	}
	defer legacyBuf.Destroy()

	raw := legacyBuf.Bytes()
	legacy := make([]SessionKey, 0, len(raw)/KeySize)
	for i := 0; i+KeySize <= len(raw); i += KeySize {
		legacy = append(legacy, SessionKey(raw[i:i+KeySize:i+KeySize]))
	}
	return fn(SessionKey(buf.Bytes()), legacy)
}

// Destroy drops the key. It waits for in-flight WithKey calls, is safe to
// call concurrently and more than once.
func (s *Session) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enclave = nil
	s.legacy = nil
}

// Closed reports whether Destroy has been called.
func (s *Session) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enclave == nil
}

// UserID returns the account the session belongs to.
func (s *Session) UserID() int64 {
	return s.userID
}

// Email returns the login email of the account.
func (s *Session) Email() string {
	return s.email
}

// MarshalJSON always fails: a Session is never serialized.
func (s *Session) MarshalJSON() ([]byte, error) {
	return nil, ErrKeyNotSerializable
}
