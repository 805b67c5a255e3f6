// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/secure-vault/internal/logger"
)

// DefaultIdleTimeout is used when IdleLock is built with a non-positive
// timeout.
const DefaultIdleTimeout = 5 * time.Minute

// IdleLock destroys the armed target after a period without activity.
//
// Every Touch restarts the countdown. After the target is destroyed the
// lock stays quiet until Arm hands it a new one.
type IdleLock struct {
	timeout time.Duration

	activity chan struct{}
	locked   chan struct{}

	mu     sync.Mutex
	target Lockable
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

func NewIdleLock(timeout time.Duration, logger *logger.Logger) *IdleLock {
	if timeout <= 0 {
		timeout = DefaultIdleTimeout
	}
	return &IdleLock{
		timeout:  timeout,
		activity: make(chan struct{}, 1),
		locked:   make(chan struct{}, 1),
		logger:   logger,
	}
}

// Arm sets the target and restarts the countdown.
func (l *IdleLock) Arm(target Lockable) {
	l.mu.Lock()
	l.target = target
	l.mu.Unlock()

	l.Touch()
}

// Disarm forgets the target without destroying it.
func (l *IdleLock) Disarm() {
	l.mu.Lock()
	l.target = nil
	l.mu.Unlock()
}

// Touch records user activity. It never blocks.
func (l *IdleLock) Touch() {
	select {
	case l.activity <- struct{}{}:
	default:
	}
}

// Locked delivers a value each time a target is destroyed for inactivity.
func (l *IdleLock) Locked() <-chan struct{} {
	return l.locked
}

func (l *IdleLock) Start(ctx context.Context) {
	l.Stop()

	l.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.wg.Add(1)
	l.mu.Unlock()

	go l.loop(jobCtx)
}

func (l *IdleLock) Stop() {
	l.mu.Lock()
	cancel := l.cancel
	l.cancel = nil
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	l.wg.Wait()
}

func (l *IdleLock) loop(ctx context.Context) {
	defer l.wg.Done()

	timer := time.NewTimer(l.timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.activity:
			timer.Reset(l.timeout)
		case <-timer.C:
			l.lock()
		}
	}
}

func (l *IdleLock) lock() {
	l.mu.Lock()
	target := l.target
	l.target = nil
	l.mu.Unlock()

	if target == nil {
		return
	}

	target.Destroy()
	l.logger.Info().Dur("idle_timeout", l.timeout).Msg("session locked after inactivity")

	select {
	case l.locked <- struct{}{}:
	default:
	}
}
