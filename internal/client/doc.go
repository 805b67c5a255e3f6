// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client holds the client runtime shared by the command line and
// the terminal UI: the server adapter, the client services, the current
// session and the idle lock guarding it.
package client
