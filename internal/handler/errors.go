// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoTransports is returned by NewHandlers when the server config names
// no HTTP and no gRPC address.
var errNoTransports = errors.New("no transport handlers configured")
