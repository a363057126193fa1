// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import "errors"

var ErrNotFound = errors.New("record not found")
