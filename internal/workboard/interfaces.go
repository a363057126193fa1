// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package workboard

import "context"

type WorkBoardInterface interface {
	GetCurrentUser(ctx context.Context) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
}
