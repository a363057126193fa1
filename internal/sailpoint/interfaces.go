// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sailpoint

import "context"

type SailPointInterface interface {
	ListPublicIdentities(ctx context.Context) ([]PublicIdentity, error)
}
