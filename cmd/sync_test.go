// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/canonical/oaa-sync/internal/config"
)

func newSyncTestCmd() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().String("driver", "", "")
	cmd.Flags().Bool("dry-run", false, "")
	cmd.Flags().String("dry-run-file", "", "")
	cmd.Flags().String("debug-dump", "", "")
	cmd.Flags().Bool("force", false, "")
	cmd.Flags().Bool("insecure-skip-verify", false, "")
	cmd.Flags().String("dsn", "", "")
	cmd.Flags().String("log-level", "error", "")

	return cmd
}

func TestSyncCmdUnsupportedDriver(t *testing.T) {
	cmd := newSyncTestCmd()
	cmd.Flags().Set("driver", "unknown")

	err := runSync(cmd)
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	if !strings.Contains(err.Error(), "unsupported driver") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSyncCmdWorkboardRequiresCredentials(t *testing.T) {
	t.Setenv("WORKBOARD_URL", "")
	t.Setenv("WORKBOARD_TOKEN", "")

	cmd := newSyncTestCmd()
	cmd.Flags().Set("driver", "workboard")

	err := runSync(cmd)
	if err == nil {
		t.Fatal("expected error when workboard credentials are missing")
	}
	if !strings.Contains(err.Error(), "WORKBOARD_URL") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSyncCmdSailpointRequiresCredentials(t *testing.T) {
	t.Setenv("SAILPOINT_TENANT", "")
	t.Setenv("SAILPOINT_BASE_URL", "")
	t.Setenv("SAILPOINT_CLIENT_ID", "")
	t.Setenv("SAILPOINT_CLIENT_SECRET", "")

	cmd := newSyncTestCmd()
	cmd.Flags().Set("driver", "sailpoint")

	err := runSync(cmd)
	if err == nil {
		t.Fatal("expected error when sailpoint credentials are missing")
	}
	if !strings.Contains(err.Error(), "SAILPOINT_TENANT") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSailpointLabel(t *testing.T) {
	tests := []struct {
		name     string
		tenant   string
		baseURL  string
		expected string
	}{
		{"tenant set", "acme", "https://acme.api.identitynow.com", "acme"},
		{"derived from base url", "", "https://sp.example.com/", "sp.example.com"},
		{"plain host", "", "sp.example.com", "sp.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs := &config.EnvSpec{
				SailpointTenant:  tt.tenant,
				SailpointBaseURL: tt.baseURL,
			}

			if label := sailpointLabel(specs); label != tt.expected {
				t.Fatalf("expected label %q, got %q", tt.expected, label)
			}
		})
	}
}
