// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "oaa-sync",
	Short: "Sync identities from source systems into Veza",
	Long: `oaa-sync pulls user and role data from source systems (WorkBoard,
SailPoint IdentityNow) and pushes it to the Veza Open Authorization API.`,
}

func Execute() {
	// best-effort, env vars win over .env entries
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
