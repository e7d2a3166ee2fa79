// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFlagNamesSearchedFiles(t *testing.T) {
	f := rootCmd.PersistentFlags().Lookup("config")
	require.NotNil(t, f)
	assert.Contains(t, f.Usage, "./talentrankr.yaml")
	assert.Contains(t, f.Usage, "~/.config/talentrankr/talentrankr.yaml")
}

func TestServeHasCookieKeyFlag(t *testing.T) {
	f := serveCmd.Flags().Lookup("cookie-key")
	require.NotNil(t, f)
	assert.Empty(t, f.DefValue)
}
