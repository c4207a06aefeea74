// Copyright (c) 2026 Averia. All rights reserved.
// Author: khanh.doan.dev@gmail.com

package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanhdoan/averia/internal/platform/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/averia")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
}

/*
TestLoad_Defaults verifies that optional settings fall back to their defaults.
*/
func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "./data/migrations", cfg.MigrationPath)
	assert.Equal(t, "noreply@averia.shop", cfg.EmailFromAddress)
	assert.Equal(t, "http://localhost:3000", cfg.FrontendBaseURL)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

/*
TestLoad_MissingRequired verifies that absent required variables fail loading.
*/
func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)

	// t.Setenv registered the restore; unset to simulate a missing variable
	t.Setenv("DATABASE_URL", "placeholder")
	require.NoError(t, os.Unsetenv("DATABASE_URL"))

	_, err := config.Load()
	assert.Error(t, err)
}

/*
TestLoad_EqualSecretsRejected verifies the cross-field secret invariant.
*/
func TestLoad_EqualSecretsRejected(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ACCESS_TOKEN_SECRET", "same-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "same-secret")

	_, err := config.Load()
	assert.Error(t, err)
}

/*
TestAllowedOrigins verifies comma-separated origin parsing.
*/
func TestAllowedOrigins(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EXTRA_ORIGINS", "https://admin.averia.dev, https://staging.averia.dev ,")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://admin.averia.dev", "https://staging.averia.dev"}, cfg.AllowedOrigins())
}
