// Copyright (c) 2026 Averia. All rights reserved.
// Author: khanh.doan.dev@gmail.com

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanhdoan/averia/internal/platform/ctxutil"
	"github.com/khanhdoan/averia/internal/platform/middleware"
	"github.com/khanhdoan/averia/internal/platform/sec"
)

func newVerifier(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService("access-secret", "refresh-secret", "averia.shop")
	require.NoError(t, err)
	return service
}

// claimsEcho records the claims visible to the downstream handler.
func claimsEcho(captured **sec.AuthClaims) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*captured = ctxutil.GetClaims(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
}

/*
TestAuthenticate_AnonymousPassThrough verifies that requests without an
Authorization header proceed with nil claims.
*/
func TestAuthenticate_AnonymousPassThrough(t *testing.T) {
	verifier := newVerifier(t)

	var captured *sec.AuthClaims
	handler := middleware.Authenticate(verifier)(claimsEcho(&captured))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, captured)
}

/*
TestAuthenticate_ValidToken verifies claims injection for a good bearer token.
*/
func TestAuthenticate_ValidToken(t *testing.T) {
	verifier := newVerifier(t)

	token, err := verifier.IssueAccessToken("account-1", "shopper@averia.shop", time.Minute)
	require.NoError(t, err)

	var captured *sec.AuthClaims
	handler := middleware.Authenticate(verifier)(claimsEcho(&captured))

	request := httptest.NewRequest("GET", "/", nil)
	request.Header.Set("Authorization", "Bearer "+token)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "account-1", captured.Subject)
	assert.Equal(t, "shopper@averia.shop", captured.Email)
}

/*
TestAuthenticate_Rejections verifies the 401 paths: bad header shape, bad
signature, expired tokens, and refresh tokens on the access path.
*/
func TestAuthenticate_Rejections(t *testing.T) {
	verifier := newVerifier(t)

	expired, err := verifier.IssueAccessToken("account-1", "a@b.c", -time.Minute)
	require.NoError(t, err)

	refresh, err := verifier.IssueRefreshToken("account-1", "a@b.c", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing_scheme", "just-a-token"},
		{"wrong_scheme", "Basic dXNlcjpwYXNz"},
		{"garbage_token", "Bearer not.a.jwt"},
		{"expired_token", "Bearer " + expired},
		{"refresh_on_access_path", "Bearer " + refresh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured *sec.AuthClaims
			handler := middleware.Authenticate(verifier)(claimsEcho(&captured))

			request := httptest.NewRequest("GET", "/", nil)
			request.Header.Set("Authorization", tt.header)

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.Nil(t, captured)
		})
	}
}

/*
TestRequireAuth verifies that the guard rejects anonymous requests and admits
authenticated ones.
*/
func TestRequireAuth(t *testing.T) {
	verifier := newVerifier(t)

	token, err := verifier.IssueAccessToken("account-1", "a@b.c", time.Minute)
	require.NoError(t, err)

	var captured *sec.AuthClaims
	chain := middleware.Authenticate(verifier)(middleware.RequireAuth()(claimsEcho(&captured)))

	// Anonymous request is rejected
	recorder := httptest.NewRecorder()
	chain.ServeHTTP(recorder, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Authenticated request passes
	request := httptest.NewRequest("GET", "/", nil)
	request.Header.Set("Authorization", "bearer "+token) // scheme is case-insensitive

	recorder = httptest.NewRecorder()
	chain.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "account-1", captured.Subject)
}
