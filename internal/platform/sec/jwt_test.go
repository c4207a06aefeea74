// Copyright (c) 2026 Averia. All rights reserved.
// Author: khanh.doan.dev@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanhdoan/averia/internal/platform/sec"
)

func newTokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService("access-secret-for-tests", "refresh-secret-for-tests", "averia.shop")
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_SecretValidation verifies the constructor rejects empty
or identical signing secrets.
*/
func TestNewTokenService_SecretValidation(t *testing.T) {
	tests := []struct {
		name          string
		accessSecret  string
		refreshSecret string
		wantErr       bool
	}{
		{"distinct_secrets", "aaa", "bbb", false},
		{"equal_secrets", "same", "same", true},
		{"empty_access", "", "bbb", true},
		{"empty_refresh", "aaa", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sec.NewTokenService(tt.accessSecret, tt.refreshSecret, "averia.shop")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestTokenService_AccessRoundTrip verifies issuance and verification of an
access token, including the registered claims.
*/
func TestTokenService_AccessRoundTrip(t *testing.T) {
	service := newTokenService(t)

	token, err := service.IssueAccessToken("account-1", "shopper@averia.shop", 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, "account-1", claims.Subject)
	assert.Equal(t, "shopper@averia.shop", claims.Email)
	assert.Equal(t, "averia.shop", claims.Issuer)
	assert.Empty(t, claims.TokenType)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

/*
TestTokenService_RefreshRoundTrip verifies that refresh tokens carry the
"refresh" type claim and verify against the refresh secret only.
*/
func TestTokenService_RefreshRoundTrip(t *testing.T) {
	service := newTokenService(t)

	token, err := service.IssueRefreshToken("account-1", "shopper@averia.shop", 7*24*time.Hour)
	require.NoError(t, err)

	claims, err := service.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, sec.TokenTypeRefresh, claims.TokenType)
	assert.Equal(t, "account-1", claims.Subject)
}

/*
TestTokenService_KeySeparation verifies cross-key rejection in both
directions: an access token fails refresh verification and vice versa.
*/
func TestTokenService_KeySeparation(t *testing.T) {
	service := newTokenService(t)

	accessToken, err := service.IssueAccessToken("account-1", "a@b.c", time.Minute)
	require.NoError(t, err)

	refreshToken, err := service.IssueRefreshToken("account-1", "a@b.c", time.Minute)
	require.NoError(t, err)

	// Wrong key: the signature check fails before the type check is reached
	_, err = service.VerifyRefreshToken(accessToken)
	assert.ErrorIs(t, err, sec.ErrTokenSignature)

	_, err = service.VerifyAccessToken(refreshToken)
	assert.ErrorIs(t, err, sec.ErrTokenSignature)
}

/*
TestTokenService_WrongTypeSameKey verifies the type discriminator rejects a
token signed with the right key but stamped for the other purpose.
*/
func TestTokenService_WrongTypeSameKey(t *testing.T) {
	// issuer's refresh key == verifier's access key, so signatures pass and
	// only the type discriminator can reject.
	issuer, err := sec.NewTokenService("key-a", "key-b", "averia.shop")
	require.NoError(t, err)

	verifier, err := sec.NewTokenService("key-b", "key-a", "averia.shop")
	require.NoError(t, err)

	// A refresh-typed token presented for access verification
	refreshTyped, err := issuer.IssueRefreshToken("account-1", "a@b.c", time.Minute)
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(refreshTyped)
	assert.ErrorIs(t, err, sec.ErrWrongTokenType)

	// An untyped access token presented for refresh verification
	untyped, err := issuer.IssueAccessToken("account-1", "a@b.c", time.Minute)
	require.NoError(t, err)

	_, err = verifier.VerifyRefreshToken(untyped)
	assert.ErrorIs(t, err, sec.ErrWrongTokenType)
}

/*
TestTokenService_Expired verifies that an expired token maps to ErrTokenExpired.
*/
func TestTokenService_Expired(t *testing.T) {
	service := newTokenService(t)

	token, err := service.IssueAccessToken("account-1", "a@b.c", -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyAccessToken(token)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestTokenService_Malformed verifies the malformed classification for inputs
that are not JWTs at all.
*/
func TestTokenService_Malformed(t *testing.T) {
	service := newTokenService(t)

	for _, garbage := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := service.VerifyAccessToken(garbage)
		assert.ErrorIs(t, err, sec.ErrTokenMalformed, "input %q", garbage)
	}
}
