// Copyright (c) 2026 Averia. All rights reserved.
// Author: khanh.doan.dev@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the [TokenProvider] interface defined by consumers.
package sec

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Token Error Taxonomy
//
// Every verification failure collapses to a 401 at the API boundary, but the
// distinct causes stay observable for server-side logging.

var (
	// ErrTokenExpired indicates the token's exp claim is in the past.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenSignature indicates the signature does not match the key.
	ErrTokenSignature = errors.New("sec: token signature invalid")

	// ErrTokenMalformed indicates the token string cannot be parsed at all.
	ErrTokenMalformed = errors.New("sec: token malformed")

	// ErrWrongTokenType indicates a structurally valid token presented for
	// the wrong purpose (e.g. an access token at the refresh endpoint).
	ErrWrongTokenType = errors.New("sec: wrong token type")
)

// TokenTypeRefresh is the discriminator claim value stamped on refresh tokens.
const TokenTypeRefresh = "refresh"

// AuthClaims represents the payload embedded inside a signed token.
//
// # Why custom claims?
//
// By embedding the subject and email directly inside the JWT, the
// authentication middleware can reconstruct the caller identity WITHOUT
// querying the database for the claim data itself. Validity is fully
// determined by signature and expiry; no server-side token record exists.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Email mirrors the account email at issuance time.
	Email string `json:"email"`

	// TokenType is empty for access tokens and "refresh" for refresh tokens.
	TokenType string `json:"type,omitempty"`
}

// TokenService issues and verifies HS256-signed access and refresh tokens.
//
// # Key Separation
//
// The two signing secrets are independent: a compromised refresh secret must
// not allow forging access tokens, and vice versa. The constructor enforces
// that the secrets differ.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
}

// NewTokenService creates a TokenService from the two symmetric signing secrets.
//
// # Parameters
//   - accessSecret: Key for short-lived access tokens.
//   - refreshSecret: Key for long-lived refresh tokens. Must differ from accessSecret.
//   - issuer: The 'iss' claim stamped on every token.
func NewTokenService(accessSecret, refreshSecret, issuer string) (*TokenService, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("sec: signing secrets must not be empty")
	}

	if subtle.ConstantTimeCompare([]byte(accessSecret), []byte(refreshSecret)) == 1 {
		return nil, errors.New("sec: access and refresh secrets must differ")
	}

	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
	}, nil
}

// # Issuance

// IssueAccessToken creates a signed access token for the given account.
//
// # Claims
//
// {sub: userID, email, iss, iat: now, exp: now + timeToLive}
func (service *TokenService) IssueAccessToken(userID, email string, timeToLive time.Duration) (string, error) {
	return service.sign(service.accessSecret, userID, email, "", timeToLive)
}

// IssueRefreshToken creates a signed refresh token for the given account.
//
// The claim set is tagged type="refresh" and signed with the refresh secret,
// so it can never pass verification against the access key.
func (service *TokenService) IssueRefreshToken(userID, email string, timeToLive time.Duration) (string, error) {
	return service.sign(service.refreshSecret, userID, email, TokenTypeRefresh, timeToLive)
}

// sign builds the claim set and produces the encoded HS256 token string.
func (service *TokenService) sign(secret []byte, userID, email, tokenType string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		Email:     email,
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// # Verification

// VerifyAccessToken checks the signature and expiry of an access token.
//
// A refresh token presented here fails with [ErrTokenSignature] (different
// key) before the type discriminator is ever consulted.
func (service *TokenService) VerifyAccessToken(tokenString string) (*AuthClaims, error) {
	claims, err := service.verify(tokenString, service.accessSecret)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != "" {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}

// VerifyRefreshToken checks a refresh token against the refresh key and
// additionally requires the type="refresh" claim.
func (service *TokenService) VerifyRefreshToken(tokenString string) (*AuthClaims, error) {
	claims, err := service.verify(tokenString, service.refreshSecret)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != TokenTypeRefresh {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}

// verify decodes the token, checks the HMAC signature, and checks expiry.
func (service *TokenService) verify(tokenString string, secret []byte) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&AuthClaims{},
		func(token *jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		return nil, classifyTokenError(err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// classifyTokenError maps jwt/v5 sentinel errors onto the package taxonomy.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrTokenSignature, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	default:
		return fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}
}
