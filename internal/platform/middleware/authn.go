// Copyright (c) 2026 Averia. All rights reserved.
// Author: khanh.doan.dev@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/khanhdoan/averia/internal/platform/constants"
	"github.com/khanhdoan/averia/internal/platform/ctxutil"
	"github.com/khanhdoan/averia/internal/platform/sec"
)

// # Authentication

// TokenVerifier checks an access token's signature and claims.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*sec.AuthClaims, error)
}

/*
Authenticate parses the Authorization header and, when a bearer token is
present, verifies it and stores the resulting claims in the request context.

Requests without an Authorization header pass through anonymously; route
groups that need an identity pair this with [RequireAuth]. A header that is
present but malformed or carries an invalid token is rejected with 401
immediately, so downstream handlers never see half-authenticated requests.

Parameters:

  - verifier: the access-token verifier, typically *sec.TokenService.

Returns:

  - func(http.Handler) http.Handler: chi-compatible middleware.
*/
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Anonymous requests proceed without claims
			header := request.Header.Get(constants.HeaderAuthorization)
			if header == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. The header must follow the "Bearer <token>" shape
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], constants.BearerScheme) {
				writeError(writer, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid authorization header format")
				return
			}

			// 3. Verify signature, expiry, and token type
			claims, err := verifier.VerifyAccessToken(parts[1])
			if err != nil {
				logger := ctxutil.GetLogger(request.Context())
				logger.WarnContext(request.Context(), "access_token_rejected",
					"reason", err.Error(),
				)
				writeError(writer, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
				return
			}

			// 4. Stash the claims for downstream handlers
			ctx := ctxutil.WithClaims(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that carry no verified claims. It must be
// mounted after [Authenticate].
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			if ctxutil.GetClaims(request.Context()) == nil {
				writeError(writer, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
