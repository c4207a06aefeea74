// Copyright (c) 2026 Averia. All rights reserved.
// Author: khanh.doan.dev@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/khanhdoan/averia/internal/platform/constants"
	"github.com/khanhdoan/averia/internal/platform/ctxkey"
	"github.com/khanhdoan/averia/internal/platform/ctxutil"
)

// # Account Gate

/*
RequireAccount resolves the verified caller's claims into a full account and
stores it in the request context.

It must be mounted after the token middleware: requests reaching it without
verified claims, or whose subject no longer maps to an account row, are
rejected with 401. Handlers behind the gate can rely on [AccountFromContext]
returning a non-nil account.

Parameters:

  - service: the auth service used for the point lookup.

Returns:

  - func(http.Handler) http.Handler: chi-compatible middleware.
*/
func RequireAccount(service *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			claims := ctxutil.GetClaims(request.Context())
			if claims == nil {
				gateReject(writer, "Authentication required")
				return
			}

			account, err := service.ResolveCaller(request.Context(), claims.Subject)
			if err != nil {
				gateReject(writer, "Invalid authentication credentials")
				return
			}

			ctx := context.WithValue(request.Context(), ctxkey.KeyAccount, account)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// AccountFromContext returns the account loaded by [RequireAccount], or nil
// when the request never passed the gate.
func AccountFromContext(ctx context.Context) *Account {
	account, _ := ctx.Value(ctxkey.KeyAccount).(*Account)
	return account
}

func gateReject(writer http.ResponseWriter, message string) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(writer).Encode(map[string]string{
		constants.FieldCode:  "UNAUTHORIZED",
		constants.FieldError: message,
	})
}
