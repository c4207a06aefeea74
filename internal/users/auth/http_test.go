// Copyright (c) 2026 Averia. All rights reserved.
// Author: khanh.doan.dev@gmail.com

package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanhdoan/averia/internal/users/auth"
)

// httpFixture mounts the auth routes on a live test server.
type httpFixture struct {
	*serviceFixture
	router chi.Router
}

func newHTTPFixture(t *testing.T) *httpFixture {
	t.Helper()
	fixture := newServiceFixture(t)

	router := chi.NewRouter()
	router.Mount("/auth", auth.NewHandler(fixture.service).Routes(fixture.tokens))

	return &httpFixture{serviceFixture: fixture, router: router}
}

func (fixture *httpFixture) postJSON(t *testing.T, path string, payload map[string]any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		request.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	fixture.router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func registerPayload(email string) map[string]any {
	return map[string]any{
		"email":            email,
		"password":         "strong password",
		"confirm_password": "strong password",
		"first_name":       "Khanh",
		"last_name":        "Doan",
	}
}

/*
TestHTTP_Register verifies 201 with the envelope, and that the password hash
never appears in the response body.
*/
func TestHTTP_Register(t *testing.T) {
	fixture := newHTTPFixture(t)

	recorder := fixture.postJSON(t, "/auth/register", registerPayload("shopper@averia.shop"), nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	body := decodeBody(t, recorder)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)

	assert.Equal(t, "shopper@averia.shop", data["email"])
	assert.Equal(t, "user", data["role"])
	assert.Equal(t, true, data["is_active"])
	assert.Equal(t, false, data["is_verified"])

	// The hash is json:"-"
	assert.NotContains(t, recorder.Body.String(), "passwordhash")
	assert.NotContains(t, recorder.Body.String(), "password_hash")
}

/*
TestHTTP_Register_Validation verifies the 400 and 409 rejection paths.
*/
func TestHTTP_Register_Validation(t *testing.T) {
	fixture := newHTTPFixture(t)

	// Missing fields
	recorder := fixture.postJSON(t, "/auth/register", map[string]any{"email": "x@y.z"}, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// Password mismatch
	payload := registerPayload("shopper@averia.shop")
	payload["confirm_password"] = "something else"
	recorder = fixture.postJSON(t, "/auth/register", payload, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// Duplicate email
	recorder = fixture.postJSON(t, "/auth/register", registerPayload("shopper@averia.shop"), nil)
	require.Equal(t, http.StatusCreated, recorder.Code)
	recorder = fixture.postJSON(t, "/auth/register", registerPayload("shopper@averia.shop"), nil)
	assert.Equal(t, http.StatusConflict, recorder.Code)

	// Malformed body
	request := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	fixture.router.ServeHTTP(rec, request)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

/*
TestHTTP_LoginAndRefresh verifies the token pair response shape and the
Authorization-header refresh flow.
*/
func TestHTTP_LoginAndRefresh(t *testing.T) {
	fixture := newHTTPFixture(t)

	recorder := fixture.postJSON(t, "/auth/register", registerPayload("shopper@averia.shop"), nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = fixture.postJSON(t, "/auth/login", map[string]any{
		"email":    "shopper@averia.shop",
		"password": "strong password",
	}, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	data := decodeBody(t, recorder)["data"].(map[string]any)
	assert.NotEmpty(t, data["access_token"])
	assert.NotEmpty(t, data["refresh_token"])
	assert.Equal(t, "bearer", data["token_type"])
	assert.Equal(t, float64(900), data["expires_in"])

	user, ok := data["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "shopper@averia.shop", user["email"])

	// Refresh with the refresh token as bearer
	refreshToken := data["refresh_token"].(string)
	recorder = fixture.postJSON(t, "/auth/refresh", nil, map[string]string{
		"Authorization": "Bearer " + refreshToken,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	refreshed := decodeBody(t, recorder)["data"].(map[string]any)
	assert.NotEmpty(t, refreshed["access_token"])
	assert.Nil(t, refreshed["refresh_token"]) // no rotation; none returned

	// Refresh with the access token must fail
	accessToken := data["access_token"].(string)
	recorder = fixture.postJSON(t, "/auth/refresh", nil, map[string]string{
		"Authorization": "Bearer " + accessToken,
	})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Refresh without a token
	recorder = fixture.postJSON(t, "/auth/refresh", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestHTTP_Login_Unauthorized verifies the uniform 401 body for bad credentials.
*/
func TestHTTP_Login_Unauthorized(t *testing.T) {
	fixture := newHTTPFixture(t)

	recorder := fixture.postJSON(t, "/auth/register", registerPayload("shopper@averia.shop"), nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	unknown := fixture.postJSON(t, "/auth/login", map[string]any{
		"email":    "nobody@averia.shop",
		"password": "strong password",
	}, nil)
	wrong := fixture.postJSON(t, "/auth/login", map[string]any{
		"email":    "shopper@averia.shop",
		"password": "wrong password",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())
}

/*
TestHTTP_Logout verifies the guarded no-op endpoint.
*/
func TestHTTP_Logout(t *testing.T) {
	fixture := newHTTPFixture(t)

	recorder := fixture.postJSON(t, "/auth/register", registerPayload("shopper@averia.shop"), nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = fixture.postJSON(t, "/auth/login", map[string]any{
		"email":    "shopper@averia.shop",
		"password": "strong password",
	}, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	data := decodeBody(t, recorder)["data"].(map[string]any)
	accessToken := data["access_token"].(string)

	// Anonymous logout is rejected
	anonymous := fixture.postJSON(t, "/auth/logout", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

	// Authenticated logout acknowledges
	recorder = fixture.postJSON(t, "/auth/logout", nil, map[string]string{
		"Authorization": "Bearer " + accessToken,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	logoutData := decodeBody(t, recorder)["data"].(map[string]any)
	assert.Equal(t, "Successfully logged out", logoutData["message"])

	// The access token still works after logout
	recorder = fixture.postJSON(t, "/auth/logout", nil, map[string]string{
		"Authorization": "Bearer " + accessToken,
	})
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestHTTP_PasswordRecovery verifies the forgot/reset endpoints end to end.
*/
func TestHTTP_PasswordRecovery(t *testing.T) {
	fixture := newHTTPFixture(t)

	recorder := fixture.postJSON(t, "/auth/register", registerPayload("shopper@averia.shop"), nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	// Unknown email returns the same generic 200
	recorder = fixture.postJSON(t, "/auth/forgot-password", map[string]any{"email": "nobody@averia.shop"}, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = fixture.postJSON(t, "/auth/forgot-password", map[string]any{"email": "shopper@averia.shop"}, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	resetToken := fixture.notifier.lastToken
	require.NotEmpty(t, resetToken)

	// Weak password rejected
	recorder = fixture.postJSON(t, "/auth/reset-password", map[string]any{
		"token":        resetToken,
		"new_password": "short",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// Valid reset
	recorder = fixture.postJSON(t, "/auth/reset-password", map[string]any{
		"token":        resetToken,
		"new_password": "brand new password",
	}, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	// Login with the new password
	recorder = fixture.postJSON(t, "/auth/login", map[string]any{
		"email":    "shopper@averia.shop",
		"password": "brand new password",
	}, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestHTTP_VerifyEmail verifies the verification endpoint.
*/
func TestHTTP_VerifyEmail(t *testing.T) {
	fixture := newHTTPFixture(t)

	recorder := fixture.postJSON(t, "/auth/register", registerPayload("shopper@averia.shop"), nil)
	require.Equal(t, http.StatusCreated, recorder.Code)
	verifyToken := fixture.notifier.lastToken

	recorder = fixture.postJSON(t, "/auth/verify-email", map[string]any{"token": verifyToken}, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	// Unknown token
	recorder = fixture.postJSON(t, "/auth/verify-email", map[string]any{"token": "bogus"}, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	// Missing token
	recorder = fixture.postJSON(t, "/auth/verify-email", map[string]any{}, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
