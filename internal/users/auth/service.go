// Copyright (c) 2026 Averia. All rights reserved.
// Author: khanh.doan.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/khanhdoan/averia/internal/platform/apperr"
	"github.com/khanhdoan/averia/internal/platform/ctxutil"
	"github.com/khanhdoan/averia/internal/platform/sec"
	"github.com/khanhdoan/averia/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing and checking security tokens.
type TokenProvider interface {
	// IssueAccessToken creates a signed short-lived JWT for the given account.
	IssueAccessToken(accountID, email string, timeToLive time.Duration) (string, error)

	// IssueRefreshToken creates a signed long-lived JWT carrying type "refresh".
	IssueRefreshToken(accountID, email string, timeToLive time.Duration) (string, error)

	// VerifyRefreshToken checks a refresh token's signature, expiry, and type.
	VerifyRefreshToken(token string) (*sec.AuthClaims, error)
}

// Notifier defines the contract for sending transactional email.
type Notifier interface {
	SendVerificationEmail(ctx context.Context, recipient, token string) error
	SendPasswordResetEmail(ctx context.Context, recipient, token string) error
}

// Service implements account authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	accountRepository           AccountRepository
	resetTokenRepository        ResetTokenRepository
	verificationTokenRepository VerificationTokenRepository
	tokenProvider               TokenProvider
	notifier                    Notifier
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	accountRepo AccountRepository,
	resetRepo ResetTokenRepository,
	verifyRepo VerificationTokenRepository,
	tokenProv TokenProvider,
	notifier Notifier,
) *Service {
	return &Service{
		accountRepository:           accountRepo,
		resetTokenRepository:        resetRepo,
		verificationTokenRepository: verifyRepo,
		tokenProvider:               tokenProv,
		notifier:                    notifier,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	Phone           *string
}

/*
Register validates, hashes, and persists a brand new account.

Description: Deep-enrollment of a new customer, handling the password
confirmation check, hashing, and the initial verification token side effect.
The email is stored exactly as submitted; no lowercasing or trimming happens
here, so addresses differing only in case register as distinct accounts.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Account: Created entity
  - error: Conflict (if email exists), ValidationError, or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Account, error) {

	// Reject mismatched password confirmation before any lookup
	if input.Password != input.ConfirmPassword {
		return nil, apperr.ValidationError("Passwords do not match", apperr.FieldError{
			Field:   FieldConfirmPassword,
			Message: "Passwords do not match",
		})
	}

	// Verify email uniqueness. Return a client-safe Conflict err.
	// The check-then-insert window is closed by the unique index below.
	_, err := service.accountRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email already registered")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new Account entity. Time-sortable ID to prevent PG index fragmentation.
	account := &Account{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hashedPassword,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Role:         sec.RoleUser,
		IsActive:     true,
		IsVerified:   false,
		Addresses:    []Address{},
	}

	// Persist the account. A concurrent duplicate surfaces here as Conflict
	// via the unique email index.
	if err := service.accountRepository.Create(context, account); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	// Generate a verification token and fire the email as a side effect.
	// Failures here never abort a successful registration.
	token, err := sec.GenerateSecureToken(VerificationTokenLength)
	if err == nil {
		if err := service.verificationTokenRepository.Set(context, token, account.ID, VerificationTokenTTL); err == nil {
			if err := service.notifier.SendVerificationEmail(context, account.Email, token); err != nil {
				ctxutil.GetLogger(context).WarnContext(context, "verification_email_failed",
					slog.String("account_id", account.ID),
					slog.String("reason", err.Error()),
				)
			}
		}
	}

	return account, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginSession represents a successfully authenticated login.
type LoginSession struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // Access token lifetime, in seconds.
	Account      *Account
}

/*
Login validates account credentials and issues a token pair.

Description: Verifies identity with a constant-time password comparison and
issues both an access and a refresh token. Unknown email and wrong password
share one message to prevent account enumeration; a deactivated account is
reported distinctly, but only after the password check has passed.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready token pair plus the account
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {

	// Look up by exact email. Generic message to prevent enumeration.
	account, err := service.accountRepository.FindByEmail(context, input.Email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	// Verify password hash using bcrypt's constant-time comparison
	if !sec.CheckPasswordHash(input.Password, account.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	// Deactivated accounts are rejected only after the credential check,
	// so the distinct message never leaks whether a password was right.
	if !account.IsActive {
		return nil, apperr.Unauthorized("Account is deactivated")
	}

	// Generate short-lived Access Token
	accessToken, err := service.tokenProvider.IssueAccessToken(account.ID, account.Email, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	// Generate long-lived Refresh Token
	refreshToken, err := service.tokenProvider.IssueRefreshToken(account.ID, account.Email, RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	// Best-effort login stamp. A failed UPDATE must not fail the login.
	now := time.Now()
	if err := service.accountRepository.UpdateLastLogin(context, account.ID, now); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "last_login_stamp_failed",
			slog.String("account_id", account.ID),
			slog.String("reason", err.Error()),
		)
	} else {
		account.LastLoginAt = &now
	}

	return &LoginSession{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(AccessTokenTTL.Seconds()),
		Account:      account,
	}, nil
}

// # Token Lifecycle

/*
Refresh exchanges a valid refresh token for a fresh access token.

Description: The refresh token itself is not rotated and stays valid until
its own expiry; callers keep presenting the same one. No store lookup
happens here, so a token minted before a deactivation still refreshes.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - string: New signed access token
  - error: Unauthorized when the refresh token fails verification
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (string, error) {

	// Verify signature, expiry, and the "refresh" type claim
	claims, err := service.tokenProvider.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Mint a fresh access token from the refresh token's own claims
	accessToken, err := service.tokenProvider.IssueAccessToken(claims.Subject, claims.Email, AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("auth_service_refresh_access_token_failed: %w", err)
	}

	return accessToken, nil
}

/*
Logout acknowledges a client-side logout.

Description: Tokens are stateless and there is no server-side revocation
list, so the server has nothing to invalidate. Issued tokens stay valid
until they expire; the client is expected to discard its copies.

Parameters:
  - context: context.Context

Returns:
  - error: Always nil
*/
func (service *Service) Logout(context context.Context) error {
	return nil
}

// # Caller Resolution

/*
ResolveCaller loads the full account behind a verified access token subject.

Description: Point lookup used by the authentication gate. A token whose
subject no longer exists yields Unauthorized rather than NotFound, so a
deleted account's stale token reads as a failed authentication. The lookup
checks existence only; IsActive is not consulted here.

Parameters:
  - context: context.Context
  - accountID: string (the token's subject claim)

Returns:
  - *Account: Hydrated caller account
  - error: Unauthorized or storage failures
*/
func (service *Service) ResolveCaller(context context.Context, accountID string) (*Account, error) {

	account, err := service.accountRepository.FindByID(context, accountID)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusNotFound {
			return nil, apperr.Unauthorized("Account no longer exists")
		}
		return nil, err
	}

	return account, nil
}

// # Email Verification

/*
VerifyEmail confirms an account's email address using a secure token.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: NotFound for unknown tokens, or database errors
*/
func (service *Service) VerifyEmail(context context.Context, token string) error {

	// Retrieve the account ID associated with the verification token from Redis
	accountID, err := service.verificationTokenRepository.Get(context, token)
	if err != nil {
		return err
	}

	// Update the account's status to verified in persistent storage
	if err := service.accountRepository.MarkVerified(context, accountID); err != nil {
		return fmt.Errorf("auth_service_verify_email_failed: %w", err)
	}

	// Cleanup the used verification token from Redis
	_ = service.verificationTokenRepository.Delete(context, token)

	return nil
}

// # Password Recovery

/*
RequestPasswordReset initiates the forgot-password flow.

Description: Generates a secure token, saves it to Redis, and emails the
reset link. Unknown emails succeed silently to prevent enumeration.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: Generation or storage errors for known accounts only
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) error {

	// Unknown email: pretend success so the response reveals nothing
	account, err := service.accountRepository.FindByEmail(context, email)
	if err != nil {
		return nil
	}

	// Generate reset token
	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	// Save to Redis
	if err := service.resetTokenRepository.Set(context, token, account.ID, ResetTokenTTL); err != nil {
		return fmt.Errorf("auth_service_save_reset_token_failed: %w", err)
	}

	// Email the reset link. A delivery failure is logged, not surfaced.
	if err := service.notifier.SendPasswordResetEmail(context, account.Email, token); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "reset_email_failed",
			slog.String("account_id", account.ID),
			slog.String("reason", err.Error()),
		)
	}

	return nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Verifies the token, hashes the new password, and updates the
account. The used token is deleted so it cannot be replayed.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - error: NotFound for unknown tokens, or update failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {

	// Retrieve the accountID associated with the reset token from Redis
	accountID, err := service.resetTokenRepository.Get(context, token)
	if err != nil {
		return err
	}

	// Hash the new password securely
	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	// Update the account's password in persistent storage
	if err := service.accountRepository.UpdatePassword(context, accountID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	// Delete the used token from Redis
	_ = service.resetTokenRepository.Delete(context, token)

	return nil
}
