// Copyright (c) 2026 Averia. All rights reserved.
// Author: khanh.doan.dev@gmail.com

/*
Package notify delivers transactional email to account holders.

Delivery is currently stubbed: instead of talking to an SMTP relay or a
provider API, the service renders the final message and writes it to the
structured log. The rendered links are real, so a developer can copy them
out of the log stream and complete a verification or reset flow locally.

Swapping in a real provider only requires replacing the send step; the
rendering and the call sites stay unchanged.
*/
package notify

import (
	"context"
	"fmt"
	"log/slog"
)

// # Email Service

// EmailService renders and (for now) logs transactional email.
type EmailService struct {
	log         *slog.Logger
	baseURL     string
	fromAddress string
}

// NewEmailService builds the service. baseURL is the frontend origin the
// action links point at, without a trailing slash.
func NewEmailService(log *slog.Logger, baseURL, fromAddress string) *EmailService {
	return &EmailService{
		log:         log,
		baseURL:     baseURL,
		fromAddress: fromAddress,
	}
}

/*
SendVerificationEmail emails a newly registered account holder a link that
proves ownership of the address.

Parameters:

  - ctx: request-scoped context for log correlation.
  - recipient: the account's email address.
  - token: the opaque verification token embedded in the link.

Returns:

  - error: nil in the logging stub; kept so callers handle a real provider.
*/
func (service *EmailService) SendVerificationEmail(ctx context.Context, recipient, token string) error {

	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", service.baseURL, token)

	service.log.InfoContext(ctx, "email_verification_sent",
		slog.String("from", service.fromAddress),
		slog.String("to", recipient),
		slog.String("subject", "Verify your Averia account"),
		slog.String("verify_url", verifyURL),
	)

	return nil
}

/*
SendPasswordResetEmail emails a password reset link.

Parameters:

  - ctx: request-scoped context for log correlation.
  - recipient: the account's email address.
  - token: the opaque reset token embedded in the link.

Returns:

  - error: nil in the logging stub; kept so callers handle a real provider.
*/
func (service *EmailService) SendPasswordResetEmail(ctx context.Context, recipient, token string) error {

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", service.baseURL, token)

	service.log.InfoContext(ctx, "email_password_reset_sent",
		slog.String("from", service.fromAddress),
		slog.String("to", recipient),
		slog.String("subject", "Reset your Averia password"),
		slog.String("reset_url", resetURL),
	)

	return nil
}
