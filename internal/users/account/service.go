// Copyright (c) 2026 Averia. All rights reserved.
// Author: khanh.doan.dev@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/khanhdoan/averia/internal/users/auth"
	"github.com/khanhdoan/averia/pkg/pagination"
)

// # Service Layer

// Service orchestrates the account directory and profile self-service.
type Service struct {
	directoryRepository DirectoryRepository
	logger              *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(directoryRepo DirectoryRepository, logger *slog.Logger) *Service {
	return &Service{
		directoryRepository: directoryRepo,
		logger:              logger,
	}
}

// # Directory

/*
GetAccount retrieves a single account by its ID.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - *auth.Account: The hydrated account
  - error: apperr.NotFound or execution failures
*/
func (service *Service) GetAccount(context context.Context, accountID string) (*auth.Account, error) {
	account, err := service.directoryRepository.FindByID(context, accountID)
	if err != nil {
		return nil, err
	}
	return account, nil
}

/*
ListAccounts returns an offset window over the account directory plus the
total count for pagination metadata.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []auth.Account: The requested window, empty (not nil) past the end
  - pagination.Meta: Window plus the directory's total row count
  - error: Retrieval failures
*/
func (service *Service) ListAccounts(context context.Context, params pagination.Params) ([]auth.Account, pagination.Meta, error) {

	accounts, err := service.directoryRepository.List(context, params.Skip, params.Limit)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("account_service_list_failed: %w", err)
	}

	total, err := service.directoryRepository.Count(context)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("account_service_count_failed: %w", err)
	}

	if accounts == nil {
		accounts = []auth.Account{}
	}

	return accounts, params.MetaFor(total), nil
}

// # Profile Self-Service

// UpdateProfileInput defines the mutable subset of account profile fields.
// Nil pointers leave the corresponding field untouched.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
}

/*
UpdateProfile applies a partial set of changes to an account's profile.

Description: Fetches the existing account state, overrides provided fields,
and synchronizes the change to persistent storage. Email, role, and the
lifecycle flags are not reachable through this path.

Parameters:
  - context: context.Context
  - accountID: string
  - input: UpdateProfileInput

Returns:
  - *auth.Account: The updated account
  - error: Update or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, accountID string, input UpdateProfileInput) (*auth.Account, error) {

	account, err := service.directoryRepository.FindByID(context, accountID)
	if err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.FirstName != nil {
		account.FirstName = *input.FirstName
	}

	// Apply delta updates
	if input.LastName != nil {
		account.LastName = *input.LastName
	}

	// Apply delta updates
	if input.Phone != nil {
		account.Phone = input.Phone
	}

	// Persist changes
	if err := service.directoryRepository.UpdateProfile(context, account); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("account_profile_updated", slog.String("account_id", accountID))

	return account, nil
}
