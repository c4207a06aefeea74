// Copyright (c) 2026 Averia. All rights reserved.
// Author: khanh.doan.dev@gmail.com

/*
Package account handles the account directory and profile self-service.

It provides the read-side listing of registered accounts, single-account
lookup, and the endpoints through which an authenticated customer views
and updates their own profile.

# Architecture

  - Domain: This package depends on the auth package for the Account entity.
  - Directory: Offset-windowed listing backed by Postgres.
  - Profile: Delta updates over the mutable subset of profile fields.
*/
package account

import (
	"context"

	"github.com/khanhdoan/averia/internal/users/auth"
)

// # Repository Contracts

// DirectoryRepository defines the read and profile-update contract over accounts.
type DirectoryRepository interface {
	/*
		FindByID retrieves an account record by its unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.Account: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.Account, error)

	/*
		List returns a window of accounts ordered by creation time.

		Parameters:
		  - context: context.Context
		  - skip: int (rows to pass over)
		  - limit: int (window size)

		Returns:
		  - []auth.Account: The requested window, possibly empty
		  - error: Retrieval failures
	*/
	List(context context.Context, skip, limit int) ([]auth.Account, error)

	/*
		Count returns the total number of accounts in the directory.

		Parameters:
		  - context: context.Context

		Returns:
		  - int64: Total row count
		  - error: Retrieval failures
	*/
	Count(context context.Context) (int64, error)

	/*
		UpdateProfile modifies the mutable profile fields of an existing account.

		Parameters:
		  - context: context.Context
		  - account: *auth.Account (Hydrated entity with changes)

		Returns:
		  - error: Storage or constraint failures
	*/
	UpdateProfile(context context.Context, account *auth.Account) error
}
