// Copyright (c) 2026 Averia. All rights reserved.
// Author: khanh.doan.dev@gmail.com

package account

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khanhdoan/averia/internal/platform/dberr"
	"github.com/khanhdoan/averia/internal/users/auth"
)

// # Directory Repository

// PostgresDirectoryRepository implements the DirectoryRepository interface using pgx.
type PostgresDirectoryRepository struct {
	pool *pgxpool.Pool
}

// NewDirectoryRepository creates a new PostgreSQL implementation of the DirectoryRepository.
func NewDirectoryRepository(pool *pgxpool.Pool) *PostgresDirectoryRepository {
	return &PostgresDirectoryRepository{pool: pool}
}

/*
FindByID retrieves an account record by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *auth.Account: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresDirectoryRepository) FindByID(context context.Context, id string) (*auth.Account, error) {
	const query = `
		SELECT id, email, passwordhash, firstname, lastname, phone, role,
		       isactive, isverified, addresses, createdat, updatedat, lastloginat
		FROM users.account
		WHERE id = $1`

	account := &auth.Account{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.FirstName,
		&account.LastName,
		&account.Phone,
		&account.Role,
		&account.IsActive,
		&account.IsVerified,
		&account.Addresses,
		&account.CreatedAt,
		&account.UpdatedAt,
		&account.LastLoginAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "Account")
	}

	return account, nil
}

/*
List returns a window of accounts ordered by creation time, newest last.

Description: Offset pagination over the directory. The window is cut with
LIMIT/OFFSET; callers clamp skip and limit before reaching this layer.

Parameters:
  - context: context.Context
  - skip: int
  - limit: int

Returns:
  - []auth.Account: The requested window
  - error: Retrieval failures
*/
func (repository *PostgresDirectoryRepository) List(context context.Context, skip, limit int) ([]auth.Account, error) {
	const query = `
		SELECT id, email, passwordhash, firstname, lastname, phone, role,
		       isactive, isverified, addresses, createdat, updatedat, lastloginat
		FROM users.account
		ORDER BY createdat ASC
		OFFSET $1 LIMIT $2`

	rows, err := repository.pool.Query(context, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres_directory_repo_list_failed: %w", err)
	}
	defer rows.Close()

	accounts := []auth.Account{}
	for rows.Next() {
		var account auth.Account
		err := rows.Scan(
			&account.ID,
			&account.Email,
			&account.PasswordHash,
			&account.FirstName,
			&account.LastName,
			&account.Phone,
			&account.Role,
			&account.IsActive,
			&account.IsVerified,
			&account.Addresses,
			&account.CreatedAt,
			&account.UpdatedAt,
			&account.LastLoginAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_directory_repo_scan_failed: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_directory_repo_rows_failed: %w", err)
	}

	return accounts, nil
}

/*
Count returns the total number of accounts in the directory.

Parameters:
  - context: context.Context

Returns:
  - int64: Total row count
  - error: Retrieval failures
*/
func (repository *PostgresDirectoryRepository) Count(context context.Context) (int64, error) {
	const query = "SELECT COUNT(*) FROM users.account"

	var total int64
	if err := repository.pool.QueryRow(context, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("postgres_directory_repo_count_failed: %w", err)
	}

	return total, nil
}

/*
UpdateProfile persists changes to an account's mutable profile fields.

Description: Synchronizes the in-memory account state with the database,
refreshing the updatedat timestamp. Credential and lifecycle columns are
deliberately outside this statement.

Parameters:
  - context: context.Context
  - account: *auth.Account

Returns:
  - error: Update failures
*/
func (repository *PostgresDirectoryRepository) UpdateProfile(context context.Context, account *auth.Account) error {
	const query = `
		UPDATE users.account
		SET firstname = $2, lastname = $3, phone = $4, updatedat = $5
		WHERE id = $1`

	account.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		account.ID,
		account.FirstName,
		account.LastName,
		account.Phone,
		account.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_directory_repo_update_failed: %w", err)
	}

	return nil
}
