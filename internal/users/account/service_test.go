// Copyright (c) 2026 Averia. All rights reserved.
// Author: khanh.doan.dev@gmail.com

package account_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanhdoan/averia/internal/platform/apperr"
	"github.com/khanhdoan/averia/internal/platform/sec"
	"github.com/khanhdoan/averia/internal/users/account"
	"github.com/khanhdoan/averia/internal/users/auth"
	"github.com/khanhdoan/averia/pkg/pagination"
	"github.com/khanhdoan/averia/pkg/pointer"
)

// # In-Memory Fake

// memoryDirectoryRepo keeps accounts in insertion order, mirroring the
// store's createdat ordering.
type memoryDirectoryRepo struct {
	accounts []auth.Account
}

func (repo *memoryDirectoryRepo) FindByID(_ context.Context, id string) (*auth.Account, error) {
	for i := range repo.accounts {
		if repo.accounts[i].ID == id {
			clone := repo.accounts[i]
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Account")
}

func (repo *memoryDirectoryRepo) List(_ context.Context, skip, limit int) ([]auth.Account, error) {
	if skip >= len(repo.accounts) {
		return []auth.Account{}, nil
	}
	end := skip + limit
	if end > len(repo.accounts) {
		end = len(repo.accounts)
	}
	window := make([]auth.Account, end-skip)
	copy(window, repo.accounts[skip:end])
	return window, nil
}

func (repo *memoryDirectoryRepo) Count(_ context.Context) (int64, error) {
	return int64(len(repo.accounts)), nil
}

func (repo *memoryDirectoryRepo) UpdateProfile(_ context.Context, updated *auth.Account) error {
	for i := range repo.accounts {
		if repo.accounts[i].ID == updated.ID {
			repo.accounts[i] = *updated
			return nil
		}
	}
	return apperr.NotFound("Account")
}

func seededService(n int) (*account.Service, *memoryDirectoryRepo) {
	repo := &memoryDirectoryRepo{}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < n; i++ {
		repo.accounts = append(repo.accounts, auth.Account{
			ID:        fmt.Sprintf("account-%03d", i),
			Email:     fmt.Sprintf("shopper%03d@averia.shop", i),
			FirstName: "Shopper",
			LastName:  fmt.Sprintf("Number%03d", i),
			Role:      sec.RoleUser,
			IsActive:  true,
			Addresses: []auth.Address{},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	return account.NewService(repo, slog.Default()), repo
}

// # Directory

/*
TestListAccounts_Windowing verifies skip/limit behavior including the
empty-window edge past the end of the directory.
*/
func TestListAccounts_Windowing(t *testing.T) {
	service, _ := seededService(12)

	// Default window covers everything (12 < DefaultLimit)
	accounts, meta, err := service.ListAccounts(context.Background(), pagination.New(0, 0))
	require.NoError(t, err)
	assert.Len(t, accounts, 12)
	assert.Equal(t, int64(12), meta.Total)
	assert.Equal(t, pagination.DefaultLimit, meta.Limit)

	// Middle window
	accounts, meta, err = service.ListAccounts(context.Background(), pagination.New(5, 3))
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, "account-005", accounts[0].ID)
	assert.Equal(t, 5, meta.Skip)

	// Window past the end: empty list, not an error
	accounts, meta, err = service.ListAccounts(context.Background(), pagination.New(100, 10))
	require.NoError(t, err)
	assert.NotNil(t, accounts)
	assert.Empty(t, accounts)
	assert.Equal(t, int64(12), meta.Total)
}

/*
TestGetAccount verifies single lookup and the NotFound path.
*/
func TestGetAccount(t *testing.T) {
	service, _ := seededService(3)

	found, err := service.GetAccount(context.Background(), "account-001")
	require.NoError(t, err)
	assert.Equal(t, "shopper001@averia.shop", found.Email)

	_, err = service.GetAccount(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

// # Profile

/*
TestUpdateProfile verifies delta updates: provided fields change, absent
fields survive, and the immutable columns are untouched.
*/
func TestUpdateProfile(t *testing.T) {
	service, repo := seededService(1)

	updated, err := service.UpdateProfile(context.Background(), "account-000", account.UpdateProfileInput{
		FirstName: pointer.To("Khanh"),
		Phone:     pointer.To("+84912345678"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Khanh", updated.FirstName)
	assert.Equal(t, "Number000", updated.LastName) // untouched
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "+84912345678", *updated.Phone)
	assert.Equal(t, "shopper000@averia.shop", updated.Email) // immutable here

	// The change persisted
	stored, err := repo.FindByID(context.Background(), "account-000")
	require.NoError(t, err)
	assert.Equal(t, "Khanh", stored.FirstName)

	// Unknown account
	_, err = service.UpdateProfile(context.Background(), "missing", account.UpdateProfileInput{
		FirstName: pointer.To("X"),
	})
	assert.Error(t, err)
}
