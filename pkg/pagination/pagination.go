// Copyright (c) 2026 Averia. All rights reserved.
// Author: khanh.doan.dev@gmail.com

/*
Package pagination implements offset-based windowing over collections.

Clients page with two query parameters:

  - skip: number of rows to pass over before the window starts.
  - limit: maximum number of rows returned in the window.

Out-of-range or malformed values fall back to safe defaults instead of
erroring, so a bad query string can never break a listing endpoint.
*/
package pagination

import (
	"net/http"
	"strconv"
)

// # Defaults & Bounds

const (
	// DefaultLimit is the window size applied when the client omits 'limit'.
	DefaultLimit = 100

	// MaxLimit caps the window size to protect the database.
	MaxLimit = 1000
)

// # Types

// Params is a validated offset window.
type Params struct {
	Skip  int
	Limit int
}

// Meta describes the window a response was cut from.
type Meta struct {
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// # Construction

// New clamps raw skip and limit values into a valid [Params].
func New(skip, limit int) Params {
	if skip < 0 {
		skip = 0
	}

	if limit <= 0 {
		limit = DefaultLimit
	}

	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Skip: skip, Limit: limit}
}

// FromRequest reads 'skip' and 'limit' from the query string. Values that
// fail to parse are treated as absent.
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()

	skip, err := strconv.Atoi(query.Get("skip"))
	if err != nil {
		skip = 0
	}

	limit, err := strconv.Atoi(query.Get("limit"))
	if err != nil {
		limit = DefaultLimit
	}

	return New(skip, limit)
}

// MetaFor pairs a window with the collection's total row count.
func (p Params) MetaFor(total int64) Meta {
	return Meta{Skip: p.Skip, Limit: p.Limit, Total: total}
}
