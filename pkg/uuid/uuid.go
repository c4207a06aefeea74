// Copyright (c) 2026 Averia. All rights reserved.
// Author: khanh.doan.dev@gmail.com

// Package uuid generates identifiers for new records.
//
// New accounts get UUID version 7 so that primary keys sort by creation
// time, which keeps btree inserts append-mostly.
package uuid

import "github.com/google/uuid"

// New returns a UUIDv7 string, falling back to v4 if the monotonic
// clock source fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// IsValid reports whether s parses as any RFC 4122 UUID.
func IsValid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
