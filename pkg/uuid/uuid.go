// Copyright (c) 2026 Lotsawa. All rights reserved.

/*
Package uuid provides time-ordered unique identifiers for catalog records.

It wraps google/uuid to generate Version 7 values: sortable by creation time
and friendly to B-tree indexes. Both storage backends use these ids so records
move between them unchanged.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// It panics only if the OS random source is unavailable, which is an
// unrecoverable system-level error.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}

// Valid reports whether s parses as a UUID.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
