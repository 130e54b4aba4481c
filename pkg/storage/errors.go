package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrPropertyNotFound and ErrUserNotFound narrow ErrNotFound for directory lookups.
var (
	ErrPropertyNotFound = fmt.Errorf("property %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
)

// ErrConflict is returned when a conditional write lost against a concurrent writer,
// i.e. the record no longer has the expected status or version.
var ErrConflict = errors.New("conditional write failed: record changed concurrently")
