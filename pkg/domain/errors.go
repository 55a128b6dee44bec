package domain

import "errors"

// ErrProfileNotFound is returned when a profile ID cannot be found in a store.
var ErrProfileNotFound = errors.New("profile not found")

// ErrEmptyProfileID is returned by stores when asked to persist a profile without an ID.
var ErrEmptyProfileID = errors.New("profile ID cannot be empty")
