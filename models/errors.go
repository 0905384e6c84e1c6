package models

import "errors"

// ErrNotFound covers both a missing row and a row owned by another tenant, so
// existence never leaks across tenants.
var ErrNotFound = errors.New("not found")
