package repository

import (
	"errors"
)

// ErrNotFound is returned by repository mutations that matched no row.
var ErrNotFound = errors.New("record not found")
