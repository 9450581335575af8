package models

import "errors"

// ErrDuplicate is returned by stores when a unique index rejects a write.
var ErrDuplicate = errors.New("duplicate document")
