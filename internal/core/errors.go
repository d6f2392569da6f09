package core

import (
	"errors"
)

var (
	// Store errors.
	ErrKeyNotFound      = errors.New("key not found")
	ErrStoreUnreachable = errors.New("store unreachable")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrUnknownBackend   = errors.New("unknown store backend")

	// Vote errors.
	ErrInvalidVoteTarget = errors.New("invalid vote target")
	ErrInvalidOptions    = errors.New("invalid vote options")
	ErrMethodNotAllowed  = errors.New("method not allowed")

	// Audit errors.
	ErrAuditDeliveryFailed = errors.New("audit delivery failed")
)
