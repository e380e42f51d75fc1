package errors

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidStateTransition covers every attempt to move an order along
	// an edge the lifecycle does not have.
	ErrInvalidStateTransition = errors.New("invalid order state transition")

	// ErrAlreadyCanceled is a specialization of ErrInvalidStateTransition:
	// CANCELED is terminal, so errors.Is reports both sentinels.
	ErrAlreadyCanceled = fmt.Errorf("%w: order already canceled", ErrInvalidStateTransition)

	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrAuthorizationDenied = errors.New("authorization denied")

	// ErrLockContention marks lock-wait timeouts and deadlocks reported by
	// the storage layer. Fatal for the request, never retried.
	ErrLockContention = errors.New("storage lock contention")
)
