package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. Entity-specific variants below wrap it so errors.Is(err,
	// ErrNotFound) matches them all.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate of
	// a unique entity (e.g., a usuario with the same username).
	ErrDuplicate = errors.New("entity already exists")

	// ErrReferenced is returned when a delete is rejected because other rows
	// still reference the entity.
	ErrReferenced = errors.New("entity is referenced by other entities")

	// ErrInvalidReference is returned when a write names a foreign entity
	// that does not exist (e.g., a reparto pointing at a missing camion).
	ErrInvalidReference = errors.New("referenced entity not found")

	// Entity-specific "not found" errors.

	ErrClienteNotFound = fmt.Errorf("%w: cliente", ErrNotFound)
	ErrCamionNotFound  = fmt.Errorf("%w: camion", ErrNotFound)
	ErrRutaNotFound    = fmt.Errorf("%w: ruta", ErrNotFound)
	ErrRepartoNotFound = fmt.Errorf("%w: reparto", ErrNotFound)
	ErrUsuarioNotFound = fmt.Errorf("%w: usuario", ErrNotFound)

	// Entity-specific "duplicate" errors.

	ErrUsernameExists   = fmt.Errorf("%w: username", ErrDuplicate)
	ErrEmailExists      = fmt.Errorf("%w: email", ErrDuplicate)
	ErrCodigoAlteExists = fmt.Errorf("%w: codigoalte", ErrDuplicate)
	ErrRutExists        = fmt.Errorf("%w: rut", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError wraps a store failure with the entity and operation that
// produced it, giving handlers a human-readable prefix over the raw driver
// message.
type StoreError struct {
	Entity    string
	Operation string
	Err       error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("error al %s %s: %v", e.Operation, e.Entity, e.Err)
	}
	return fmt.Sprintf("error al %s %s", e.Operation, e.Entity)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a StoreError for the given entity and operation.
func NewStoreError(entity, operation string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Err: err}
}
