package store

import (
	"context"
	"errors"
	"regexp"

	appio "github.com/archpadhq/archpad/pkg/io"
)

var (
	// ErrNotFound is returned by [Store.Get] and [Store.Delete] when no
	// design with the requested name exists.
	ErrNotFound = errors.New("design not found")

	// ErrInvalidName is returned when a design name is empty or contains
	// characters outside [A-Za-z0-9._ -]. Names become file names and
	// storage keys, so the character set is restricted uniformly across
	// backends.
	ErrInvalidName = errors.New("invalid design name")
)

// namePattern constrains design names across every backend.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._ -]*$`)

// ValidateName checks a design name against the shared naming rules.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}

// Store persists named diagram designs - the design catalog the UI offers as
// a selectable list. Implementations:
//   - memory: for tests and throwaway sessions
//   - file: a directory of <name>.json envelopes, the default for single-user
//     serving
//   - redis: shared deployments with small design sets
//   - mongo: shared deployments wanting queryable structured storage
type Store interface {
	// List returns the stored design names in lexical order.
	List(ctx context.Context) ([]string, error)

	// Get returns the design with the given name, or ErrNotFound.
	Get(ctx context.Context, name string) (appio.Diagram, error)

	// Put stores a design under the given name, replacing any previous
	// version.
	Put(ctx context.Context, name string, d appio.Diagram) error

	// Delete removes a design. Deleting an absent design returns
	// ErrNotFound so callers can report it.
	Delete(ctx context.Context, name string) error

	// Close releases backend resources.
	Close() error
}
