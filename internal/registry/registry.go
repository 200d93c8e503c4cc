// Package registry is the name directory through which clients find rental
// companies. A name is bound to the base URL the company is served on.
package registry

import (
	"context"
	"errors"
)

var (
	// ErrNameNotFound is returned when no address is bound to a name
	ErrNameNotFound = errors.New("name not bound")
	// ErrUnreachable reports a transport failure talking to the directory
	ErrUnreachable = errors.New("registry unreachable")
	// ErrInvalidBinding rejects an empty name or address
	ErrInvalidBinding = errors.New("invalid binding")
)

// Registry binds company names to addresses
type Registry interface {
	Bind(ctx context.Context, name, addr string) error
	Lookup(ctx context.Context, name string) (string, error)
	Unbind(ctx context.Context, name string) error
	List(ctx context.Context) (map[string]string, error)
}

func validateBinding(name, addr string) error {
	if name == "" || addr == "" {
		return ErrInvalidBinding
	}
	return nil
}
