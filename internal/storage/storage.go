package storage

import "context"

// Storage writes archive bytes to a backing store. Write returns the source
// URI under which the bytes can later be located; the URI scheme depends on
// the backend.
type Storage interface {
	Write(ctx context.Context, name string, data []byte) (string, error)
}
