package ports

import (
	"context"
	"errors"
)

// ErrNotStored reports that no value exists under the requested key.
// Absence of a credential is a normal state, not a storage failure.
var ErrNotStored = errors.New("no credential stored")

// CredentialStore is a persistent key-value slot for bearer credentials.
// Implementations do no validation; they are purely mechanical storage.
type CredentialStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
