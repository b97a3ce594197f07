// Package localstore is the client's persistent key/value storage. It plays
// the role browser localStorage plays for a web front end: small named blobs
// (session principal, bearer token, transient reset state, cached lists)
// that survive a restart of the application.
package localstore

import "context"

// Well-known keys. Only the session store may write KeyUser and KeyToken,
// and only the password-reset flow may write the reset keys; this keeps the
// in-memory and persisted views from diverging.
const (
	KeyUser          = "user"
	KeyToken         = "token"
	KeyResetEmail    = "resetEmail"
	KeyResetUserType = "resetUserType"
	KeyEmployees     = "employees"
)

// Repository is the persistent key/value store. Get returns (nil, nil) when
// the key is absent. SetMany writes all entries atomically; related keys
// (such as the reset flow's email + user type pair) must never be persisted
// half-written.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, entries map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
