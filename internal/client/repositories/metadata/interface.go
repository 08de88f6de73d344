// Package metadata is the client's small key/value store. The console keeps
// exactly one key in it: the raw credential (common.CredentialMetadataKey).
package metadata

import (
	"context"
)

// Repository stores opaque values by key. Get returns (nil, nil) for a
// missing key; Delete of a missing key is not an error. Clear empties the
// store on logout.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
