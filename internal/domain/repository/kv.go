package repository

import "context"

// KVStore is the persistence port backing the credential store. The session
// layer uses exactly two logical records per session: the canonical user
// JSON and the active-role tag.
type KVStore interface {
	// Get returns the stored value; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
