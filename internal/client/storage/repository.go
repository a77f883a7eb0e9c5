package storage

import "context"

// Op is a single write in an Apply batch. A nil Value with Delete unset is
// stored as an empty value.
type Op struct {
	Key    string
	Value  []byte
	Delete bool
}

// Put returns an Op that stores value under key.
func Put(key string, value []byte) Op { return Op{Key: key, Value: value} }

// Remove returns an Op that deletes key.
func Remove(key string) Op { return Op{Key: key, Delete: true} }

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	// Apply performs every op or none of them.
	Apply(ctx context.Context, ops ...Op) error
}
