package gate

import (
	"context"
	"maps"

	"github.com/VinkoRobi2/CameYa-sub001/internal/client/storage"
)

type memRepo struct{ data map[string][]byte }

func (m *memRepo) Get(_ context.Context, k string) ([]byte, error) { return m.data[k], nil }

func (m *memRepo) Set(_ context.Context, k string, v []byte) error {
	m.data[k] = v
	return nil
}

func (m *memRepo) Delete(_ context.Context, k string) error {
	delete(m.data, k)
	return nil
}

func (m *memRepo) List(context.Context) (map[string][]byte, error) { return maps.Clone(m.data), nil }

func (m *memRepo) Clear(context.Context) error {
	clear(m.data)
	return nil
}

func (m *memRepo) Apply(_ context.Context, ops ...storage.Op) error {
	for _, op := range ops {
		if op.Delete {
			delete(m.data, op.Key)
		} else {
			m.data[op.Key] = op.Value
		}
	}
	return nil
}
