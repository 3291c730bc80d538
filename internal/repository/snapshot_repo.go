package repository

import (
	"context"
	"errors"
	"sync"
)

// ErrSnapshotNotFound indica que la clave todavia no fue escrita. No es un error de lectura.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository guarda la coleccion serializada de sesiones bajo una unica clave.
type SnapshotRepository interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// MemorySnapshotRepository mantiene el snapshot en memoria; util para tests y modo efimero.
type MemorySnapshotRepository struct {
	mu   sync.Mutex
	data []byte
}

func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{}
}

func (r *MemorySnapshotRepository) Load(_ context.Context) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data == nil {
		return nil, ErrSnapshotNotFound
	}
	return append([]byte(nil), r.data...), nil
}

func (r *MemorySnapshotRepository) Save(_ context.Context, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append([]byte(nil), data...)
	return nil
}
