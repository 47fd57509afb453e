package repository

import (
	"context"
	"sync"
)

// MemoryFingerprintRepository keeps fingerprints in a map. Contents are lost
// when the process exits.
type MemoryFingerprintRepository struct {
	mu     sync.Mutex
	hashes map[string]struct{}
}

// NewMemoryFingerprintRepository returns an empty repository.
func NewMemoryFingerprintRepository() *MemoryFingerprintRepository {
	return &MemoryFingerprintRepository{hashes: make(map[string]struct{})}
}

func (r *MemoryFingerprintRepository) Exists(_ context.Context, hash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.hashes[hash]
	return ok, nil
}

func (r *MemoryFingerprintRepository) Record(_ context.Context, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hashes[hash] = struct{}{}
	return nil
}

func (r *MemoryFingerprintRepository) Claim(_ context.Context, hash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.hashes[hash]; ok {
		return false, nil
	}
	r.hashes[hash] = struct{}{}
	return true, nil
}

func (r *MemoryFingerprintRepository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.hashes)), nil
}
