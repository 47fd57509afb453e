// Package service provides the password issuing business logic, delegating
// persistence to a FingerprintRepository.
package service

import (
	"context"

	"github.com/atinyakov/passgen/internal/generator"
)

// FingerprintRepository defines the persistence operations required to
// remember issued passwords. Implementations only ever see fingerprints.
type FingerprintRepository interface {
	// Exists returns true if the fingerprint has been recorded.
	Exists(ctx context.Context, hash string) (bool, error)
	// Record stores the fingerprint. Recording it again is a no-op.
	Record(ctx context.Context, hash string) error
	// Claim records the fingerprint and returns true only if it was absent,
	// in one atomic step.
	Claim(ctx context.Context, hash string) (bool, error)
	// Count returns the number of recorded fingerprints.
	Count(ctx context.Context) (int64, error)
}

// Hasher turns a password into its fingerprint.
type Hasher interface {
	Fingerprint(password string) string
}

// FingerprintStore adapts a repository and a hasher into the store the
// generator checks candidates against.
type FingerprintStore struct {
	repo   FingerprintRepository
	hasher Hasher
}

var (
	_ generator.Store   = (*FingerprintStore)(nil)
	_ generator.Claimer = (*FingerprintStore)(nil)
)

// NewFingerprintStore constructs a FingerprintStore.
func NewFingerprintStore(repo FingerprintRepository, hasher Hasher) *FingerprintStore {
	return &FingerprintStore{repo: repo, hasher: hasher}
}

// Exists reports whether candidate was issued before.
func (s *FingerprintStore) Exists(ctx context.Context, candidate string) (bool, error) {
	return s.repo.Exists(ctx, s.hasher.Fingerprint(candidate))
}

// Record marks candidate as issued.
func (s *FingerprintStore) Record(ctx context.Context, candidate string) error {
	return s.repo.Record(ctx, s.hasher.Fingerprint(candidate))
}

// Claim marks candidate as issued if nobody did before.
func (s *FingerprintStore) Claim(ctx context.Context, candidate string) (bool, error) {
	return s.repo.Claim(ctx, s.hasher.Fingerprint(candidate))
}

// Count returns the number of issued passwords.
func (s *FingerprintStore) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
