// Package generator produces passwords that contain at least one character of
// every requested class, never repeat a character, and have never been issued
// before.
//
// A Generator drives repeated attempts: each attempt builds a position mask,
// assembles a candidate from fresh character pools and asks the fingerprint
// store whether the candidate was issued already. The first unseen candidate
// is recorded and returned. Attempts stop once the timeout has elapsed.
package generator

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/passgen/internal/charset"
)

// DefaultTimeout bounds how long Generate keeps retrying.
const DefaultTimeout = 25 * time.Second

// Store is the record of every password issued so far.
type Store interface {
	// Exists reports whether candidate was issued before.
	Exists(ctx context.Context, candidate string) (bool, error)
	// Record marks candidate as issued. Recording it twice is not an error.
	Record(ctx context.Context, candidate string) error
}

// Claimer is implemented by stores that can check and record in one atomic
// step. Claim returns true only for the caller that recorded candidate.
// Generate prefers Claim when the store provides it, which keeps concurrent
// generators from issuing the same password.
type Claimer interface {
	Claim(ctx context.Context, candidate string) (bool, error)
}

// Generator issues unique passwords. It is safe for concurrent use as long as
// its Store is.
type Generator struct {
	store    Store
	registry *charset.Registry
	rng      *rand.Rand
	now      func() time.Time
	timeout  time.Duration
	log      *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRegistry replaces the default character class registry.
func WithRegistry(r *charset.Registry) Option {
	return func(g *Generator) { g.registry = r }
}

// WithSource replaces the cryptographic random source, e.g. with a seeded
// PCG in tests.
func WithSource(src rand.Source) Option {
	return func(g *Generator) { g.rng = rand.New(&lockedSource{src: src}) }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithTimeout sets how long Generate may keep retrying.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) { g.timeout = d }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// New returns a Generator that records issued passwords in store.
func New(store Store, opts ...Option) *Generator {
	g := &Generator{
		store:    store,
		registry: charset.Default(),
		rng:      rand.New(cryptoSource{}),
		now:      time.Now,
		timeout:  DefaultTimeout,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a password satisfying req that the store had not seen.
// Structural problems with req fail before the first attempt. Errors are
// *GenerationError values; use errors.Is with the package sentinels.
func (g *Generator) Generate(ctx context.Context, req Request) (string, error) {
	classes, available, err := g.validate(req)
	if err != nil {
		return "", &GenerationError{
			Err:       err,
			Length:    req.Length,
			Classes:   classes,
			Available: available,
		}
	}

	start := g.now()
	for attempt := 1; ; attempt++ {
		fail := func(err error) error {
			return &GenerationError{
				Err:       err,
				Length:    req.Length,
				Classes:   classes,
				Available: available,
				Attempts:  attempt,
				Elapsed:   g.now().Sub(start),
			}
		}

		candidate, err := g.attempt(req.Length, classes)
		if err != nil {
			g.log.Error("password assembly broke an invariant",
				zap.Error(err),
				zap.Int("length", req.Length),
				zap.Any("classes", classes),
			)
			return "", fail(err)
		}

		accepted, err := g.check(ctx, candidate)
		if err != nil {
			return "", fail(fmt.Errorf("fingerprint store: %w", err))
		}
		if accepted {
			g.log.Debug("password issued", zap.Int("attempts", attempt))
			return candidate, nil
		}

		if elapsed := g.now().Sub(start); elapsed > g.timeout {
			g.log.Warn("gave up looking for an unissued password",
				zap.Int("attempts", attempt),
				zap.Duration("elapsed", elapsed),
				zap.Int("length", req.Length),
			)
			return "", fail(ErrUniquenessTimeout)
		}
		g.log.Debug("candidate already issued, retrying", zap.Int("attempt", attempt))
	}
}

// validate deduplicates the classes and rejects requests no attempt could
// satisfy.
func (g *Generator) validate(req Request) ([]charset.Class, int, error) {
	classes := make([]charset.Class, 0, len(req.Classes))
	seen := make(map[charset.Class]struct{}, len(req.Classes))
	available := 0
	for _, c := range req.Classes {
		if _, dup := seen[c]; dup {
			continue
		}
		if !g.registry.Has(c) {
			return classes, available, fmt.Errorf("%w: %q", ErrUnknownClass, c)
		}
		seen[c] = struct{}{}
		classes = append(classes, c)
		available += g.registry.Size(c)
	}

	switch {
	case req.Length < 1:
		return classes, available, ErrInvalidLength
	case available < req.Length:
		return classes, available, ErrInsufficientAlphabet
	case len(classes) > req.Length:
		return classes, available, ErrTooManyClasses
	}
	return classes, available, nil
}

// attempt assembles one candidate from a fresh mask and fresh pools.
func (g *Generator) attempt(length int, classes []charset.Class) (string, error) {
	m, err := buildMask(length, classes, g.rng)
	if err != nil {
		return "", err
	}
	return assemble(m, newPool(g.registry, classes, g.rng))
}

// check reports whether candidate was unseen, recording it if so.
func (g *Generator) check(ctx context.Context, candidate string) (bool, error) {
	if c, ok := g.store.(Claimer); ok {
		return c.Claim(ctx, candidate)
	}

	exists, err := g.store.Exists(ctx, candidate)
	if err != nil || exists {
		return false, err
	}
	if err := g.store.Record(ctx, candidate); err != nil {
		return false, err
	}
	return true, nil
}
