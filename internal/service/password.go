package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/atinyakov/passgen/internal/generator"
	"github.com/atinyakov/passgen/internal/models"
)

// MaxCount caps how many passwords one request may issue.
const MaxCount = 100

// ErrInvalidCount is returned for a count outside 1..MaxCount. A zero count
// means one password.
var ErrInvalidCount = fmt.Errorf("count must be between 1 and %d", MaxCount)

// PasswordGenerator is the subset of *generator.Generator the service uses.
type PasswordGenerator interface {
	Generate(ctx context.Context, req generator.Request) (string, error)
}

// Counter reports how many passwords have been issued.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// PasswordService issues passwords on behalf of API callers.
type PasswordService struct {
	gen     PasswordGenerator
	counter Counter
}

// NewPasswordService constructs a PasswordService.
func NewPasswordService(gen PasswordGenerator, counter Counter) *PasswordService {
	return &PasswordService{gen: gen, counter: counter}
}

// Generate issues req.Count passwords (one if unset). Already issued
// passwords stay recorded if a later one fails.
func (s *PasswordService) Generate(ctx context.Context, req models.GenerateRequest) (models.GenerateResponse, error) {
	count := req.Count
	if count == 0 {
		count = 1
	}
	if count < 0 || count > MaxCount {
		return models.GenerateResponse{}, ErrInvalidCount
	}

	genReq := generator.NewConfig().
		WithLength(req.Length).
		UseDigits(req.Digits).
		UseLowerCase(req.LowerCase).
		UseUpperCase(req.UpperCase).
		Request()

	passwords := make([]string, 0, count)
	for i := 0; i < count; i++ {
		pw, err := s.gen.Generate(ctx, genReq)
		if err != nil {
			return models.GenerateResponse{}, err
		}
		passwords = append(passwords, pw)
	}
	return models.GenerateResponse{Passwords: passwords}, nil
}

// Issued returns the number of passwords recorded so far.
func (s *PasswordService) Issued(ctx context.Context) (models.StatsResponse, error) {
	n, err := s.counter.Count(ctx)
	if err != nil {
		return models.StatsResponse{}, err
	}
	return models.StatsResponse{Issued: n}, nil
}

// IsInvalidRequest reports whether err stems from a request no attempt can
// satisfy, as opposed to an exhausted time budget or a storage failure.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, generator.ErrInvalidLength) ||
		errors.Is(err, generator.ErrUnknownClass) ||
		errors.Is(err, generator.ErrInsufficientAlphabet) ||
		errors.Is(err, generator.ErrTooManyClasses)
}
