// Package charset defines the character classes a password may be composed
// of and the registry that maps each class to its literal alphabet.
package charset

import (
	"errors"
	"fmt"
	"sync"
)

// Class identifies a named set of characters.
type Class string

const (
	// Digits is the ASCII decimal digits class.
	Digits Class = "digits"
	// LowerCase is the ASCII lowercase letters class.
	LowerCase Class = "lowercase"
	// UpperCase is the ASCII uppercase letters class.
	UpperCase Class = "uppercase"
)

var (
	// ErrEmptyClass is returned when a class is registered without a name.
	ErrEmptyClass = errors.New("class name is empty")
	// ErrEmptyAlphabet is returned when a class is registered without characters.
	ErrEmptyAlphabet = errors.New("alphabet is empty")
	// ErrDuplicateChar is returned when an alphabet repeats a character.
	ErrDuplicateChar = errors.New("alphabet contains duplicate character")
	// ErrOverlap is returned when an alphabet shares a character with another class.
	ErrOverlap = errors.New("alphabet overlaps another class")
	// ErrClassExists is returned when the class is already registered.
	ErrClassExists = errors.New("class already registered")
)

// Registry maps classes to their alphabets. Alphabets are immutable once
// registered; lookups return copies.
type Registry struct {
	mu        sync.RWMutex
	alphabets map[Class][]rune
	owner     map[rune]Class
	order     []Class
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		alphabets: make(map[Class][]rune),
		owner:     make(map[rune]Class),
	}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the shared registry holding Digits, LowerCase and UpperCase.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		for _, c := range []struct {
			class    Class
			alphabet string
		}{
			{Digits, "0123456789"},
			{LowerCase, "abcdefghijklmnopqrstuvwxyz"},
			{UpperCase, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"},
		} {
			if err := defaultRegistry.Register(c.class, c.alphabet); err != nil {
				panic(err)
			}
		}
	})
	return defaultRegistry
}

// Register adds class with the given alphabet.
func (r *Registry) Register(class Class, alphabet string) error {
	if class == "" {
		return ErrEmptyClass
	}
	chars := []rune(alphabet)
	if len(chars) == 0 {
		return fmt.Errorf("register %q: %w", class, ErrEmptyAlphabet)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.alphabets[class]; ok {
		return fmt.Errorf("register %q: %w", class, ErrClassExists)
	}

	seen := make(map[rune]struct{}, len(chars))
	for _, ch := range chars {
		if _, dup := seen[ch]; dup {
			return fmt.Errorf("register %q: %w: %q", class, ErrDuplicateChar, ch)
		}
		if other, taken := r.owner[ch]; taken {
			return fmt.Errorf("register %q: %w %q: %q", class, ErrOverlap, other, ch)
		}
		seen[ch] = struct{}{}
	}

	for _, ch := range chars {
		r.owner[ch] = class
	}
	r.alphabets[class] = chars
	r.order = append(r.order, class)
	return nil
}

// Alphabet returns a copy of the alphabet of class.
func (r *Registry) Alphabet(class Class) ([]rune, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chars, ok := r.alphabets[class]
	if !ok {
		return nil, false
	}
	out := make([]rune, len(chars))
	copy(out, chars)
	return out, true
}

// Size returns the number of characters in class, or 0 if it is unknown.
func (r *Registry) Size(class Class) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.alphabets[class])
}

// Has reports whether class is registered.
func (r *Registry) Has(class Class) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.alphabets[class]
	return ok
}

// Classes returns the registered classes in registration order.
func (r *Registry) Classes() []Class {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Class, len(r.order))
	copy(out, r.order)
	return out
}

// ClassOf returns the class owning ch.
func (r *Registry) ClassOf(ch rune) (Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.owner[ch]
	return c, ok
}
