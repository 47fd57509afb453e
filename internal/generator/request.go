package generator

import (
	"slices"

	"github.com/atinyakov/passgen/internal/charset"
)

// Request is an immutable snapshot of what to generate.
type Request struct {
	Length  int
	Classes []charset.Class
}

// Config builds a Request. It is a value type: every method returns an
// updated copy and leaves the receiver untouched. The zero value has no
// classes and length 0.
type Config struct {
	length  int
	classes []charset.Class
}

// NewConfig returns an empty Config.
func NewConfig() Config {
	return Config{}
}

// WithLength sets the password length.
func (c Config) WithLength(n int) Config {
	c.length = n
	return c
}

// Use turns class on or off. Repeated calls with the same value are no-ops.
func (c Config) Use(class charset.Class, active bool) Config {
	classes := make([]charset.Class, 0, len(c.classes)+1)
	for _, existing := range c.classes {
		if existing != class {
			classes = append(classes, existing)
		}
	}
	if active {
		classes = append(classes, class)
	}
	c.classes = classes
	return c
}

// UseDigits toggles the digits class.
func (c Config) UseDigits(active bool) Config { return c.Use(charset.Digits, active) }

// UseLowerCase toggles the lowercase class.
func (c Config) UseLowerCase(active bool) Config { return c.Use(charset.LowerCase, active) }

// UseUpperCase toggles the uppercase class.
func (c Config) UseUpperCase(active bool) Config { return c.Use(charset.UpperCase, active) }

// Length returns the configured length.
func (c Config) Length() int { return c.length }

// Classes returns the active classes in the order they were enabled.
func (c Config) Classes() []charset.Class { return slices.Clone(c.classes) }

// Request snapshots the configuration.
func (c Config) Request() Request {
	return Request{Length: c.length, Classes: slices.Clone(c.classes)}
}
