package generator

import (
	"fmt"
	"math/rand/v2"

	"github.com/atinyakov/passgen/internal/charset"
)

// pool holds the characters not yet used by the current attempt, per class.
type pool struct {
	rng       *rand.Rand
	classes   []charset.Class
	remaining map[charset.Class][]rune
}

// newPool copies the full alphabet of every active class.
func newPool(reg *charset.Registry, classes []charset.Class, rng *rand.Rand) *pool {
	p := &pool{
		rng:       rng,
		classes:   classes,
		remaining: make(map[charset.Class][]rune, len(classes)),
	}
	for _, c := range classes {
		chars, _ := reg.Alphabet(c)
		p.remaining[c] = chars
	}
	return p
}

// take removes and returns a uniformly chosen character of class.
func (p *pool) take(class charset.Class) (rune, error) {
	chars := p.remaining[class]
	if len(chars) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrPoolExhausted, class)
	}

	i := p.rng.IntN(len(chars))
	ch := chars[i]
	last := len(chars) - 1
	chars[i] = chars[last]
	p.remaining[class] = chars[:last]
	return ch, nil
}

// takeAny picks a class uniformly among those with characters left and takes
// from it.
func (p *pool) takeAny() (charset.Class, rune, error) {
	open := make([]charset.Class, 0, len(p.classes))
	for _, c := range p.classes {
		if len(p.remaining[c]) > 0 {
			open = append(open, c)
		}
	}
	if len(open) == 0 {
		return "", 0, ErrAllPoolsExhausted
	}

	c := open[p.rng.IntN(len(open))]
	ch, err := p.take(c)
	return c, ch, err
}
