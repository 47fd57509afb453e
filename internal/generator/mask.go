package generator

import (
	"math/rand/v2"
	"slices"

	"github.com/atinyakov/passgen/internal/charset"
)

// Any marks a mask slot that any active class may fill. The registry never
// accepts it as a class name.
const Any charset.Class = ""

// mask assigns a class, or Any, to every position of the password.
type mask []charset.Class

// buildMask pins each class to exactly one random position. Classes are
// pinned in random order; a taken position moves the pin forward, wrapping
// at the end, to the next free slot.
func buildMask(length int, classes []charset.Class, rng *rand.Rand) (mask, error) {
	if len(classes) > length {
		return nil, ErrTooManyClasses
	}

	m := make(mask, length)
	order := slices.Clone(classes)
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	for _, c := range order {
		pos := rng.IntN(length)
		// At least one slot is free: pinned < len(classes) <= length.
		for m[pos] != Any {
			pos = (pos + 1) % length
		}
		m[pos] = c
	}
	return m, nil
}
