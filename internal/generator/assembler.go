package generator

import (
	"errors"
	"strings"
)

// assemble fills every slot of m from p in order. A pinned slot whose class
// has run dry falls back to any class with characters left.
func assemble(m mask, p *pool) (string, error) {
	var b strings.Builder
	b.Grow(len(m))

	for _, slot := range m {
		var (
			ch  rune
			err error
		)
		if slot != Any {
			ch, err = p.take(slot)
			if errors.Is(err, ErrPoolExhausted) {
				_, ch, err = p.takeAny()
			}
		} else {
			_, ch, err = p.takeAny()
		}
		if err != nil {
			return "", err
		}
		b.WriteRune(ch)
	}
	return b.String(), nil
}
