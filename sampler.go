package sparkle

import (
	"fmt"
	"math/bits"
)

// Bits returns an n-bit unsigned integer drawn from the tank, with
// n in [0, 64]. Bits are consumed in cursor order and packed least
// significant first; when the cursor reaches the tank capacity the
// generator transparently permutes and squeezes a fresh tank.
func (g *Generator) Bits(n int) (uint64, error) {
	if g.steps == 0 {
		return 0, fmt.Errorf("%w: generator not constructed with New", ErrConfiguration)
	}
	if n < 0 || n > 64 {
		return 0, fmt.Errorf("%w: bit count must be in [0, 64], got %d", ErrInvalidArgument, n)
	}

	var out uint64
	for i := 0; i < n; i++ {
		if g.cursor == len(g.tank) {
			g.refill()
		} else if g.cursor > len(g.tank) {
			panic(fmt.Sprintf("sparkle: entropy cursor %d past tank capacity %d", g.cursor, len(g.tank)))
		}
		out |= uint64(g.tank[g.cursor]) << i
		g.cursor++
	}
	return out, nil
}

// Uniform returns an integer v with lower <= v < upper, uniformly
// distributed, like the bounds of a range expression. It draws the
// minimal number of bits covering the span and rejection-samples, so
// there is no modulo bias; the expected number of draws is below two.
func (g *Generator) Uniform(lower, upper uint64) (uint64, error) {
	if g.steps == 0 {
		return 0, fmt.Errorf("%w: generator not constructed with New", ErrConfiguration)
	}
	if upper <= lower {
		return 0, fmt.Errorf("%w: need upper > lower, got [%d, %d)", ErrInvalidArgument, lower, upper)
	}
	span := upper - lower
	if span == 1 {
		return lower, nil
	}

	// Smallest width with 2^width >= span, found by bit scan. A
	// floating-point log2 here would misround near powers of two.
	width := bits.Len64(span - 1)
	for {
		v, err := g.Bits(width)
		if err != nil {
			return 0, err
		}
		// 2^width < 2*span, so this accepts with probability > 1/2.
		if v < span {
			return lower + v, nil
		}
	}
}
