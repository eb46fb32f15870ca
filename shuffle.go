package sparkle

import "fmt"

// Perm returns the integers [0, n) as a uniformly random permutation,
// using a Fisher-Yates shuffle driven by Uniform.
func (g *Generator) Perm(n int) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: permutation size must be non-negative, got %d", ErrInvalidArgument, n)
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	if err := g.Shuffle(n, func(i, j int) { out[i], out[j] = out[j], out[i] }); err != nil {
		return nil, err
	}
	return out, nil
}

// Shuffle pseudo-randomizes the order of n elements through the
// caller-supplied swap function, in the manner of math/rand.Shuffle.
// The sequence of swaps is deterministic for a given seeded generator.
func (g *Generator) Shuffle(n int, swap func(i, j int)) error {
	if n < 0 {
		return fmt.Errorf("%w: shuffle size must be non-negative, got %d", ErrInvalidArgument, n)
	}
	for i := 0; i < n; i++ {
		j, err := g.Uniform(uint64(i), uint64(n))
		if err != nil {
			return err
		}
		swap(i, int(j))
	}
	return nil
}
