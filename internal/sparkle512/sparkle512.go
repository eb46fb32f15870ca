// Package sparkle512 implements the 512-bit Sparkle permutation: an
// ARX-based cryptographic permutation built from Alzette boxes and a
// linear diffusion layer.
//
// The state is sixteen 32-bit words forming eight branches of an (x, y)
// word pair each. Every step applies a round constant, one Alzette box
// per branch, and a Feistel-style linear layer that mixes the left and
// right halves. Full diffusion is reached after a handful of steps.
package sparkle512

import "math/bits"

// Branches is the number of (x, y) branch pairs in the state.
const Branches = 8

// StateWords is the number of 32-bit words in the permutation state.
const StateWords = 2 * Branches

// RCON holds the eight Sparkle round constants, drawn from the binary
// expansion of e. They double as the per-branch Alzette constants.
var RCON = [Branches]uint32{
	0xB7E15162, 0xBF715880, 0x38B4DA56, 0x324E7738,
	0xBB1185EB, 0x4F7C7B57, 0xCFBFA1C8, 0xC2B3293D,
}

func rotr(x uint32, n int) uint32 {
	return bits.RotateLeft32(x, -n)
}

// ell is the linear diffusion function L(v) = rotr(v ^ (v << 16), 16).
func ell(x uint32) uint32 {
	return rotr(x^(x<<16), 16)
}

// alzette applies one Alzette ARX box to the branch (x, y) with the
// round constant rc. All additions are modulo 2^32.
func alzette(x, y, rc uint32) (uint32, uint32) {
	x += rotr(y, 31)
	y ^= rotr(x, 24)
	x ^= rc
	x += rotr(y, 17)
	y ^= rotr(x, 17)
	x ^= rc
	x += y
	y ^= rotr(x, 31)
	x ^= rc
	x += rotr(y, 24)
	y ^= rotr(x, 16)
	x ^= rc
	return x, y
}

// Permute runs steps rounds of the Sparkle512 permutation over state,
// in place. It is pure and cannot fail; callers choose steps once and
// reuse it for every call so that sequences stay reproducible.
func Permute(state *[StateWords]uint32, steps int) {
	for r := 0; r < steps; r++ {
		// Round constant addition.
		state[1] ^= RCON[r%Branches]
		state[3] ^= uint32(r)

		// ARX box layer, one Alzette box per branch.
		for j := 0; j < StateWords; j += 2 {
			state[j], state[j+1] = alzette(state[j], state[j+1], RCON[j>>1])
		}

		// Linear layer: diffuse the left-half lanes, then rotate the
		// branch halves Feistel-style.
		x0, y0 := state[0], state[1]
		tmpx, tmpy := x0, y0
		for j := 2; j < Branches; j += 2 {
			tmpx ^= state[j]
			tmpy ^= state[j+1]
		}
		tmpx = ell(tmpx)
		tmpy = ell(tmpy)
		for j := 2; j < Branches; j += 2 {
			state[j-2] = state[j+Branches] ^ state[j] ^ tmpy
			state[j+Branches] = state[j]
			state[j-1] = state[j+Branches+1] ^ state[j+1] ^ tmpx
			state[j+Branches+1] = state[j+1]
		}
		state[Branches-2] = state[Branches] ^ x0 ^ tmpy
		state[Branches] = x0
		state[Branches-1] = state[Branches+1] ^ y0 ^ tmpx
		state[Branches+1] = y0
	}
}
