package dice

// PRNG is a small linear congruential generator used where results must be
// bit-identical for a given seed across runs and platforms. math/rand makes
// no such promise between Go releases, so simulation paths use this instead.
//
// The multiplier and increment are Knuth's MMIX constants; the high 31 bits
// of the state are returned to avoid the weak low bits of an LCG.
type PRNG struct {
	state uint64
}

// NewPRNG creates a generator from a seed. Any seed is valid, including zero.
func NewPRNG(seed int64) *PRNG {
	return &PRNG{state: uint64(seed)}
}

// NewBatchPRNG creates a generator for one batch of a partitioned run. Each
// batch index offsets the seed by a fixed odd stride (the splitmix64
// increment), which keeps batch streams far apart while leaving the whole
// run a pure function of the master seed.
func NewBatchPRNG(seed int64, batch int) *PRNG {
	return &PRNG{state: uint64(seed) + uint64(batch)*0x9E3779B97F4A7C15}
}

// Uint64 advances the generator and returns the next value.
func (p *PRNG) Uint64() uint64 {
	p.state = p.state*6364136223846793005 + 1442695040888963407
	return p.state >> 33
}

// Roll returns a die face in [1, sides]. The modulo bias is immaterial for
// die sizes this small against a 31-bit output.
func (p *PRNG) Roll(sides int) int {
	return int(p.Uint64()%uint64(sides)) + 1
}
