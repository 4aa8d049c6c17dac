package core

// DefaultSeed is used when a caller supplies a zero seed.
const DefaultSeed uint32 = 12345

// LCG is the seeded linear-congruential generator behind every procedural
// decision in the games. Its whole state is the 32-bit seed, so copying an
// LCG value forks the sequence.
type LCG struct {
	Seed uint32 `json:"seed"`
}

// NewLCG returns a generator positioned at the given seed.
func NewLCG(seed uint32) LCG {
	return LCG{Seed: seed}
}

// Draw advances the generator and returns 15 bits of output.
func (r *LCG) Draw() uint32 {
	r.Seed = r.Seed*1103515245 + 12345
	return (r.Seed >> 16) & 0x7FFF
}

// Range maps one draw onto [min, max) in steps of 1/1000.
func (r *LCG) Range(min, max float64) float64 {
	f := float64(r.Draw()%1000) / 1000
	return min + f*(max-min)
}

// SeedFrom folds a 64-bit runtime seed into the generator's 32-bit space.
// Zero maps to DefaultSeed.
func SeedFrom(v int64) uint32 {
	u := uint64(v)
	s := uint32(u) ^ uint32(u>>32)
	if s == 0 {
		return DefaultSeed
	}
	return s
}
