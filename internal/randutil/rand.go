// Package randutil centralises the random sources used for dealing and
// simulation.
//
// Shuffles that must be reproducible run on Mulberry32, a 32-bit generator
// small enough to reimplement in any language:
//
//	t += 0x6D2B79F5
//	r  = (t ^ t>>15) * (t | 1)
//	r ^= r + (r ^ r>>7) * (r | 61)
//	return r ^ r>>14
//
// All arithmetic is modulo 2^32. Everything else uses math/rand/v2 PCG.
package randutil

import (
	crand "crypto/rand"
	"encoding/binary"
	rand "math/rand/v2"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
	mulberryStep  = 0x6D2B79F5
)

// Mulberry32 is a deterministic 32-bit generator. The zero value is seeded
// with 0.
type Mulberry32 struct {
	state uint32
}

// NewMulberry32 returns a generator seeded with seed.
func NewMulberry32(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Uint32 returns the next value of the sequence.
func (m *Mulberry32) Uint32() uint32 {
	m.state += mulberryStep
	t := m.state
	r := (t ^ t>>15) * (t | 1)
	r ^= r + (r^r>>7)*(r|61)
	return r ^ r>>14
}

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Monte Carlo workers derive their generators through here so runs are
// reproducible given the parent seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Entropy returns a *rand.Rand seeded from the operating system.
func Entropy() *rand.Rand {
	var buf [16]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// crypto/rand does not fail on supported platforms
		panic("randutil: reading entropy: " + err.Error())
	}
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(buf[:8]), binary.LittleEndian.Uint64(buf[8:])))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
