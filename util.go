package main

import (
	"crypto/rand"
	"encoding/hex"
	"math"
	"math/big"
	"sync/atomic"
)

// Room codes avoid visually ambiguous characters (no I, O, 0, 1).
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRoomCode returns a random 6-character room code.
func GenerateRoomCode() string {
	b := make([]byte, 6)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range b {
		idx, _ := rand.Int(rand.Reader, max)
		b[i] = codeAlphabet[idx.Int64()]
	}
	return string(b)
}

// GenerateID returns a random hex string of the given byte length
func GenerateID(byteLen int) string {
	b := make([]byte, byteLen)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Clamp restricts v to [min, max]
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Distance returns the distance between two points
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// Normalize scales (x, y) to unit length; zero vectors stay zero.
func Normalize(x, y float64) (float64, float64) {
	l := math.Sqrt(x*x + y*y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}

// randFloat returns a random float64 in [0, 1).
// Simple xorshift, seeded from crypto/rand and stepped with a CAS loop so
// every room's tick goroutine can share it. Fast enough for gameplay use.
var randSrc atomic.Uint64

func randFloat() float64 {
	for {
		old := randSrc.Load()
		x := old
		x ^= x << 13
		x ^= x >> 7
		x ^= x << 17
		if x == 0 {
			x = 1
		}
		if randSrc.CompareAndSwap(old, x) {
			return float64(x%10000) / 10000.0
		}
	}
}

// randRange returns a random float64 in [lo, hi).
func randRange(lo, hi float64) float64 {
	return lo + randFloat()*(hi-lo)
}

func init() {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	var seed uint64
	for i, v := range b {
		seed |= uint64(v) << (uint(i) * 8)
	}
	if seed == 0 {
		seed = 1
	}
	randSrc.Store(seed)
}
