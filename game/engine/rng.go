package engine

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// ResolveSeed returns seed, or a time-derived seed when seed is zero
func ResolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// NewRand creates a deterministic PCG source for the given seed
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// MaxCellValue bounds the magnitude of any cell value a range may produce
const MaxCellValue = 1_000_000

// ValueRange is an inclusive integer range
type ValueRange struct {
	Min int `json:"min" hcl:"min"`
	Max int `json:"max" hcl:"max"`
}

// Valid reports whether Min <= Max and both lie in [-MaxCellValue, MaxCellValue]
func (r ValueRange) Valid() bool {
	return r.Min <= r.Max && r.Min >= -MaxCellValue && r.Max <= MaxCellValue
}

func (r ValueRange) check(name string) error {
	if r.Min > r.Max {
		return fmt.Errorf("%w: %s min %d exceeds max %d", ErrInvalidConfig, name, r.Min, r.Max)
	}
	if !r.Valid() {
		return fmt.Errorf("%w: %s [%d,%d] exceeds the cell value limit of ±%d", ErrInvalidConfig, name, r.Min, r.Max, MaxCellValue)
	}
	return nil
}

// Contains reports whether v lies in [Min, Max]
func (r ValueRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Draw picks a uniformly random value in [Min, Max]
func (r ValueRange) Draw(rng *rand.Rand) int {
	return r.Min + rng.IntN(r.Max-r.Min+1)
}
