// ABOUTME: Level curve mapping total XP to a level and in-level progress.
// ABOUTME: Per-level cost is a convex cubic so early levels come quickly.
package level

import (
	"errors"
	"fmt"
	"math"
)

// MaxLevel is the highest level the curve places a total on.
const MaxLevel = 10000

// MaxXP is the total that completes MaxLevel. Larger totals sit at the cap.
var MaxXP = CumulativeXPForLevel(MaxLevel)

// ErrXPOutOfRange is returned by CheckXP for totals the curve cannot place.
var ErrXPOutOfRange = errors.New("xp out of range")

// XPForLevel returns the XP needed to complete level n (n >= 1):
// 100 + 0.04k³ + 0.8k² + 2k + 0.5 where k = n-1.
func XPForLevel(n int) float64 {
	k := float64(n - 1)
	return 100 + 0.04*k*k*k + 0.8*k*k + 2*k + 0.5
}

// CumulativeXPForLevel returns the XP needed to complete levels 1..n.
func CumulativeXPForLevel(n int) float64 {
	total := 0.0
	for i := 1; i <= n; i++ {
		total += XPForLevel(i)
	}
	return total
}

// Progress is a position on the level curve.
type Progress struct {
	Level int `json:"level"`
	// XPInLevel is how far into the current level the total reaches.
	XPInLevel float64 `json:"xp_in_level"`
	// LevelWidth is the full cost of the current level, the denominator of a
	// progress bar. It is not the cost of the next level.
	LevelWidth float64 `json:"level_width"`
}

// Fraction returns XPInLevel/LevelWidth in [0, 1). It is 1 only at MaxLevel
// once MaxXP is reached.
func (p Progress) Fraction() float64 {
	if p.LevelWidth <= 0 {
		return 0
	}
	return p.XPInLevel / p.LevelWidth
}

// Remaining returns the XP still needed to finish the current level.
func (p Progress) Remaining() float64 {
	return p.LevelWidth - p.XPInLevel
}

// CheckXP reports whether total is a finite XP between 0 and MaxXP.
func CheckXP(total float64) error {
	if math.IsNaN(total) || math.IsInf(total, 0) || total < 0 || total > MaxXP {
		return fmt.Errorf("%w: must be between 0 and %.0f", ErrXPOutOfRange, MaxXP)
	}
	return nil
}

// FromXP places a total XP on the curve. Level 1 is the floor; negative or
// NaN totals are treated as zero. Totals at or past MaxXP, +Inf included,
// report a full MaxLevel.
func FromXP(total float64) Progress {
	if total < 0 || math.IsNaN(total) {
		total = 0
	}
	if total >= MaxXP {
		top := XPForLevel(MaxLevel)
		return Progress{Level: MaxLevel, XPInLevel: top, LevelWidth: top}
	}
	lvl := 1
	accumulated := 0.0
	for lvl < MaxLevel && accumulated+XPForLevel(lvl) <= total {
		accumulated += XPForLevel(lvl)
		lvl++
	}
	return Progress{
		Level:      lvl,
		XPInLevel:  total - accumulated,
		LevelWidth: XPForLevel(lvl),
	}
}
