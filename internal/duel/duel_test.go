package duel

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChance(t *testing.T) {
	t.Run("even skills leave the base chance untouched", func(t *testing.T) {
		assert.InDelta(t, 0.5, Chance(50, 50, 0.5, 0), 1e-9)
	})

	t.Run("skill advantage shifts by one two-hundredth per point", func(t *testing.T) {
		assert.InDelta(t, 0.6, Chance(70, 50, 0.5, 0), 1e-9)
		assert.InDelta(t, 0.4, Chance(50, 70, 0.5, 0), 1e-9)
	})

	t.Run("fatigue modifier applies after the differential", func(t *testing.T) {
		assert.InDelta(t, 0.45, Chance(50, 50, 0.5, -0.05), 1e-9)
	})

	t.Run("chance is clamped to the 5-95 band", func(t *testing.T) {
		assert.Equal(t, 0.95, Chance(99, 0, 0.9, 0.3))
		assert.Equal(t, 0.05, Chance(0, 99, 0.1, -0.3))
	})
}

func TestResolve(t *testing.T) {
	t.Run("draw below the chance succeeds", func(t *testing.T) {
		r := NewResolver(NewMock([]float64{0.49}, nil))
		assert.True(t, r.Resolve(50, 50, 0.5, 0))
	})

	t.Run("draw at or above the chance fails", func(t *testing.T) {
		r := NewResolver(NewMock([]float64{0.51}, nil))
		assert.False(t, r.Resolve(50, 50, 0.5, 0))
	})

	t.Run("empirical frequency converges on the computed chance", func(t *testing.T) {
		// Seeded only to keep this statistical check stable in CI.
		r := NewResolver(rand.New(rand.NewSource(1)))
		const trials = 100000
		want := Chance(70, 55, 0.45, -0.02)
		hits := 0
		for i := 0; i < trials; i++ {
			if r.Resolve(70, 55, 0.45, -0.02) {
				hits++
			}
		}
		got := float64(hits) / trials
		assert.LessOrEqual(t, math.Abs(got-want), 0.01, "empirical %v vs expected %v", got, want)
	})
}

func TestShotXG(t *testing.T) {
	t.Run("big chance roll yields the elevated xG", func(t *testing.T) {
		r := NewResolver(NewMock([]float64{0.1}, nil))
		xg, big := r.ShotXG()
		assert.True(t, big)
		assert.Equal(t, XGBigChance, xg)
	})

	t.Run("regular shot yields the baseline xG", func(t *testing.T) {
		r := NewResolver(NewMock([]float64{0.9}, nil))
		xg, big := r.ShotXG()
		assert.False(t, big)
		assert.Equal(t, XGBaseline, xg)
	})
}

func TestMockSourceExhaustion(t *testing.T) {
	m := NewMock([]float64{0.5}, []int{3})
	m.Float64()
	m.Intn(10)
	assert.Equal(t, 0.0, m.Float64(), "exhausted float script returns zero")
	assert.Equal(t, 0, m.Intn(10), "exhausted int script returns zero")

	capped := NewMock(nil, []int{5})
	assert.Equal(t, 1, capped.Intn(2), "scripted value is capped below n")
}
