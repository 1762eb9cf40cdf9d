package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerlin2LatticeIsZero(t *testing.T) {
	for x := -3; x <= 3; x++ {
		for y := -3; y <= 3; y++ {
			assert.Equal(t, float32(0), Perlin2(float32(x), float32(y)), "lattice point (%d, %d)", x, y)
		}
	}
}

func TestPerlin2Deterministic(t *testing.T) {
	samples := [][2]float32{{0.5, 0.5}, {1.25, 7.75}, {-3.3, 2.1}, {100.01, -42.42}}
	for _, s := range samples {
		a := Perlin2(s[0], s[1])
		b := Perlin2(s[0], s[1])
		assert.Equal(t, a, b)
	}
}

func TestPerlin2Range(t *testing.T) {
	var nonZero int
	for i := 0; i < 200; i++ {
		for j := 0; j < 200; j++ {
			n := Perlin2(float32(i)*0.173, float32(j)*0.131)
			assert.GreaterOrEqual(t, n, float32(-1.1))
			assert.LessOrEqual(t, n, float32(1.1))
			if n != 0 {
				nonZero++
			}
		}
	}
	assert.Greater(t, nonZero, 0, "noise should vary off the lattice")
}

func TestPerlin01Range(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := Perlin01(float32(i)*0.37, float32(i)*0.11)
		assert.GreaterOrEqual(t, n, float32(0))
		assert.LessOrEqual(t, n, float32(1))
	}
	assert.Equal(t, float32(0.5), Perlin01(2, 3))
}
