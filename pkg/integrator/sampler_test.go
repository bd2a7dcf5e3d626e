package integrator

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// TestSampler provides predetermined values for testing
type TestSampler struct {
	values1D []float64
	values2D []core.Vec2
	values3D []core.Vec3
	index1D  int
	index2D  int
	index3D  int
}

// NewTestSampler creates a sampler with predetermined values for each dimension
func NewTestSampler(values1D []float64, values2D []core.Vec2, values3D []core.Vec3) *TestSampler {
	return &TestSampler{
		values1D: values1D,
		values2D: values2D,
		values3D: values3D,
	}
}

// Get1D returns the next predetermined 1D value
func (t *TestSampler) Get1D() float64 {
	if t.index1D >= len(t.values1D) {
		panic("TestSampler ran out of 1D values")
	}
	val := t.values1D[t.index1D]
	t.index1D++
	return val
}

// Get2D returns the next predetermined 2D value
func (t *TestSampler) Get2D() core.Vec2 {
	if t.index2D >= len(t.values2D) {
		panic("TestSampler ran out of 2D values")
	}
	val := t.values2D[t.index2D]
	t.index2D++
	return val
}

// Get3D returns the next predetermined 3D value
func (t *TestSampler) Get3D() core.Vec3 {
	if t.index3D >= len(t.values3D) {
		panic("TestSampler ran out of 3D values")
	}
	val := t.values3D[t.index3D]
	t.index3D++
	return val
}
