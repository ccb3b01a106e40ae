package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactkeval/option-pricer/internal/pricing"
)

func TestAxisValues(t *testing.T) {
	v, err := Axis{Min: 80, Max: 120, Count: 5}.Values()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{80, 90, 100, 110, 120}, v, 1e-9)
}

func TestAxisSinglePoint(t *testing.T) {
	v, err := Axis{Min: 0.3, Max: 0.5, Count: 1}.Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{0.3}, v)
}

func TestAxisDefaultCount(t *testing.T) {
	v, err := Axis{Min: 1, Max: 2}.Values()
	require.NoError(t, err)
	assert.Len(t, v, DefaultCount)
	assert.InDelta(t, 1.0, v[0], 1e-12)
	assert.InDelta(t, 2.0, v[DefaultCount-1], 1e-12)
}

func TestAxisValidate(t *testing.T) {
	assert.ErrorIs(t, Axis{Min: 2, Max: 1, Count: 3}.Validate(), pricing.ErrInvalidParameters)
	assert.Error(t, Axis{Min: 1, Max: 2, Count: -1}.Validate())
	assert.NoError(t, Axis{Min: 1, Max: 1, Count: 4}.Validate())
}

func TestDefaultAxes(t *testing.T) {
	s := DefaultSpotAxis(100)
	assert.InDelta(t, 80, s.Min, 1e-12)
	assert.InDelta(t, 120, s.Max, 1e-12)
	assert.Equal(t, DefaultCount, s.Count)

	v := DefaultVolAxis(0.2)
	assert.InDelta(t, 0.1, v.Min, 1e-12)
	assert.InDelta(t, 0.3, v.Max, 1e-12)

	clamped := DefaultVolAxis(0.9)
	assert.Equal(t, MaxSweepVolatility, clamped.Max)

	tiny := DefaultVolAxis(0)
	assert.Equal(t, MinSweepVolatility, tiny.Min)
	assert.Equal(t, MinSweepVolatility, tiny.Max)
}
