package rockcoast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTideLevelsCoverTwoSemidiurnalCycles(t *testing.T) {
	levels := TideLevels(2, 1)
	require.Len(t, levels, 24)
	assert.InDelta(t, 0, levels[0], 1e-12)
	assert.InDelta(t, 1, levels[3], 1e-12, "high tide a quarter period in")
	assert.InDelta(t, -1, levels[9], 1e-12, "low tide three quarters in")
	assert.InDelta(t, 1, levels[15], 1e-12, "second high tide")
	for _, l := range levels {
		assert.LessOrEqual(t, l, 1+1e-12)
		assert.GreaterOrEqual(t, l, -1-1e-12)
	}
}

func TestTideLevelsNeverEmpty(t *testing.T) {
	assert.Len(t, TideLevels(2, 24), 1)
	assert.Len(t, TideLevels(2, 0), 24)
	assert.Len(t, TideLevels(2, 5), 5)
	assert.Len(t, TideLevels(2, 0.25), 96)
}
