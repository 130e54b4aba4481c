package commission

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	calc, err := NewCalculator(decimal.Zero)
	require.NoError(t, err)

	t.Run("Default Rate", func(t *testing.T) {
		split, err := calc.Compute(1000)
		require.NoError(t, err)
		assert.Equal(t, int64(40), split.Commission)
		assert.Equal(t, int64(960), split.NetAmount)
	})

	t.Run("Property Sale", func(t *testing.T) {
		split, err := calc.Compute(50000)
		require.NoError(t, err)
		assert.Equal(t, Split{Commission: 2000, NetAmount: 48000}, split)
	})

	t.Run("Rounds Half Away From Zero", func(t *testing.T) {
		// 4% of 1237 is 49.48, 4% of 1238 is 49.52, 4% of 12375 is 495
		cases := map[int64]int64{1237: 49, 1238: 50, 12375: 495, 25: 1, 12: 0}
		for gross, want := range cases {
			split, err := calc.Compute(gross)
			require.NoError(t, err)
			assert.Equal(t, want, split.Commission, "gross %d", gross)
			assert.Equal(t, gross, split.Commission+split.NetAmount)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		first, err := calc.Compute(987654321)
		require.NoError(t, err)
		for i := 0; i < 100; i++ {
			again, err := calc.Compute(987654321)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})

	t.Run("Zero", func(t *testing.T) {
		split, err := calc.Compute(0)
		require.NoError(t, err)
		assert.Equal(t, Split{}, split)
	})

	t.Run("Negative", func(t *testing.T) {
		_, err := calc.Compute(-1)
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})
}

func TestNewCalculator(t *testing.T) {
	t.Run("Custom Rate", func(t *testing.T) {
		calc, err := NewCalculator(decimal.RequireFromString("0.025"))
		require.NoError(t, err)
		split, err := calc.Compute(1000)
		require.NoError(t, err)
		assert.Equal(t, int64(25), split.Commission)
	})

	t.Run("Rejects Rate Of One", func(t *testing.T) {
		_, err := NewCalculator(decimal.NewFromInt(1))
		assert.Error(t, err)
	})
}
