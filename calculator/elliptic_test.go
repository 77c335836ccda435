package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 算术几何平均法计算 K(m), E(m) 作为参考值
func agmReference(m float64) (k, e float64) {
	a, b := 1.0, math.Sqrt(1-m)
	c := math.Sqrt(m)
	sum := 0.5 * c * c
	pow := 0.5
	for i := 0; i < 30; i++ {
		an, bn := (a+b)/2, math.Sqrt(a*b)
		c = (a - b) / 2
		pow *= 2
		sum += pow * c * c
		a, b = an, bn
	}
	k = math.Pi / (2 * a)
	return k, k * (1 - sum)
}

func TestCompleteEllipticIntegrals_Zero(t *testing.T) {
	k, e, err := CompleteEllipticIntegrals(0)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, k, 2e-8)
	assert.InDelta(t, math.Pi/2, e, 2e-8)
}

func TestCompleteEllipticIntegrals_One(t *testing.T) {
	k, e, err := CompleteEllipticIntegrals(1)
	require.NoError(t, err)
	assert.Equal(t, math.MaxFloat64, k)
	assert.Equal(t, 1.0, e)
}

func TestCompleteEllipticIntegrals_WithinEpsilonOfOne(t *testing.T) {
	for _, m := range []float64{math.Nextafter(1, 0), 1 - epsilon/2} {
		k, e, err := CompleteEllipticIntegrals(m)
		require.NoError(t, err, "m = %v", m)
		assert.Equal(t, math.MaxFloat64, k, "m = %v", m)
		assert.Equal(t, 1.0, e, "m = %v", m)
	}
}

// 1 - m 不小于 epsilon 时走多项式, K 有限
func TestCompleteEllipticIntegrals_NearOne(t *testing.T) {
	for _, m := range []float64{1 - epsilon, 1 - 4*epsilon, 1 - 1e-12} {
		k, e, err := CompleteEllipticIntegrals(m)
		require.NoError(t, err, "m = %v", m)
		assert.False(t, math.IsInf(k, 0), "m = %v", m)
		assert.Less(t, k, math.MaxFloat64, "m = %v", m)
		assert.Greater(t, k, 10.0, "m = %v", m)
		assert.InDelta(t, 1.0, e, 1e-6, "m = %v", m)
	}
}

func TestCompleteEllipticIntegrals_InvalidArgument(t *testing.T) {
	for _, m := range []float64{-0.0001, 1.0001, -1, 2, math.NaN(), math.Inf(1)} {
		_, _, err := CompleteEllipticIntegrals(m)
		assert.ErrorIs(t, err, ErrInvalidArgument, "m = %v", m)
	}
}

func TestCompleteEllipticIntegrals_Accuracy(t *testing.T) {
	for i := 0; i <= 99; i++ {
		m := float64(i) / 100
		k, e, err := CompleteEllipticIntegrals(m)
		require.NoError(t, err)
		wantK, wantE := agmReference(m)
		assert.InDelta(t, wantK, k, 2e-8, "K(%v)", m)
		assert.InDelta(t, wantE, e, 2e-8, "E(%v)", m)
	}
}

func TestCompleteEllipticIntegrals_Monotonic(t *testing.T) {
	prevK, prevE, err := CompleteEllipticIntegrals(0)
	require.NoError(t, err)
	for i := 1; i < 1000; i++ {
		m := float64(i) / 1000
		k, e, err := CompleteEllipticIntegrals(m)
		require.NoError(t, err)

		assert.False(t, math.IsInf(k, 0) || math.IsNaN(k), "K(%v) = %v", m, k)
		assert.False(t, math.IsInf(e, 0) || math.IsNaN(e), "E(%v) = %v", m, e)
		assert.Positive(t, k)
		assert.Positive(t, e)
		assert.GreaterOrEqual(t, k, prevK, "K not non-decreasing at m = %v", m)
		assert.LessOrEqual(t, e, prevE, "E not non-increasing at m = %v", m)
		prevK, prevE = k, e
	}
}

func BenchmarkCompleteEllipticIntegrals(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _, _ = CompleteEllipticIntegrals(0.5)
	}
}
