package lattice_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/qldemo/lattice"
)

func TestCloseEnough(t *testing.T) {
	t.Parallel()

	assert.True(t, lattice.CloseEnough(1, 1, 42))
	assert.True(t, lattice.CloseEnough(1, 1+10*lattice.Epsilon, 42))
	assert.False(t, lattice.CloseEnough(1, 1+1e-12, 42))
	assert.True(t, lattice.CloseEnough(0, 1e-30, 42))
	assert.False(t, lattice.CloseEnough(0, 1e-20, 42))
}

func TestTimeGrid_MandatoryTimesOnNodes(t *testing.T) {
	t.Parallel()

	mandatory := []float64{1.0, 0.3, 1.0, 0.6, 0}
	grid, err := lattice.NewTimeGrid(mandatory, 10)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0.3, 0.6, 1.0}, grid.MandatoryTimes())
	assert.Equal(t, 0.0, grid.At(0))
	assert.InDelta(t, 1.0, grid.Back(), 1e-15)
	for _, m := range []float64{0.3, 0.6, 1.0} {
		_, err := grid.Index(m)
		require.NoError(t, err, "time %g", m)
	}

	// 0.3/0.1 -> 3 steps, 0.3/0.1 -> 3 steps, 0.4/0.1 -> 4 steps.
	assert.Equal(t, 1+3+3+4, grid.Size())
	for i := 0; i < grid.Size()-1; i++ {
		assert.Greater(t, grid.Dt(i), 0.0)
	}
}

func TestTimeGrid_AtLeastOneStepPerInterval(t *testing.T) {
	t.Parallel()

	grid, err := lattice.NewTimeGrid([]float64{0.001, 0.002, 10}, 2)
	require.NoError(t, err)
	_, err = grid.Index(0.001)
	require.NoError(t, err)
	_, err = grid.Index(0.002)
	require.NoError(t, err)
	assert.Equal(t, 1+1+1+2, grid.Size())
}

func TestTimeGrid_Index(t *testing.T) {
	t.Parallel()

	grid, err := lattice.NewTimeGrid([]float64{1}, 4)
	require.NoError(t, err)

	i, err := grid.Index(0.5)
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	_, err = grid.Index(0.6)
	require.ErrorIs(t, err, lattice.ErrTimeNotOnGrid)

	assert.Equal(t, 2, grid.ClosestIndex(0.6))
	assert.Equal(t, 3, grid.ClosestIndex(0.7))
	assert.Equal(t, 0, grid.ClosestIndex(-1))
	assert.Equal(t, 4, grid.ClosestIndex(5))
}

func TestTimeGrid_Invalid(t *testing.T) {
	t.Parallel()

	_, err := lattice.NewTimeGrid(nil, 10)
	require.ErrorIs(t, err, lattice.ErrInvalidGrid)
	_, err = lattice.NewTimeGrid([]float64{-1, 1}, 10)
	require.ErrorIs(t, err, lattice.ErrInvalidGrid)
	_, err = lattice.NewTimeGrid([]float64{1}, 0)
	require.ErrorIs(t, err, lattice.ErrInvalidGrid)
	_, err = lattice.NewTimeGrid([]float64{0}, 10)
	require.ErrorIs(t, err, lattice.ErrInvalidGrid)
}

func TestOrnsteinUhlenbeck(t *testing.T) {
	t.Parallel()

	p := lattice.OrnsteinUhlenbeck{Speed: 0.1, Vol: 0.02, Start: 0.01, Level: 0.05}
	assert.InDelta(t, 0.05+(0.03-0.05)*math.Exp(-0.05), p.Expectation(0, 0.03, 0.5), 1e-15)
	assert.InDelta(t, 0.5*0.0004/0.1*(1-math.Exp(-0.1)), p.Variance(0, 0, 0.5), 1e-18)

	brownian := lattice.OrnsteinUhlenbeck{Vol: 0.02}
	assert.InDelta(t, 0.0004*0.5, brownian.Variance(0, 0, 0.5), 1e-18)
	assert.InDelta(t, 0.3, brownian.Expectation(0, 0.3, 2), 1e-15)
}

func TestTrinomialTree_ProbabilitiesMatchMoments(t *testing.T) {
	t.Parallel()

	p := lattice.OrnsteinUhlenbeck{Speed: 0.1, Vol: 0.01}
	grid, err := lattice.NewTimeGrid([]float64{5}, 20)
	require.NoError(t, err)
	tree := lattice.NewTrinomialTree(p, grid)

	assert.Equal(t, 1, tree.Size(0))
	assert.Equal(t, 3, tree.Size(1))
	for i := 0; i < grid.Size()-1; i++ {
		dt := grid.Dt(i)
		for j := 0; j < tree.Size(i); j++ {
			x := tree.Underlying(i, j)
			var sum, mean, second float64
			for b := 0; b < 3; b++ {
				pr := tree.Probability(i, j, b)
				assert.GreaterOrEqual(t, pr, 0.0)
				y := tree.Underlying(i+1, tree.Descendant(i, j, b))
				sum += pr
				mean += pr * y
				second += pr * y * y
			}
			m := p.Expectation(grid.At(i), x, dt)
			assert.InDelta(t, 1, sum, 1e-12)
			assert.InDelta(t, m, mean, 1e-12)
			assert.InDelta(t, p.Variance(grid.At(i), x, dt), second-mean*mean, 1e-12)
		}
	}
}

func TestShortRateTree_ConstantRate(t *testing.T) {
	t.Parallel()

	const r = 0.04
	p := lattice.OrnsteinUhlenbeck{Speed: 0.05, Vol: 0.01}
	grid, err := lattice.NewTimeGrid([]float64{2}, 16)
	require.NoError(t, err)
	tree := lattice.NewShortRateTree(lattice.NewTrinomialTree(p, grid), func(int, float64, float64) float64 { return r })

	last := grid.Size() - 1
	total := 0.0
	for _, v := range tree.StatePrices(last) {
		total += v
	}
	assert.InDelta(t, math.Exp(-r*2), total, 1e-12)

	asset := lattice.NewDiscretizedAsset(&zeroBond{})
	require.NoError(t, tree.Initialize(asset, 2))
	require.NoError(t, asset.Rollback(0))
	pv, err := asset.PresentValue()
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-r*2), pv, 1e-12)
}

func TestShortRateTree_PresentValueConsistentAcrossSteps(t *testing.T) {
	t.Parallel()

	p := lattice.OrnsteinUhlenbeck{Speed: 0.1, Vol: 0.015, Start: 0.03}
	grid, err := lattice.NewTimeGrid([]float64{1, 3}, 30)
	require.NoError(t, err)
	tree := lattice.NewShortRateTree(lattice.NewTrinomialTree(p, grid), func(_ int, _, x float64) float64 { return x })

	asset := lattice.NewDiscretizedAsset(&zeroBond{})
	require.NoError(t, tree.Initialize(asset, 3))
	require.NoError(t, asset.PartialRollback(1))
	mid, err := asset.PresentValue()
	require.NoError(t, err)

	require.NoError(t, asset.Rollback(0))
	assert.InDelta(t, 0.0, asset.Time(), 0)
	pv, err := asset.PresentValue()
	require.NoError(t, err)
	assert.InDelta(t, mid, pv, 1e-12)
	assert.Len(t, asset.Values(), 1)
}

func TestDiscretizedAsset_AdjustmentsRunOncePerTime(t *testing.T) {
	t.Parallel()

	p := lattice.OrnsteinUhlenbeck{Speed: 0.1, Vol: 0.01}
	grid, err := lattice.NewTimeGrid([]float64{0.5, 1}, 4)
	require.NoError(t, err)
	tree := lattice.NewShortRateTree(lattice.NewTrinomialTree(p, grid), func(int, float64, float64) float64 { return 0 })

	impl := &couponBond{couponTime: 0.5, coupon: 2}
	asset := lattice.NewDiscretizedAsset(impl)
	require.NoError(t, tree.Initialize(asset, 1))
	require.NoError(t, asset.Rollback(0.5))
	// A second leg starting at the same time must not pay the coupon again.
	require.NoError(t, asset.Rollback(0.5))
	require.NoError(t, asset.Rollback(0))

	assert.Equal(t, 1, impl.paid)
	pv, err := asset.PresentValue()
	require.NoError(t, err)
	assert.InDelta(t, 102.0, pv, 1e-12)
}

func TestPartialRollback_Errors(t *testing.T) {
	t.Parallel()

	p := lattice.OrnsteinUhlenbeck{Speed: 0.1, Vol: 0.01}
	grid, err := lattice.NewTimeGrid([]float64{1}, 4)
	require.NoError(t, err)
	tree := lattice.NewShortRateTree(lattice.NewTrinomialTree(p, grid), func(int, float64, float64) float64 { return 0 })

	asset := lattice.NewDiscretizedAsset(&zeroBond{})
	require.ErrorIs(t, tree.Initialize(asset, 0.6), lattice.ErrTimeNotOnGrid)

	require.NoError(t, tree.Initialize(asset, 0.5))
	require.Error(t, asset.Rollback(1))
	require.ErrorIs(t, asset.Rollback(0.3), lattice.ErrTimeNotOnGrid)
}

type zeroBond struct{}

func (zeroBond) Reset(size int) []float64 {
	v := make([]float64, size)
	for i := range v {
		v[i] = 1
	}
	return v
}
func (zeroBond) MandatoryTimes() []float64            { return nil }
func (zeroBond) PreAdjust(*lattice.DiscretizedAsset)  {}
func (zeroBond) PostAdjust(*lattice.DiscretizedAsset) {}

type couponBond struct {
	couponTime float64
	coupon     float64
	paid       int
}

func (c *couponBond) Reset(size int) []float64 {
	v := make([]float64, size)
	for i := range v {
		v[i] = 100
	}
	return v
}
func (c *couponBond) MandatoryTimes() []float64           { return []float64{c.couponTime} }
func (c *couponBond) PreAdjust(*lattice.DiscretizedAsset) {}
func (c *couponBond) PostAdjust(a *lattice.DiscretizedAsset) {
	if !a.IsOnTime(c.couponTime) {
		return
	}
	c.paid++
	for i := range a.Values() {
		a.Values()[i] += c.coupon
	}
}
