package lattice

import "math"

// Adjuster supplies the asset-specific behaviour of a DiscretizedAsset.
// PreAdjust runs before PostAdjust at the same node; both run at most once
// per time even when the asset is rolled back in several legs.
type Adjuster interface {
	Reset(size int) []float64
	MandatoryTimes() []float64
	PreAdjust(a *DiscretizedAsset)
	PostAdjust(a *DiscretizedAsset)
}

// DiscretizedAsset holds the values of an instrument on the nodes of one
// tree step while it is rolled back.
type DiscretizedAsset struct {
	impl    Adjuster
	lattice *ShortRateTree
	time    float64
	values  []float64

	latestPre  float64
	latestPost float64
}

// NewDiscretizedAsset wraps impl.
func NewDiscretizedAsset(impl Adjuster) *DiscretizedAsset {
	return &DiscretizedAsset{
		impl:       impl,
		latestPre:  math.MaxFloat64,
		latestPost: math.MaxFloat64,
	}
}

func (a *DiscretizedAsset) Time() float64 { return a.time }

// Values are the node values at the current time; callers may modify them
// in place during adjustments.
func (a *DiscretizedAsset) Values() []float64 { return a.values }

func (a *DiscretizedAsset) MandatoryTimes() []float64 { return a.impl.MandatoryTimes() }

func (a *DiscretizedAsset) reset(size int) {
	a.values = a.impl.Reset(size)
	a.AdjustValues()
}

// PreAdjustValues runs the pre-adjustment unless it already ran at this time.
func (a *DiscretizedAsset) PreAdjustValues() {
	if !closeEnough(a.time, a.latestPre) {
		a.impl.PreAdjust(a)
		a.latestPre = a.time
	}
}

// PostAdjustValues runs the post-adjustment unless it already ran at this time.
func (a *DiscretizedAsset) PostAdjustValues() {
	if !closeEnough(a.time, a.latestPost) {
		a.impl.PostAdjust(a)
		a.latestPost = a.time
	}
}

// AdjustValues applies both adjustments in order.
func (a *DiscretizedAsset) AdjustValues() {
	a.PreAdjustValues()
	a.PostAdjustValues()
}

// IsOnTime reports whether the asset currently sits at the grid node for t.
func (a *DiscretizedAsset) IsOnTime(t float64) bool {
	grid := a.lattice.Grid()
	return closeEnough(grid.At(grid.ClosestIndex(t)), a.time)
}

// Rollback rolls the asset back to time to on its lattice.
func (a *DiscretizedAsset) Rollback(to float64) error {
	return a.lattice.Rollback(a, to)
}

// PartialRollback rolls back without the final adjustment.
func (a *DiscretizedAsset) PartialRollback(to float64) error {
	return a.lattice.PartialRollback(a, to)
}

// PresentValue is the value of the asset today.
func (a *DiscretizedAsset) PresentValue() (float64, error) {
	return a.lattice.PresentValue(a)
}
