package lattice

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/meenmo/qldemo/config"
)

var (
	// ErrTimeNotOnGrid is returned when a time does not coincide with a grid node.
	ErrTimeNotOnGrid = errors.New("time not on grid")
	// ErrInvalidGrid is returned for empty or negative mandatory times.
	ErrInvalidGrid = errors.New("invalid time grid")
)

// Epsilon is the machine epsilon for float64.
var Epsilon = math.Nextafter(1, 2) - 1

// CloseEnough reports whether x and y agree to within n epsilons relative to
// either operand. When one of them is zero the square of the tolerance is
// used as an absolute bound.
func CloseEnough(x, y float64, n int) bool {
	if x == y {
		return true
	}
	diff := math.Abs(x - y)
	tol := float64(n) * Epsilon
	if x == 0 || y == 0 {
		return diff < tol*tol
	}
	return diff <= tol*math.Abs(x) || diff <= tol*math.Abs(y)
}

func closeEnough(x, y float64) bool {
	return CloseEnough(x, y, int(config.GetConfig().CloseEnoughULPs))
}

// TimeGrid is an increasing set of times starting at zero that contains
// every mandatory time.
type TimeGrid struct {
	times     []float64
	mandatory []float64
}

// NewTimeGrid places steps regular steps between 0 and the last mandatory
// time, adjusted so that every mandatory time falls on a node. Each interval
// between consecutive mandatory times gets at least one step.
func NewTimeGrid(mandatory []float64, steps int) (*TimeGrid, error) {
	if len(mandatory) == 0 {
		return nil, fmt.Errorf("NewTimeGrid: no mandatory times: %w", ErrInvalidGrid)
	}
	if steps <= 0 {
		return nil, fmt.Errorf("NewTimeGrid: steps must be positive, got %d: %w", steps, ErrInvalidGrid)
	}

	sorted := append([]float64(nil), mandatory...)
	sort.Float64s(sorted)
	if sorted[0] < 0 {
		return nil, fmt.Errorf("NewTimeGrid: negative time %g: %w", sorted[0], ErrInvalidGrid)
	}
	unique := sorted[:1]
	for _, t := range sorted[1:] {
		if !closeEnough(t, unique[len(unique)-1]) {
			unique = append(unique, t)
		}
	}

	last := unique[len(unique)-1]
	if last <= 0 {
		return nil, fmt.Errorf("NewTimeGrid: last time must be positive: %w", ErrInvalidGrid)
	}
	dtMax := last / float64(steps)

	times := []float64{0}
	begin := 0.0
	for _, end := range unique {
		if end != 0 {
			n := int((end-begin)/dtMax + 0.5)
			if n < 1 {
				n = 1
			}
			dt := (end - begin) / float64(n)
			for i := 1; i <= n; i++ {
				times = append(times, begin+float64(i)*dt)
			}
		}
		begin = end
	}
	return &TimeGrid{times: times, mandatory: unique}, nil
}

// Size is the number of nodes.
func (g *TimeGrid) Size() int { return len(g.times) }

// At returns the i-th time.
func (g *TimeGrid) At(i int) float64 { return g.times[i] }

// Times returns a copy of the node times.
func (g *TimeGrid) Times() []float64 { return append([]float64(nil), g.times...) }

// MandatoryTimes returns the de-duplicated mandatory times.
func (g *TimeGrid) MandatoryTimes() []float64 { return append([]float64(nil), g.mandatory...) }

// Back returns the last time.
func (g *TimeGrid) Back() float64 { return g.times[len(g.times)-1] }

// Dt is the length of step i, from node i to node i+1.
func (g *TimeGrid) Dt(i int) float64 { return g.times[i+1] - g.times[i] }

// ClosestIndex returns the node nearest to t.
func (g *TimeGrid) ClosestIndex(t float64) int {
	j := sort.SearchFloat64s(g.times, t)
	switch {
	case j == 0:
		return 0
	case j == len(g.times):
		return len(g.times) - 1
	}
	if t-g.times[j-1] < g.times[j]-t {
		return j - 1
	}
	return j
}

// Index returns the node equal to t within tolerance.
func (g *TimeGrid) Index(t float64) (int, error) {
	i := g.ClosestIndex(t)
	if !closeEnough(t, g.times[i]) {
		return 0, fmt.Errorf("TimeGrid.Index: %g (closest %g): %w", t, g.times[i], ErrTimeNotOnGrid)
	}
	return i, nil
}
