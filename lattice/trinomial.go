package lattice

import "math"

// branching records, for every node at one step, the middle node it branches
// to and the down/middle/up probabilities.
type branching struct {
	k     []int
	probs [3][]float64
	kMin  int
	kMax  int
}

func newBranching() *branching {
	return &branching{kMin: math.MaxInt, kMax: math.MinInt}
}

func (b *branching) add(k int, p1, p2, p3 float64) {
	b.k = append(b.k, k)
	b.probs[0] = append(b.probs[0], p1)
	b.probs[1] = append(b.probs[1], p2)
	b.probs[2] = append(b.probs[2], p3)
	if k < b.kMin {
		b.kMin = k
	}
	if k > b.kMax {
		b.kMax = k
	}
}

func (b *branching) jMin() int { return b.kMin - 1 }
func (b *branching) jMax() int { return b.kMax + 1 }
func (b *branching) size() int { return b.jMax() - b.jMin() + 1 }

func (b *branching) descendant(index, branch int) int {
	return b.k[index] - b.kMin + branch
}

// TrinomialTree is a recombining tree for a one-dimensional process on a
// time grid. Node spacing at step i+1 is sqrt(3 v) where v is the process
// variance over step i; each node branches to the three nodes around its
// conditional mean.
type TrinomialTree struct {
	grid       *TimeGrid
	x0         float64
	dx         []float64
	branchings []*branching
}

// NewTrinomialTree builds the tree for process over grid.
func NewTrinomialTree(process Process1D, grid *TimeGrid) *TrinomialTree {
	tree := &TrinomialTree{
		grid: grid,
		x0:   process.X0(),
		dx:   []float64{0},
	}
	sqrt3 := math.Sqrt(3)
	jMin, jMax := 0, 0
	for i := 0; i < grid.Size()-1; i++ {
		t := grid.At(i)
		dt := grid.Dt(i)

		v2 := process.Variance(t, 0, dt)
		v := math.Sqrt(v2)
		dx := v * sqrt3
		tree.dx = append(tree.dx, dx)

		b := newBranching()
		for j := jMin; j <= jMax; j++ {
			x := tree.x0 + float64(j)*tree.dx[i]
			m := process.Expectation(t, x, dt)
			k := int(math.Floor((m-tree.x0)/dx + 0.5))

			e := m - (tree.x0 + float64(k)*dx)
			e2 := e * e
			e3 := e * sqrt3
			p1 := (1 + e2/v2 - e3/v) / 6
			p2 := (2 - e2/v2) / 3
			p3 := (1 + e2/v2 + e3/v) / 6
			b.add(k, p1, p2, p3)
		}
		tree.branchings = append(tree.branchings, b)
		jMin, jMax = b.jMin(), b.jMax()
	}
	return tree
}

// Grid returns the time grid the tree was built on.
func (t *TrinomialTree) Grid() *TimeGrid { return t.grid }

// Columns is the number of time steps plus one.
func (t *TrinomialTree) Columns() int { return t.grid.Size() }

// Size is the number of nodes at step i.
func (t *TrinomialTree) Size(i int) int {
	if i == 0 {
		return 1
	}
	return t.branchings[i-1].size()
}

// Dx is the node spacing at step i.
func (t *TrinomialTree) Dx(i int) float64 { return t.dx[i] }

// Underlying is the process value at node index of step i.
func (t *TrinomialTree) Underlying(i, index int) float64 {
	if i == 0 {
		return t.x0
	}
	return t.x0 + float64(t.branchings[i-1].jMin()+index)*t.dx[i]
}

// Descendant is the node at step i+1 reached from node index by branch
// 0 (down), 1 (middle) or 2 (up).
func (t *TrinomialTree) Descendant(i, index, branch int) int {
	return t.branchings[i].descendant(index, branch)
}

// Probability of taking branch from node index at step i.
func (t *TrinomialTree) Probability(i, index, branch int) float64 {
	return t.branchings[i].probs[branch][index]
}
