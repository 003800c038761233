package chameleon

import (
	"errors"
	"slices"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// Axis is the coordinate a cluster is bisected along.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// SplitAxis returns the axis with the larger coordinate span among points.
// Equal spans choose AxisY.
func SplitAxis(points []Point) Axis {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	spanX := floats.Max(xs) - floats.Min(xs)
	spanY := floats.Max(ys) - floats.Min(ys)
	if spanX > spanY {
		return AxisX
	}
	return AxisY
}

// SplitCluster bisects c: members are stably sorted along SplitAxis and cut
// at len/2, so the first child gets the smaller half when the count is odd.
// Both children get freshly induced subgraphs from g.
func SplitCluster(c *Cluster, g *Graph) (first, second *Cluster, err error) {
	if c.Len() < 2 {
		return nil, nil, &PhaseError{Phase: PhaseSplit, Points: c.Indices(), Err: ErrSingletonCluster}
	}

	sorted := slices.Clone(c.points)
	if SplitAxis(sorted) == AxisX {
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })
	} else {
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y < sorted[j].Y })
	}

	mid := len(sorted) / 2
	return NewCluster(sorted[:mid], g), NewCluster(sorted[mid:], g), nil
}

// largestCluster returns the position of the cluster with the most members;
// the first one wins on ties.
func largestCluster(clusters []*Cluster) int {
	best := 0
	for i, c := range clusters {
		if c.Len() > clusters[best].Len() {
			best = i
		}
	}
	return best
}

// SplitUntil repeatedly bisects the largest cluster until there are target
// clusters. The parent is removed and its children are appended to the end. The input slice is
// not modified. target must not exceed the total number of points.
func SplitUntil(clusters []*Cluster, target int, g *Graph, cfg Config) ([]*Cluster, error) {
	applyDefaults(&cfg)
	total := 0
	for _, c := range clusters {
		total += c.Len()
	}
	if target > total {
		return nil, configError("split target %d exceeds point count %d", target, total)
	}

	out := slices.Clone(clusters)
	for len(out) < target {
		pos := largestCluster(out)
		parent := out[pos]
		first, second, err := SplitCluster(parent, g)
		if err != nil {
			var pe *PhaseError
			if errors.As(err, &pe) {
				pe.Clusters = []int{pos}
			}
			return nil, err
		}
		out = append(slices.Delete(out, pos, pos+1), first, second)

		cfg.Logger.Debug("split cluster",
			zap.Int("position", pos),
			zap.Int("size", parent.Len()),
			zap.String("axis", SplitAxis(parent.points).String()),
			zap.Int("first", first.Len()),
			zap.Int("second", second.Len()),
			zap.Int("clusters", len(out)),
		)
		cfg.step(PhaseSplit, len(out))
	}
	return out, nil
}
