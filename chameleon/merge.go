package chameleon

import (
	"math"
	"slices"

	"go.uber.org/zap"
)

// SingletonPolicy decides how the merger treats clusters with a single
// member, whose internal connectivity is undefined.
type SingletonPolicy string

const (
	// SingletonReject fails the merge phase with ErrSingletonCluster.
	SingletonReject SingletonPolicy = "reject"
	// SingletonLink uses the pair's own inter-cluster connectivity in place
	// of a missing EC, so two singletons score exactly 1.
	SingletonLink SingletonPolicy = "link"
)

// Connection holds the terms of a merge score between two clusters.
type Connection struct {
	// Link is EC(A,B): the weakest dense-graph weight between the clusters.
	Link float64
	// RI is the relative interconnectivity 2·EC(A,B) / (EC(A) + EC(B)).
	RI float64
	// RC is the relative closeness
	// EC(A,B)·(|A|+|B|) / (|B|·EC(A) + |A|·EC(B)).
	RC float64
	// Score is RI·RC.
	Score float64
}

// Connect computes the merge score terms of a and b from the dense graph.
func Connect(a, b *Cluster, g *Graph, policy SingletonPolicy) (Connection, error) {
	return connect(a, b, g.minCrossWeight(a.points, b.points), policy)
}

// Score returns RI(a,b)·RC(a,b). It is symmetric in a and b.
func Score(a, b *Cluster, g *Graph, policy SingletonPolicy) (float64, error) {
	conn, err := Connect(a, b, g, policy)
	if err != nil {
		return 0, err
	}
	return conn.Score, nil
}

func connect(a, b *Cluster, link float64, policy SingletonPolicy) (Connection, error) {
	ecA, ecB := a.ec, b.ec
	if !a.HasEC() || !b.HasEC() {
		if policy != SingletonLink {
			return Connection{}, &PhaseError{Phase: PhaseMerge, Points: singletonPoints(a, b), Err: ErrSingletonCluster}
		}
		if !a.HasEC() {
			ecA = link
		}
		if !b.HasEC() {
			ecB = link
		}
	}

	na, nb := float64(a.Len()), float64(b.Len())
	ri := 2 * link / (ecA + ecB)
	rc := link * (na + nb) / (nb*ecA + na*ecB)
	return Connection{Link: link, RI: ri, RC: rc, Score: ri * rc}, nil
}

func singletonPoints(a, b *Cluster) []int {
	var ids []int
	for _, c := range []*Cluster{a, b} {
		if c.Len() == 1 {
			ids = append(ids, c.points[0].Index)
		}
	}
	return ids
}

// MergeCluster returns the union of a and b with a's members first and a
// subgraph induced from g.
func MergeCluster(a, b *Cluster, g *Graph) *Cluster {
	return NewCluster(slices.Concat(a.points, b.points), g)
}

// candidate is the best pair found in a range of rows.
type candidate struct {
	i, j  int
	conn  Connection
	found bool
}

// better reports whether conn should replace the current best. NaN scores
// never win and earlier pairs win ties.
func (c *candidate) better(conn Connection) bool {
	if math.IsNaN(conn.Score) {
		return false
	}
	return !c.found || conn.Score > c.conn.Score
}

// linkage holds EC(A,B) for every pair of clusters in the current list.
type linkage [][]float64

func newLinkage(clusters []*Cluster, g *Graph, numWorkers int) linkage {
	c := len(clusters)
	link := make(linkage, c)
	for i := range link {
		link[i] = make([]float64, c)
	}
	// Worker owning row i writes (i, j) and (j, i) for j > i only.
	_ = forEachRowRange(c, numWorkers, func(_ int, r rowRange) error {
		for i := r.start; i < r.end; i++ {
			for j := i + 1; j < c; j++ {
				w := g.minCrossWeight(clusters[i].points, clusters[j].points)
				link[i][j], link[j][i] = w, w
			}
		}
		return nil
	})
	return link
}

// merged drops rows i and j and appends the row of their union. The weakest
// link from A∪B to C is the weaker of the links from A and from B.
func (l linkage) merged(i, j int) linkage {
	c := len(l)
	keep := make([]int, 0, c-2)
	for k := 0; k < c; k++ {
		if k != i && k != j {
			keep = append(keep, k)
		}
	}

	out := make(linkage, c-1)
	last := make([]float64, c-1)
	for a, ka := range keep {
		row := make([]float64, c-1)
		for b, kb := range keep {
			row[b] = l[ka][kb]
		}
		w := min(l[i][ka], l[j][ka])
		row[c-2] = w
		last[a] = w
		out[a] = row
	}
	out[c-2] = last
	return out
}

// bestPair scans pairs (i, j), i < j, in row-major order and returns the
// first pair with the highest score. RI and RC are symmetric, so this is the
// same pair an ordered scan over all (A, B) would find first. The result does
// not depend on numWorkers.
func bestPair(clusters []*Cluster, link linkage, policy SingletonPolicy, numWorkers int) (candidate, error) {
	c := len(clusters)
	ranges := splitRows(c, numWorkers)
	partial := make([]candidate, len(ranges))

	err := forEachRowRange(c, numWorkers, func(w int, r rowRange) error {
		best := candidate{}
		for i := r.start; i < r.end; i++ {
			for j := i + 1; j < c; j++ {
				conn, err := connect(clusters[i], clusters[j], link[i][j], policy)
				if err != nil {
					return err
				}
				if best.better(conn) {
					best = candidate{i: i, j: j, conn: conn, found: true}
				}
			}
		}
		partial[w] = best
		return nil
	})
	if err != nil {
		return candidate{}, err
	}

	best := candidate{}
	for _, p := range partial {
		if p.found && best.better(p.conn) {
			best = p
		}
	}
	return best, nil
}

// MergeUntil repeatedly merges the best-scoring pair of clusters until
// target clusters remain. The merged cluster is appended to the end of the
// list after both parents are removed. The input slice is not modified.
func MergeUntil(clusters []*Cluster, target int, g *Graph, cfg Config) ([]*Cluster, error) {
	applyDefaults(&cfg)
	if target < 1 {
		return nil, configError("merge target must be >= 1, got %d", target)
	}
	out := slices.Clone(clusters)
	if len(out) <= target {
		return out, nil
	}

	if cfg.Singletons != SingletonLink {
		for pos, c := range out {
			if c.Len() == 1 {
				return nil, &PhaseError{
					Phase:    PhaseMerge,
					Points:   c.Indices(),
					Clusters: []int{pos},
					Err:      ErrSingletonCluster,
				}
			}
		}
	}

	link := newLinkage(out, g, cfg.Workers)
	for len(out) > target {
		best, err := bestPair(out, link, cfg.Singletons, cfg.Workers)
		if err != nil {
			return nil, err
		}
		if !best.found {
			return nil, &PhaseError{Phase: PhaseMerge, Err: ErrNoMergeCandidate}
		}

		a, b := out[best.i], out[best.j]
		union := MergeCluster(a, b, g)
		out = slices.Delete(out, best.j, best.j+1)
		out = slices.Delete(out, best.i, best.i+1)
		out = append(out, union)
		link = link.merged(best.i, best.j)

		cfg.Logger.Debug("merge clusters",
			zap.Int("first", best.i),
			zap.Int("second", best.j),
			zap.String("first_name", a.Name()),
			zap.String("second_name", b.Name()),
			zap.Int("size", union.Len()),
			zap.Float64("ri", best.conn.RI),
			zap.Float64("rc", best.conn.RC),
			zap.Float64("score", best.conn.Score),
			zap.Int("clusters", len(out)),
		)
		cfg.step(PhaseMerge, len(out))
	}
	return out, nil
}
