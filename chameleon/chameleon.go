package chameleon

import (
	"math"
	"runtime"

	"go.uber.org/zap"
)

// Config controls a clustering run.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// K is the number of nearest neighbors each point keeps in the sparse
	// graph. Larger values produce fewer, larger seed clusters.
	// Must satisfy 1 <= K < len(points). Default: 10.
	K int

	// InitClusters is the cluster count reached by splitting before the
	// merge phase starts. Must satisfy ResultClusters <= InitClusters <=
	// len(points). Default: 40.
	InitClusters int

	// ResultClusters is the number of clusters returned. Must be >= 1.
	// Default: 10.
	ResultClusters int

	// Metric is the pairwise distance. Default: HaversineMetric.
	Metric DistanceMetric

	// Singletons decides how one-point clusters are scored in the merge
	// phase. Default: SingletonReject.
	Singletons SingletonPolicy

	// Workers controls the number of goroutines for the O(n²) scans (graph
	// construction, sparsification, merge scoring). Results are identical for
	// every value. 0 means runtime.NumCPU(). Default: 0 (auto).
	Workers int

	// Logger receives phase summaries at Info and individual split and merge
	// decisions at Debug. nil disables logging.
	Logger *zap.Logger

	// OnStep, if set, is called after each phase completes and after every
	// split and merge with the current cluster count.
	OnStep func(Step)
}

// Step reports progress of a run.
type Step struct {
	Phase    Phase
	Clusters int
}

// DefaultConfig returns a Config with reasonable defaults for a few thousand
// points.
func DefaultConfig() Config {
	return Config{
		K:              10,
		InitClusters:   40,
		ResultClusters: 10,
		Metric:         HaversineMetric{},
		Singletons:     SingletonReject,
	}
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Metric == nil {
		cfg.Metric = HaversineMetric{}
	}
	if cfg.Singletons == "" {
		cfg.Singletons = SingletonReject
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

// validateConfig checks cfg against the number of points n.
func validateConfig(cfg *Config, n int) error {
	if n < 2 {
		return configError("need at least 2 points, got %d", n)
	}
	if cfg.K < 1 || cfg.K >= n {
		return configError("K must be in [1, %d), got %d", n, cfg.K)
	}
	if cfg.ResultClusters < 1 {
		return configError("ResultClusters must be >= 1, got %d", cfg.ResultClusters)
	}
	if cfg.InitClusters < cfg.ResultClusters {
		return configError("InitClusters (%d) must be >= ResultClusters (%d)", cfg.InitClusters, cfg.ResultClusters)
	}
	if cfg.InitClusters > n {
		return configError("InitClusters must be <= %d points, got %d", n, cfg.InitClusters)
	}
	switch cfg.Singletons {
	case "", SingletonReject, SingletonLink:
		// valid
	default:
		return configError("invalid Singletons policy %q", cfg.Singletons)
	}
	if cfg.Workers < 0 {
		return configError("Workers must be >= 0, got %d", cfg.Workers)
	}
	return nil
}

// validatePoints checks that indices match positions and coordinates are
// finite.
func validatePoints(points []Point) error {
	for i, p := range points {
		if p.Index != i {
			return configError("point at position %d has index %d", i, p.Index)
		}
		for _, v := range [...]float64{p.X, p.Y, p.Lat, p.Lng} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return configError("point %d has non-finite coordinates", i)
			}
		}
	}
	return nil
}

func (cfg *Config) step(phase Phase, clusters int) {
	if cfg.OnStep != nil {
		cfg.OnStep(Step{Phase: phase, Clusters: clusters})
	}
}

// Run clusters points and returns exactly cfg.ResultClusters clusters that
// together partition points. points[i].Index must equal i.
//
// Parameter errors wrap ErrInvalidConfig and are returned before any graph
// is built. Degenerate input (coincident points, singleton clusters in the
// merge phase) is reported as a *PhaseError.
func Run(points []Point, cfg Config) ([]*Cluster, error) {
	if err := validateConfig(&cfg, len(points)); err != nil {
		return nil, err
	}
	if err := validatePoints(points); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	log := cfg.Logger

	graph, err := BuildGraph(points, cfg.Metric, cfg.Workers)
	if err != nil {
		return nil, err
	}
	log.Info("built similarity graph", zap.Int("points", len(points)))
	cfg.step(PhaseGraph, 0)

	knn, err := Sparsify(graph, cfg.K, cfg.Workers)
	if err != nil {
		return nil, err
	}
	log.Info("sparsified graph", zap.Int("k", cfg.K))
	cfg.step(PhaseKNN, 0)

	clusters := ExtractComponents(knn, graph, points)
	seeds := len(clusters)
	log.Info("extracted seed clusters", zap.Int("seeds", seeds))
	cfg.step(PhaseComponents, seeds)

	clusters, err = SplitUntil(clusters, cfg.InitClusters, graph, cfg)
	if err != nil {
		return nil, err
	}
	log.Info("split phase complete",
		zap.Int("splits", max(0, len(clusters)-seeds)),
		zap.Int("clusters", len(clusters)),
	)

	before := len(clusters)
	clusters, err = MergeUntil(clusters, cfg.ResultClusters, graph, cfg)
	if err != nil {
		return nil, err
	}
	log.Info("merge phase complete",
		zap.Int("merges", before-len(clusters)),
		zap.Int("clusters", len(clusters)),
	)
	return clusters, nil
}
