// Package chameleon implements a Chameleon-style graph-based hierarchical
// clustering of geo-located points.
//
// Clustering runs in three phases. A dense similarity graph (weight =
// 1/distance) is built over all points and sparsified to a symmetric
// k-nearest-neighbor graph whose connected components become the seed
// clusters. The largest cluster is then bisected geometrically until
// Config.InitClusters is reached. Finally the pair of clusters with the best
// relative interconnectivity × relative closeness score is merged until
// Config.ResultClusters remain.
//
// Basic usage:
//
//	cfg := chameleon.DefaultConfig()
//	cfg.K = 10
//	cfg.InitClusters = 40
//	cfg.ResultClusters = 12
//	clusters, err := chameleon.Run(points, cfg)
//	// clusters[i].Points() are the members of cluster i
//	// clusters[i].Name() is the most frequent ground-truth label
//
// Every phase is deterministic for a given input order. Config.Workers only
// changes how the O(n²) scans are spread over goroutines, never the result.
//
// The individual phases are exported ([BuildGraph], [Sparsify],
// [ExtractComponents], [SplitUntil], [MergeUntil]) for callers that want to
// inspect intermediate state.
package chameleon
