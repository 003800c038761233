// Package report scores a clustering against the ground-truth labels of its
// points and renders the result as a terminal table.
package report

import (
	"errors"
	"fmt"

	"github.com/jjanczur/SPDB/chameleon"
	"github.com/uber/h3-go/v4"
)

const maxH3Resolution = 15

// ErrNoClusters is returned by Calculate when given no clusters.
var ErrNoClusters = errors.New("report: no clusters")

// Options controls how a clustering is scored.
type Options struct {
	// MinLabelOccurrence is the number of members a label needs within a
	// cluster to count towards that cluster's purity. Default: 3.
	MinLabelOccurrence int

	// H3Resolution is the resolution of the H3 cell reported for each
	// cluster centroid, in [0, 15]. Default: 5.
	H3Resolution int
}

// DefaultOptions returns the default scoring options.
func DefaultOptions() Options {
	return Options{MinLabelOccurrence: 3, H3Resolution: 5}
}

// ClusterResult is the score of one cluster.
type ClusterResult struct {
	Name    string
	Points  int
	Matched int // members whose label equals Name
	// Accuracy is Matched / Points.
	Accuracy float64
	// Purity counts the distinct labels with at least MinLabelOccurrence
	// members. One is the best possible value.
	Purity   int
	Lat, Lng float64
	Cell     h3.Cell
}

// Summary aggregates the per-cluster results.
type Summary struct {
	Clusters      []ClusterResult
	Points        int
	Matched       int
	Accuracy      float64
	AveragePurity float64
}

// Calculate scores clusters in their given order.
func Calculate(clusters []*chameleon.Cluster, opts Options) (*Summary, error) {
	if len(clusters) == 0 {
		return nil, ErrNoClusters
	}
	if opts.MinLabelOccurrence == 0 {
		opts.MinLabelOccurrence = 3
	}
	if opts.MinLabelOccurrence < 0 {
		return nil, fmt.Errorf("report: MinLabelOccurrence must be >= 0, got %d", opts.MinLabelOccurrence)
	}
	if opts.H3Resolution < 0 || opts.H3Resolution > maxH3Resolution {
		return nil, fmt.Errorf("report: H3Resolution must be in [0, %d], got %d", maxH3Resolution, opts.H3Resolution)
	}

	s := &Summary{Clusters: make([]ClusterResult, 0, len(clusters))}
	var puritySum int
	for i, c := range clusters {
		r, err := score(c, opts)
		if err != nil {
			return nil, fmt.Errorf("report: cluster %d: %w", i, err)
		}
		s.Clusters = append(s.Clusters, r)
		s.Points += r.Points
		s.Matched += r.Matched
		puritySum += r.Purity
	}
	s.Accuracy = float64(s.Matched) / float64(s.Points)
	s.AveragePurity = float64(puritySum) / float64(len(clusters))
	return s, nil
}

func score(c *chameleon.Cluster, opts Options) (ClusterResult, error) {
	r := ClusterResult{Name: c.Name(), Points: c.Len()}

	counts := make(map[string]int)
	for _, p := range c.Points() {
		counts[p.Label]++
		if p.Label == r.Name {
			r.Matched++
		}
	}
	for _, n := range counts {
		if n >= opts.MinLabelOccurrence {
			r.Purity++
		}
	}
	r.Accuracy = float64(r.Matched) / float64(r.Points)

	r.Lat, r.Lng = c.GeoCentroid()
	cell, err := h3.LatLngToCell(h3.NewLatLng(r.Lat, r.Lng), opts.H3Resolution)
	if err != nil {
		return r, fmt.Errorf("converting centroid to h3 cell at res %d: %w", opts.H3Resolution, err)
	}
	r.Cell = cell
	return r, nil
}
