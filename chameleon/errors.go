package chameleon

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidConfig is wrapped by every parameter error returned before
	// graph construction starts.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrCoincidentPoints means two points are at distance zero, which would
	// give an infinite similarity weight.
	ErrCoincidentPoints = errors.New("coincident points")

	// ErrInvalidDistance means the metric returned a negative, NaN or
	// infinite distance.
	ErrInvalidDistance = errors.New("invalid distance")

	// ErrSingletonCluster means a one-point cluster entered a step that needs
	// an internal connectivity value.
	ErrSingletonCluster = errors.New("singleton cluster")

	// ErrNoMergeCandidate means no pair of clusters had a finite merge score.
	ErrNoMergeCandidate = errors.New("no merge candidate")
)

// Phase names a stage of the clustering pipeline.
type Phase string

const (
	PhaseGraph      Phase = "graph"
	PhaseKNN        Phase = "knn"
	PhaseComponents Phase = "components"
	PhaseSplit      Phase = "split"
	PhaseMerge      Phase = "merge"
)

// PhaseError reports a computation failure together with the phase and the
// point or cluster indices needed to reproduce it.
type PhaseError struct {
	Phase Phase
	// Points are global point indices involved in the failure, if any.
	Points []int
	// Clusters are positions in the cluster list at the time of failure.
	Clusters []int
	Err      error
}

func (e *PhaseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "chameleon: %s", e.Phase)
	if len(e.Points) > 0 {
		fmt.Fprintf(&b, ": points %v", e.Points)
	}
	if len(e.Clusters) > 0 {
		fmt.Fprintf(&b, ": clusters %v", e.Clusters)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *PhaseError) Unwrap() error { return e.Err }

func configError(format string, args ...any) error {
	return fmt.Errorf("chameleon: %s: %w", fmt.Sprintf(format, args...), ErrInvalidConfig)
}
