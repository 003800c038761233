package cli

import (
	"io"

	"github.com/jjanczur/SPDB/chameleon"
	"github.com/schollz/progressbar/v3"
)

// progress renders split and merge steps as a progress bar. It is created
// disabled and sized once the seed clusters are known.
type progress struct {
	out     io.Writer
	enabled bool
	init    int
	result  int
	bar     *progressbar.ProgressBar
}

func newProgress(out io.Writer, enabled bool, init, result int) *progress {
	return &progress{out: out, enabled: enabled, init: init, result: result}
}

// progressTotal is the number of split and merge steps a run takes starting
// from seeds clusters.
func progressTotal(seeds, init, result int) int {
	total := 0
	if seeds < init {
		total += init - seeds
	}
	return total + max(seeds, init) - result
}

func (p *progress) step(s chameleon.Step) {
	if !p.enabled {
		return
	}
	switch s.Phase {
	case chameleon.PhaseComponents:
		p.bar = progressbar.NewOptions(progressTotal(s.Clusters, p.init, p.result),
			progressbar.OptionSetDescription("Clustering"),
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	case chameleon.PhaseSplit, chameleon.PhaseMerge:
		if p.bar != nil {
			_ = p.bar.Add(1)
		}
	}
}

func (p *progress) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
