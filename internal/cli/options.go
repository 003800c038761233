package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jjanczur/SPDB/chameleon"
	"github.com/jjanczur/SPDB/render"
	"github.com/jjanczur/SPDB/report"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Options is the full configuration of a run. It can be loaded from a YAML
// file and overridden by command line flags.
type Options struct {
	Input string `yaml:"input" validate:"required"`

	K              int    `yaml:"k" validate:"gte=1"`
	InitClusters   int    `yaml:"init_clusters" validate:"gte=1"`
	ResultClusters int    `yaml:"result_clusters" validate:"gte=1"`
	Workers        int    `yaml:"workers" validate:"gte=0"` // 0 = all CPUs
	Singletons     string `yaml:"singletons" validate:"oneof=reject link"`

	MinLabelOccurrence int `yaml:"min_label_occurrence" validate:"gte=1"`
	H3Resolution       int `yaml:"h3_resolution" validate:"gte=0,lte=15"`

	// PNG is the output image path. Empty means the input path with a .png
	// extension.
	PNG   string       `yaml:"png"`
	NoPNG bool         `yaml:"no_png"`
	Image ImageOptions `yaml:"image"`

	LogFormat string `yaml:"log_format" validate:"oneof=console json"`
	Verbose   bool   `yaml:"verbose"`
}

type ImageOptions struct {
	Width     int `yaml:"width" validate:"gte=1"`
	Height    int `yaml:"height" validate:"gte=1"`
	PointSize int `yaml:"point_size" validate:"gte=1"`
	Margin    int `yaml:"margin" validate:"gte=0"`
}

// DefaultOptions returns the settings used when neither a config file nor a
// flag says otherwise.
func DefaultOptions() Options {
	img := render.DefaultOptions()
	rep := report.DefaultOptions()
	return Options{
		Input:              "all2.csv",
		K:                  54,
		InitClusters:       100,
		ResultClusters:     54,
		Singletons:         string(chameleon.SingletonReject),
		MinLabelOccurrence: rep.MinLabelOccurrence,
		H3Resolution:       rep.H3Resolution,
		Image: ImageOptions{
			Width:     img.Width,
			Height:    img.Height,
			PointSize: img.PointSize,
			Margin:    img.Margin,
		},
		LogFormat: "console",
	}
}

// LoadOptions reads a YAML config file on top of DefaultOptions. Unknown keys
// are rejected.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read the config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return opts, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}
	return opts, nil
}

// pngPath resolves where the image is written, or "" when disabled.
func (o Options) pngPath() string {
	switch {
	case o.NoPNG:
		return ""
	case o.PNG != "":
		return o.PNG
	default:
		return strings.TrimSuffix(o.Input, filepath.Ext(o.Input)) + ".png"
	}
}

func (o Options) engineConfig(logger *zap.Logger, onStep func(chameleon.Step)) chameleon.Config {
	cfg := chameleon.DefaultConfig()
	cfg.K = o.K
	cfg.InitClusters = o.InitClusters
	cfg.ResultClusters = o.ResultClusters
	cfg.Workers = o.Workers
	cfg.Singletons = chameleon.SingletonPolicy(o.Singletons)
	cfg.Logger = logger
	cfg.OnStep = onStep
	return cfg
}

func (o Options) reportOptions() report.Options {
	return report.Options{
		MinLabelOccurrence: o.MinLabelOccurrence,
		H3Resolution:       o.H3Resolution,
	}
}

func (o Options) renderOptions() render.Options {
	return render.Options{
		Width:     o.Image.Width,
		Height:    o.Image.Height,
		PointSize: o.Image.PointSize,
		Margin:    o.Image.Margin,
	}
}
