package pipeline

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/b0tShaman/leaf-eda/config"
	"github.com/b0tShaman/leaf-eda/data"
)

// Step selects one stage of the pipeline.
type Step string

const (
	StepResize  Step = "resize"
	StepCount   Step = "count"
	StepColors  Step = "colors"
	StepInspect Step = "inspect"
)

// AllSteps is the order a full run executes in.
var AllSteps = []Step{StepResize, StepCount, StepColors, StepInspect}

// Report is everything a run produced besides the resized files themselves.
type Report struct {
	RunID           string                 `json:"run_id" yaml:"run_id"`
	StartedAt       time.Time              `json:"started_at" yaml:"started_at"`
	DurationSeconds float64                `json:"duration_seconds" yaml:"duration_seconds"`
	DatasetRoot     string                 `json:"dataset_root" yaml:"dataset_root"`
	RandomSeed      *int64                 `json:"random_seed,omitempty" yaml:"random_seed,omitempty"`
	OutputRoot      string                 `json:"output_root,omitempty" yaml:"output_root,omitempty"`
	Steps           []Step                 `json:"steps" yaml:"steps"`
	Categories      []string               `json:"categories" yaml:"categories"`
	Resized         int                    `json:"resized" yaml:"resized"`
	Distribution    data.ClassDistribution `json:"distribution,omitempty" yaml:"distribution,omitempty"`
	Signatures      data.ColorSignature    `json:"color_signatures,omitempty" yaml:"color_signatures,omitempty"`
	Samples         []data.SampleInfo      `json:"samples,omitempty" yaml:"samples,omitempty"`
	Failures        []data.Failure         `json:"failures" yaml:"failures"`
}

// Has reports whether step ran.
func (r *Report) Has(step Step) bool {
	for _, s := range r.Steps {
		if s == step {
			return true
		}
	}
	return false
}

// Pipeline runs the dataset steps for one configuration.
type Pipeline struct {
	cfg *config.Config
	log *logrus.Logger
}

func New(cfg *config.Config, log *logrus.Logger) *Pipeline {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{cfg: cfg, log: log}
}

// Run enumerates categories once and hands the same list to every requested step.
// Unknown steps and an output root that overlaps the dataset are rejected before any
// file is touched. File-level problems end up in Report.Failures; a missing dataset root,
// a vanished category directory or cancellation abort with an error.
func (p *Pipeline) Run(ctx context.Context, steps ...Step) (*Report, error) {
	if len(steps) == 0 {
		steps = AllSteps
	}
	for _, step := range steps {
		if !slices.Contains(AllSteps, step) {
			return nil, fmt.Errorf("unknown step %q", step)
		}
	}
	if slices.Contains(steps, StepResize) {
		if err := data.CheckOutputRoot(p.cfg.DatasetRoot, p.cfg.OutputRoot, p.cfg.Filter()); err != nil {
			return nil, err
		}
	}

	rep := &Report{
		RunID:       uuid.NewString(),
		StartedAt:   time.Now(),
		DatasetRoot: p.cfg.DatasetRoot,
		RandomSeed:  p.cfg.RandomSeed,
		Steps:       steps,
		Failures:    []data.Failure{},
	}
	log := p.log.WithField("run_id", rep.RunID)

	cats, err := data.Enumerate(p.cfg.DatasetRoot, p.cfg.OutputRoot)
	if err != nil {
		return nil, err
	}
	for _, c := range cats {
		rep.Categories = append(rep.Categories, c.Name)
	}
	log.WithFields(logrus.Fields{
		"dataset_root": p.cfg.DatasetRoot,
		"categories":   len(cats),
	}).Info("Enumerated categories")

	// one seeded source shared by the sampling steps, consumed in step order
	rng := data.NewRand(p.cfg.RandomSeed)
	filter := p.cfg.Filter()

	for _, step := range steps {
		start := time.Now()
		var failures []data.Failure

		switch step {
		case StepResize:
			rs := &data.Resizer{
				OutputRoot: p.cfg.OutputRoot,
				Width:      p.cfg.TargetWidth,
				Height:     p.cfg.TargetHeight,
				Quality:    p.cfg.JPEGQuality,
				Filter:     filter,
				Workers:    p.cfg.EffectiveWorkers(),
			}
			res, f, err := rs.Resize(ctx, cats)
			if err != nil {
				return nil, err
			}
			rep.OutputRoot = p.cfg.OutputRoot
			rep.Resized = res.Count()
			failures = f

		case StepCount:
			dist, err := data.CountImages(cats, filter)
			if err != nil {
				return nil, err
			}
			rep.Distribution = dist

		case StepColors:
			cs := &data.ColorSummarizer{
				SampleSize: p.cfg.SampleSize,
				Filter:     filter,
				Rand:       rng,
				Workers:    p.cfg.EffectiveWorkers(),
			}
			sig, f, err := cs.Summarize(ctx, cats)
			if err != nil {
				return nil, err
			}
			rep.Signatures = sig
			failures = f

		case StepInspect:
			infos, f, err := data.Inspect(ctx, cats, filter, rng, p.cfg.InspectSize)
			if err != nil {
				return nil, err
			}
			rep.Samples = infos
			failures = f
		}

		for _, f := range failures {
			log.WithFields(logrus.Fields{
				"stage":    f.Stage,
				"category": f.Category,
				"path":     f.Path,
				"kind":     f.Kind(),
				"error":    f.Reason,
			}).Warn("Skipped")
		}
		rep.Failures = append(rep.Failures, failures...)

		log.WithFields(logrus.Fields{
			"step":     step,
			"skipped":  len(failures),
			"duration": time.Since(start),
		}).Info("Step complete")
	}

	rep.DurationSeconds = time.Since(rep.StartedAt).Seconds()
	return rep, nil
}
