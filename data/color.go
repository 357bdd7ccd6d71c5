package data

import (
	"context"
	"errors"
	"math/rand/v2"
)

// DefaultSampleSize bounds how many images per category feed a colour signature.
const DefaultSampleSize = 10

// Loader decodes one image file into channel planes.
type Loader func(path string) (*Raster, error)

// ColorSignature maps a category name to its mean RGB. Categories without a usable
// sample are absent rather than zeroed.
type ColorSignature map[string]RGB

// ColorSummarizer computes per-category colour signatures from a bounded random sample.
type ColorSummarizer struct {
	SampleSize int        // k; DefaultSampleSize when <= 0
	Filter     ExtFilter  // accepted suffixes
	Rand       *rand.Rand // sampling source; seed it for reproducible output
	Load       Loader     // LoadRaster when nil
	Workers    int        // concurrent loads; runtime.NumCPU() when <= 0
}

type sampleJob struct {
	cat  int
	path string
}

type sampleResult struct {
	mean RGB
	err  error
}

// Summarize returns the signature of every category that has at least one usable image,
// plus one Failure per skipped image and per empty category. Only structural errors
// (a category directory vanishing) or cancellation abort the call.
func (s *ColorSummarizer) Summarize(ctx context.Context, cats []Category) (ColorSignature, []Failure, error) {
	k := s.SampleSize
	if k <= 0 {
		k = DefaultSampleSize
	}
	rng := s.Rand
	if rng == nil {
		rng = NewRand(nil)
	}
	load := s.Load
	if load == nil {
		load = LoadRaster
	}

	// Draw every sample up front, in category order, so the seeded sequence does not
	// depend on how loads are scheduled.
	var jobs []sampleJob
	for i, c := range cats {
		paths, err := ListImages(c, s.Filter)
		if err != nil {
			return nil, nil, err
		}
		for _, p := range SamplePaths(rng, paths, k) {
			jobs = append(jobs, sampleJob{cat: i, path: p})
		}
	}

	results := make([]sampleResult, len(jobs))
	err := parallelFor(ctx, len(jobs), s.Workers, func(i int) {
		results[i] = meanOfFile(load, jobs[i].path)
	})
	if err != nil {
		return nil, nil, err
	}

	perCat := make([][]RGB, len(cats))
	var failures []Failure
	for i, j := range jobs {
		if results[i].err != nil {
			failures = append(failures, newFailure(StageSummarize, cats[j.cat].Name, j.path, results[i].err))
			continue
		}
		perCat[j.cat] = append(perCat[j.cat], results[i].mean)
	}

	sig := make(ColorSignature, len(cats))
	for i, c := range cats {
		if len(perCat[i]) == 0 {
			failures = append(failures, newFailure(StageSummarize, c.Name, "", &EmptyCategoryError{Category: c.Name}))
			continue
		}
		sig[c.Name] = MeanOf(perCat[i])
	}
	return sig, failures, nil
}

// SignatureOf summarises a single category. It returns *EmptyCategoryError when the
// category has no qualifying files or every sampled file was skipped; the skipped files
// are still returned as failures.
func (s *ColorSummarizer) SignatureOf(ctx context.Context, cat Category) (RGB, []Failure, error) {
	sig, failures, err := s.Summarize(ctx, []Category{cat})
	if err != nil {
		return RGB{}, nil, err
	}
	rgb, ok := sig[cat.Name]
	if !ok {
		// the last failure is the empty-category record appended by Summarize
		last := failures[len(failures)-1]
		return RGB{}, failures[:len(failures)-1], last.Err
	}
	return rgb, failures, nil
}

func meanOfFile(load Loader, path string) sampleResult {
	r, err := load(path)
	if err != nil {
		var readErr *ImageReadError
		if !errors.As(err, &readErr) {
			err = &ImageReadError{Path: path, Err: err}
		}
		return sampleResult{err: err}
	}
	mean, ok := r.MeanRGB()
	if !ok {
		return sampleResult{err: &UnsupportedChannelError{Path: path, Channels: r.Channels()}}
	}
	return sampleResult{mean: mean}
}
