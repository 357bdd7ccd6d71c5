package data

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
)

// Default target size and output directory for resized images.
const (
	DefaultTargetWidth  = 128
	DefaultTargetHeight = 128
	DefaultOutputRoot   = "processed_data"
)

// Resizer writes a resized copy of every qualifying image to OutputRoot/<category>/<file>.
type Resizer struct {
	OutputRoot string
	Width      int
	Height     int
	Quality    int // JPEG quality; DefaultJPEGQuality when <= 0
	Filter     ExtFilter
	Workers    int
}

// ResizeResult lists the files written by one pass, in category then file order.
type ResizeResult struct {
	Outputs []string
}

func (r ResizeResult) Count() int { return len(r.Outputs) }

type resizeJob struct {
	category string
	src, dst string
}

// OutputPath is where the resized copy of src in category cat is written.
func (r *Resizer) OutputPath(cat Category, src string) string {
	return filepath.Join(r.OutputRoot, cat.Name, filepath.Base(src))
}

// Resize processes every category. A file that fails to load or save is recorded as a
// Failure and the rest continue. A missing category directory or a destination that is
// its own source aborts before anything is written; cancellation stops further writes.
// Every job has its own destination path, so workers never share a file.
func (r *Resizer) Resize(ctx context.Context, cats []Category) (ResizeResult, []Failure, error) {
	var jobs []resizeJob
	for _, c := range cats {
		paths, err := ListImages(c, r.Filter)
		if err != nil {
			return ResizeResult{}, nil, err
		}
		for _, p := range paths {
			dst := r.OutputPath(c, p)
			if samePath(p, dst) {
				return ResizeResult{}, nil, &OutputRootError{Path: r.OutputRoot, Reason: "would overwrite source " + p}
			}
			jobs = append(jobs, resizeJob{category: c.Name, src: p, dst: dst})
		}
	}

	errs := make([]error, len(jobs))
	err := parallelFor(ctx, len(jobs), r.Workers, func(i int) {
		errs[i] = ResizeFile(jobs[i].src, jobs[i].dst, r.Width, r.Height, r.Quality)
	})
	if err != nil {
		return ResizeResult{}, nil, err
	}

	var res ResizeResult
	var failures []Failure
	for i, j := range jobs {
		if errs[i] != nil {
			failures = append(failures, newFailure(StageResize, j.category, j.src, errs[i]))
			continue
		}
		res.Outputs = append(res.Outputs, j.dst)
	}
	return res, failures, nil
}

// CheckOutputRoot refuses an output root equal to the dataset root or one that is itself
// a category (a direct subdirectory holding images). An output tree nested inside the
// dataset is fine as long as it only holds the per-category directories this package writes.
func CheckOutputRoot(datasetRoot, outputRoot string, filter ExtFilter) error {
	absData, err := filepath.Abs(datasetRoot)
	if err != nil {
		return err
	}
	absOut, err := filepath.Abs(outputRoot)
	if err != nil {
		return err
	}
	if absOut == absData {
		return &OutputRootError{Path: outputRoot, Reason: "is the dataset root"}
	}
	if filepath.Dir(absOut) != absData || strings.HasPrefix(filepath.Base(absOut), ".") {
		return nil
	}
	paths, err := ListImages(Category{Name: filepath.Base(absOut), Dir: absOut}, filter)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil
		}
		return err
	}
	if len(paths) > 0 {
		return &OutputRootError{Path: outputRoot, Reason: "is a category directory of the dataset"}
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
