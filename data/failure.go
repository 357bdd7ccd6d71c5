package data

import (
	"errors"
)

// Stages at which a file or category can be skipped.
const (
	StageResize    = "resize"
	StageSummarize = "summarize"
	StageInspect   = "inspect"
)

// Failure records one skipped file or category and why.
type Failure struct {
	Stage    string `json:"stage" yaml:"stage"`
	Category string `json:"category" yaml:"category"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	Reason   string `json:"reason" yaml:"reason"`
	Err      error  `json:"-" yaml:"-"`
}

func newFailure(stage, category, path string, err error) Failure {
	return Failure{Stage: stage, Category: category, Path: path, Reason: err.Error(), Err: err}
}

// Kind names the error type behind the failure, for grouping in summaries.
func (f Failure) Kind() string {
	var (
		readErr    *ImageReadError
		channelErr *UnsupportedChannelError
		emptyErr   *EmptyCategoryError
	)
	switch {
	case errors.As(f.Err, &readErr):
		return "ImageReadError"
	case errors.As(f.Err, &channelErr):
		return "UnsupportedChannelError"
	case errors.As(f.Err, &emptyErr):
		return "EmptyCategoryError"
	default:
		return "Error"
	}
}
