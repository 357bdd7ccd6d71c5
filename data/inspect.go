package data

import (
	"context"
	"image"
	"image/color"
	"math/rand/v2"
	"os"
)

// DefaultInspectSize is how many sample files per category are inspected.
const DefaultInspectSize = 3

// SampleInfo describes one sampled file from its header alone.
type SampleInfo struct {
	Category string `json:"category" yaml:"category"`
	Path     string `json:"path" yaml:"path"`
	Format   string `json:"format" yaml:"format"`
	Width    int    `json:"width" yaml:"width"`
	Height   int    `json:"height" yaml:"height"`
	Channels int    `json:"channels" yaml:"channels"`
}

// Inspect draws up to n files per category and reads their headers without decoding
// pixels. Sampling consumes rng in category order. Unreadable headers become failures.
func Inspect(ctx context.Context, cats []Category, filter ExtFilter, rng *rand.Rand, n int) ([]SampleInfo, []Failure, error) {
	if n <= 0 {
		n = DefaultInspectSize
	}
	if rng == nil {
		rng = NewRand(nil)
	}

	var infos []SampleInfo
	var failures []Failure
	for _, c := range cats {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		paths, err := ListImages(c, filter)
		if err != nil {
			return nil, nil, err
		}
		for _, p := range SamplePaths(rng, paths, n) {
			info, err := readHeader(p)
			if err != nil {
				failures = append(failures, newFailure(StageInspect, c.Name, p, err))
				continue
			}
			info.Category = c.Name
			infos = append(infos, info)
		}
	}
	return infos, failures, nil
}

func readHeader(path string) (SampleInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return SampleInfo{}, &ImageReadError{Path: path, Err: err}
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return SampleInfo{}, &ImageReadError{Path: path, Err: err}
	}
	return SampleInfo{
		Path:     path,
		Format:   format,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Channels: modelChannels(cfg.ColorModel),
	}, nil
}

// modelChannels mirrors ChannelCount for a colour model taken from a header.
func modelChannels(m color.Model) int {
	switch m {
	case color.GrayModel, color.Gray16Model:
		return 1
	case color.YCbCrModel, color.CMYKModel:
		return 3
	case color.AlphaModel, color.Alpha16Model:
		return 0
	default:
		return 4
	}
}
