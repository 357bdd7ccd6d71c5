package main

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/b0tShaman/leaf-eda/data"
	"github.com/b0tShaman/leaf-eda/pipeline"
)

func sampleReport() *pipeline.Report {
	return &pipeline.Report{
		RunID:       "6f1c9a2e-0000-4000-8000-000000000001",
		StartedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		DatasetRoot: "data/corn",
		OutputRoot:  "processed_data",
		Steps:       pipeline.AllSteps,
		Categories:  []string{"Blight", "Healthy", "Rust"},
		Resized:     8,
		Distribution: data.ClassDistribution{
			"Blight": 0, "Healthy": 5, "Rust": 3,
		},
		Signatures: data.ColorSignature{
			"Healthy": {R: 40, G: 120, B: 60},
			"Rust":    {R: 30.5, G: 120, B: 60},
		},
		Samples: []data.SampleInfo{
			{Category: "Healthy", Path: "data/corn/Healthy/img_a.jpg", Format: "jpeg", Width: 256, Height: 256, Channels: 3},
		},
		Failures: []data.Failure{{
			Stage: data.StageSummarize, Category: "Blight",
			Reason: "no readable images", Err: &data.EmptyCategoryError{Category: "Blight"},
		}},
	}
}

func TestWriteReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, sampleReport(), "json"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "data/corn", got["dataset_root"])
	assert.Equal(t, float64(8), got["resized"])
	assert.Equal(t, map[string]any{"Blight": float64(0), "Healthy": float64(5), "Rust": float64(3)}, got["distribution"])

	sigs := got["color_signatures"].(map[string]any)
	assert.Equal(t, 30.5, sigs["Rust"].(map[string]any)["r"])

	failures := got["failures"].([]any)
	require.Len(t, failures, 1)
	assert.NotContains(t, failures[0], "Err")
}

func TestWriteReport_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, sampleReport(), "yaml"))

	var got struct {
		RunID        string         `yaml:"run_id"`
		Distribution map[string]int `yaml:"distribution"`
		Samples      []data.SampleInfo
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "6f1c9a2e-0000-4000-8000-000000000001", got.RunID)
	assert.Equal(t, 5, got.Distribution["Healthy"])
	require.Len(t, got.Samples, 1)
	assert.Equal(t, 3, got.Samples[0].Channels)
}

func TestWriteReport_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, sampleReport(), "text"))
	out := buf.String()

	assert.Contains(t, out, "6f1c9a2e-0000-4000-8000-000000000001")
	assert.Contains(t, out, "8 written under processed_data")
	assert.Regexp(t, `Healthy\s+5`, out)
	assert.Regexp(t, `total\s+8`, out)
	assert.Regexp(t, `Rust\s+R 30\.5\s+G 120\.0\s+B 60\.0`, out)
	assert.Contains(t, out, "no usable sample")
	assert.Contains(t, out, "img_a.jpg")
	assert.Contains(t, out, "256x256")
	assert.Contains(t, out, "EmptyCategoryError")
}

func TestWriteReport_OnlyRequestedSections(t *testing.T) {
	rep := sampleReport()
	rep.Steps = []pipeline.Step{pipeline.StepCount}
	rep.Failures = nil

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, rep, ""))
	assert.Regexp(t, `total\s+8`, buf.String())
	assert.NotContains(t, buf.String(), "Resized images")
	assert.NotContains(t, buf.String(), "Skipped")
}

func TestWriteReport_UnknownFormat(t *testing.T) {
	err := writeReport(&bytes.Buffer{}, sampleReport(), "xml")
	assert.EqualError(t, err, `unknown report format "xml"`)
}

func writeTinyPNG(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, 2, 2))))
}

func TestRootCmd_FlagsReachConfig(t *testing.T) {
	root := t.TempDir()
	writeTinyPNG(t, filepath.Join(root, "Healthy", "a.png"))
	writeTinyPNG(t, filepath.Join(root, "Healthy", "b.png"))
	writeTinyPNG(t, filepath.Join(root, "Rust", "c.png"))
	// counted only when --ext allows jpg
	require.NoError(t, os.WriteFile(filepath.Join(root, "Rust", "d.jpg"), []byte("x"), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--seed", "42", "--format", "json", "--log-level", "error",
		"count", "--dataset", root, "--ext", "png", "--sample-size", "4"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	var rep pipeline.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &rep))
	assert.Equal(t, root, rep.DatasetRoot)
	assert.Equal(t, []pipeline.Step{pipeline.StepCount}, rep.Steps)
	assert.Equal(t, data.ClassDistribution{"Healthy": 2, "Rust": 1}, rep.Distribution)
	require.NotNil(t, rep.RandomSeed)
	assert.Equal(t, int64(42), *rep.RandomSeed)

	require.NotNil(t, cfg)
	assert.Equal(t, 4, cfg.SampleSize)
	assert.Equal(t, []string{"png"}, cfg.ImageExtensions)
}
