package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/b0tShaman/leaf-eda/pipeline"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func writeReport(w io.Writer, rep *pipeline.Report, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		return writeText(w, rep)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func writeText(w io.Writer, rep *pipeline.Report) error {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Run %s", rep.RunID)))
	fmt.Fprintf(w, "Dataset: %s (%d categories) in %.2fs\n", rep.DatasetRoot, len(rep.Categories), rep.DurationSeconds)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if rep.Has(pipeline.StepResize) {
		fmt.Fprintf(w, "\n%s\n", sectionStyle.Render("Resized images"))
		fmt.Fprintf(w, "%d written under %s\n", rep.Resized, rep.OutputRoot)
	}

	if rep.Has(pipeline.StepCount) {
		fmt.Fprintf(w, "\n%s\n", sectionStyle.Render("Class distribution"))
		for _, label := range rep.Distribution.Labels() {
			fmt.Fprintf(tw, "  %s\t%d\n", label, rep.Distribution[label])
		}
		fmt.Fprintf(tw, "  total\t%d\n", rep.Distribution.Total())
		tw.Flush()
	}

	if rep.Has(pipeline.StepColors) {
		fmt.Fprintf(w, "\n%s\n", sectionStyle.Render("Colour signatures"))
		for _, label := range rep.Categories {
			rgb, ok := rep.Signatures[label]
			if !ok {
				fmt.Fprintf(tw, "  %s\t%s\n", label, warnStyle.Render("no usable sample"))
				continue
			}
			fmt.Fprintf(tw, "  %s\tR %.1f\tG %.1f\tB %.1f\n", label, rgb.R, rgb.G, rgb.B)
		}
		tw.Flush()
	}

	if rep.Has(pipeline.StepInspect) {
		fmt.Fprintf(w, "\n%s\n", sectionStyle.Render("Sample images"))
		for _, s := range rep.Samples {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%dx%d\t%d ch\n", s.Category, filepath.Base(s.Path), s.Format, s.Width, s.Height, s.Channels)
		}
		tw.Flush()
	}

	if len(rep.Failures) > 0 {
		fmt.Fprintf(w, "\n%s\n", warnStyle.Render(fmt.Sprintf("Skipped (%d)", len(rep.Failures))))
		for _, f := range rep.Failures {
			fmt.Fprintf(tw, "  [%s]\t%s\t%s\t%s\n", f.Stage, f.Category, f.Kind(), f.Reason)
		}
		tw.Flush()
	}
	return nil
}
