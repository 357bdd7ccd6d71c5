package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/b0tShaman/leaf-eda/config"
	"github.com/b0tShaman/leaf-eda/data"
	"github.com/b0tShaman/leaf-eda/pipeline"
)

var (
	v            = config.New()
	cfg          *config.Config
	configPath   string
	reportFormat string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "leafeda",
	Short: "Exploratory preprocessing for a categorised leaf image dataset",
	Long: `leafeda enumerates the class directories of an image dataset, resizes every image
into a mirrored output tree, counts images per class and summarises the mean colour of
each class from a random sample.

Examples:
  leafeda run --dataset data/corn --output processed_data --seed 42
  leafeda count --dataset data/corn --format json
  leafeda colors --config leafeda.yaml --sample-size 20`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetInt64("seed")
			v.Set("random_seed", seed)
		}
		c, err := config.Load(v, configPath)
		if err != nil {
			return err
		}
		cfg = c
		return setupLogging(cfg)
	},
}

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every step: resize, count, colors and inspect",
	RunE:  stepRunner(pipeline.AllSteps...),
}

// resizeCmd represents the resize command
var resizeCmd = &cobra.Command{
	Use:   "resize",
	Short: "Resize every image into the output tree",
	RunE:  stepRunner(pipeline.StepResize),
}

// countCmd represents the count command
var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count images per category",
	RunE:  stepRunner(pipeline.StepCount),
}

// colorsCmd represents the colors command
var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "Compute the mean RGB signature of each category",
	RunE:  stepRunner(pipeline.StepColors),
}

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show header details of a few sample images per category",
	RunE:  stepRunner(pipeline.StepInspect),
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "path to a YAML config file")
	pf.StringVar(&reportFormat, "format", "text", "report format: text, json or yaml")

	pf.String("dataset", "data", "dataset root with one directory per category")
	pf.String("output", data.DefaultOutputRoot, "root of the resized image tree")
	pf.Int("width", data.DefaultTargetWidth, "target width in pixels")
	pf.Int("height", data.DefaultTargetHeight, "target height in pixels")
	pf.Int("sample-size", data.DefaultSampleSize, "max images per category for colour signatures")
	pf.Int("inspect-size", data.DefaultInspectSize, "sample images per category to inspect")
	pf.StringSlice("ext", data.DefaultExtensions, "accepted image suffixes")
	pf.Int64("seed", 0, "random seed for reproducible sampling")
	pf.Int("workers", 0, "concurrent file workers (0 = number of CPUs)")
	pf.Int("jpeg-quality", data.DefaultJPEGQuality, "quality of re-encoded JPEGs")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")

	bindFlags(pf, map[string]string{
		"dataset_root":     "dataset",
		"output_root":      "output",
		"target_width":     "width",
		"target_height":    "height",
		"sample_size":      "sample-size",
		"inspect_size":     "inspect-size",
		"image_extensions": "ext",
		"workers":          "workers",
		"jpeg_quality":     "jpeg-quality",
		"log_level":        "log-level",
		"log_format":       "log-format",
	})

	rootCmd.AddCommand(runCmd, resizeCmd, countCmd, colorsCmd, inspectCmd)
}

func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
}

func setupLogging(c *config.Config) error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	if c.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func stepRunner(steps ...pipeline.Step) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		rep, err := pipeline.New(cfg, log.StandardLogger()).Run(cmd.Context(), steps...)
		if err != nil {
			return err
		}
		return writeReport(cmd.OutOrStdout(), rep, reportFormat)
	}
}
