package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"rasterfit/internal/config"
	"rasterfit/internal/service"
	"rasterfit/pkg/utils"
)

var flagKeys = map[string]string{
	"x":           "input.x",
	"y":           "input.y",
	"skip_nodata": "input.skip_nodata",
	"mask":        "mask.path",
	"use_mask":    "mask.use",
	"mask_value":  "mask.value",
	"parallel":    "fit.parallel",
	"alpha":       "fit.significance",
	"out":         "render.out",
	"html":        "render.html",
	"points":      "render.points",
	"csv":         "report.csv",
	"json":        "report.json",
}

func main() {
	configPath := flag.String("config", "", "Config file (yaml, toml or json)")
	flag.String("x", "", "Independent raster (x axis)")
	flag.String("y", "", "Dependent raster (y axis)")
	flag.Bool("skip_nodata", true, "Drop pairs where either raster is NoData")
	flag.String("mask", "", "Mask raster; implies -use_mask")
	flag.Bool("use_mask", false, "Apply the mask raster")
	flag.Float64("mask_value", 0, "Select mask cells equal to this value instead of any non-zero cell")
	flag.Bool("parallel", false, "Fit the four models concurrently")
	flag.Float64("alpha", 0.05, "Significance level")
	flag.String("out", "out/bestfit.png", "Scatterplot output; the extension picks the format")
	flag.String("html", "", "Interactive HTML scatterplot output")
	flag.Int("points", 300, "Points on the fitted curve")
	flag.String("csv", "", "CSV report of the four fits")
	flag.String("json", "", "JSON report of the analysis")
	flag.Parse()

	overrides := config.FlagOverrides(flag.CommandLine, flagKeys)
	if _, ok := overrides["mask.path"]; ok {
		if _, set := overrides["mask.use"]; !set {
			overrides["mask.use"] = true
		}
	}
	cfg, err := config.Load(*configPath, overrides)
	if err != nil {
		utils.Logger().Fatal("Failed to load config", zap.Error(err))
	}
	logger := newLogger(cfg)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out, err := service.NewAnalyzer(cfg, logger).Run(ctx)
	if err != nil {
		if service.IsInputError(err) {
			logger.Fatal("Invalid input", zap.Error(err))
		}
		logger.Fatal("Analysis failed", zap.Error(err))
	}

	for _, c := range out.Report.Candidates {
		mark := " "
		if c.Selected {
			mark = "*"
		}
		fmt.Printf("%s %-12s | %-26s | r2=%-8.4f | p=%.4g\n", mark, c.Name, c.Equation, float64(c.RSquared), float64(c.PValue))
	}
	if !out.Choice.Significant {
		fmt.Println("No model is statistically significant at alpha =", cfg.Fit.Significance)
	}
	for _, f := range out.Files {
		fmt.Println("Saved:", f)
	}
}

// newLogger builds the process logger once, from the config's log keys when
// set and from LOG_FILE/LOG_LEVEL otherwise.
func newLogger(cfg *config.Config) *zap.Logger {
	if !cfg.LogConfigured() {
		return utils.Logger()
	}
	l, err := utils.NewLogger(cfg.LogOptions())
	if err != nil {
		utils.Logger().Fatal("Failed to build logger", zap.Error(err))
	}
	utils.SetLogger(l)
	return l
}
