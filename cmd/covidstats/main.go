// Command covidstats analyses one country's slice of the Our World in Data
// COVID-19 table and writes a text report and six charts.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sartorproj/covidstats/chart"
	"github.com/sartorproj/covidstats/config"
	"github.com/sartorproj/covidstats/epi"
	"github.com/sartorproj/covidstats/output"
	"github.com/sartorproj/covidstats/report"
	"github.com/sartorproj/covidstats/timeseries"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to optional config file")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(cfg); err != nil {
		slog.Error("analysis failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	slog.Info("covidstats starting", "country", cfg.Country, "input", cfg.Input)

	opts := timeseries.DefaultCSVOptions()
	opts.Delimiter = cfg.Comma()
	table, err := timeseries.LoadTable(cfg.Input, opts)
	if err != nil {
		return err
	}
	slog.Info("table loaded", "rows", len(table.Rows), "columns", len(table.Header))

	frame, err := epi.SelectCountry(table, cfg.Country)
	if err != nil {
		return err
	}
	if frame.Len() == 0 {
		return fmt.Errorf("%w: no rows for location %q", epi.ErrEmptySeries, cfg.Country)
	}

	analysis, err := epi.Analyze(frame)
	if err != nil {
		return err
	}

	images, err := chart.RenderAll(analysis)
	if err != nil {
		return err
	}

	bundle, err := stage(cfg, analysis, images)
	if err != nil {
		return err
	}

	if err := report.Write(analysis, os.Stdout); err != nil {
		return fmt.Errorf("write report to console: %w", err)
	}

	if err := bundle.Commit(cfg.OutputDir); err != nil {
		return err
	}
	slog.Info("analysis complete", "dir", cfg.OutputDir, "files", bundle.Names())
	return nil
}

// stage collects every output file so they can be committed together.
func stage(cfg *config.Config, a *epi.Analysis, images []chart.Image) (*output.Bundle, error) {
	bundle := output.NewBundle()

	if err := bundle.Add(cfg.ReportFile, []byte(report.Format(a))); err != nil {
		return nil, err
	}
	for _, img := range images {
		if err := bundle.Add(img.Name, img.Data); err != nil {
			return nil, err
		}
	}

	if cfg.SeriesCSV != "" {
		var buf bytes.Buffer
		if err := timeseries.WriteFrameCSV(&buf, a.Frame); err != nil {
			return nil, fmt.Errorf("export series: %w", err)
		}
		if err := bundle.Add(cfg.SeriesCSV, buf.Bytes()); err != nil {
			return nil, err
		}
	}

	if cfg.MetricsFile != "" {
		var buf bytes.Buffer
		if err := report.WriteMetrics(&buf, a); err != nil {
			return nil, fmt.Errorf("export metrics: %w", err)
		}
		if err := bundle.Add(cfg.MetricsFile, buf.Bytes()); err != nil {
			return nil, err
		}
	}

	return bundle, nil
}
