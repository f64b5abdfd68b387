package main

import (
	"fmt"
	"log"

	"portalmap.dev/internal/blocklog"
	"portalmap.dev/internal/coordset"
	persistlog "portalmap.dev/internal/persistence/log"
	"portalmap.dev/internal/portal"
	"portalmap.dev/internal/waypoint"
)

func openReport(path string) *persistlog.RunLogger {
	if path == "" {
		return nil
	}
	return persistlog.NewRunLogger(path)
}

// closeReport finishes the report of a successful run and deletes the report
// of a failed one.
func closeReport(r *persistlog.RunLogger, err error) error {
	if err != nil {
		_ = r.Discard()
		return err
	}
	if cerr := r.Close(); cerr != nil {
		_ = r.Discard()
		return fmt.Errorf("close report: %w", cerr)
	}
	return nil
}

func runConvert(cfg runConfig, logger *log.Logger) (err error) {
	logger.Printf("converting %s to %s", cfg.Input, cfg.Output)

	l, err := blocklog.Read(cfg.Input)
	if err != nil {
		return err
	}
	logger.Printf("loaded %d blocks from %s", len(l.Blocks), cfg.Input)
	if len(l.Blocks) == 0 {
		logger.Printf("no blocks found in input file")
	}

	report := openReport(cfg.Report)
	defer func() { err = closeReport(report, err) }()

	res := portal.Detect(l.Positions(), cfg.Tuning.MaxPortalSpan, logger)
	logger.Printf("found %d separate portals", len(res.Portals))
	for _, n := range res.Rejected {
		if err := report.Rejected(n); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}

	style := cfg.Tuning.Style()
	wps := make([]waypoint.Waypoint, 0, len(res.Portals))
	for i, p := range res.Portals {
		wp := waypoint.New(style, p.Center)
		wps = append(wps, wp)
		logger.Printf("portal %d: %d blocks at center %v", i+1, len(p.Blocks), p.Center)
		if err := report.Portal(i+1, wp.Name, p.Center, len(p.Blocks)); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}

	if err := waypoint.WriteFile(cfg.Output, wps); err != nil {
		return err
	}
	logger.Printf("created %d waypoints in %s", len(wps), cfg.Output)

	return report.Summary(persistlog.RunEntry{
		Mode:      "convert",
		Inputs:    []string{cfg.Input},
		Output:    cfg.Output,
		Waypoints: len(wps),
		Rejected:  len(res.Rejected),
	})
}

func runDiff(cfg runConfig, logger *log.Logger) (err error) {
	logger.Printf("comparing %s and %s, writing new portals to %s", cfg.Before, cfg.After, cfg.Output)

	opts := coordset.Options{MaxSpan: cfg.Tuning.MaxPortalSpan, Logger: logger}
	before, err := coordset.Load(cfg.Before, opts)
	if err != nil {
		return err
	}
	after, err := coordset.Load(cfg.After, opts)
	if err != nil {
		return err
	}

	report := openReport(cfg.Report)
	defer func() { err = closeReport(report, err) }()

	fresh := coordset.Diff(before, after)
	logger.Printf("found %d new portals", fresh.Len())
	if fresh.Len() == 0 {
		logger.Printf("no new portals found")
	}

	style := cfg.Tuning.Style()
	wps := make([]waypoint.Waypoint, 0, fresh.Len())
	for i, pos := range fresh.Sorted() {
		wp := waypoint.New(style, pos)
		wps = append(wps, wp)
		logger.Printf("new portal %d: %v", i+1, pos)
		if err := report.Portal(i+1, wp.Name, pos, 0); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}

	if err := waypoint.WriteFile(cfg.Output, wps); err != nil {
		return err
	}
	logger.Printf("created %d new waypoints in %s", len(wps), cfg.Output)

	return report.Summary(persistlog.RunEntry{
		Mode:      "diff",
		Inputs:    []string{cfg.Before, cfg.After},
		Output:    cfg.Output,
		Waypoints: len(wps),
	})
}
