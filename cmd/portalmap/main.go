package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"portalmap.dev/internal/blocklog"
	"portalmap.dev/internal/tuning"
)

const usageExamples = `
Examples:
  convert a block log:
    portalmap -i portal_log.json -o waypoints.txt
    portalmap --input ./logs/1763173039_nether_portal.json --output ./waypoints/portals.txt

  diff two block logs:
    portalmap -d --before old_log.json --after new_log.json -o new_portals.txt

  diff two waypoint files:
    portalmap -d --before old_waypoints.txt --after new_waypoints.txt -o new_portals.txt

  list block logs, newest first:
    portalmap logs -dir ./block_logs -page 2
`

func main() {
	if len(os.Args) >= 2 && os.Args[1] == "logs" {
		os.Exit(logsCmd(os.Args[2:], os.Stdout, os.Stderr))
	}
	os.Exit(convertCmd(os.Args[1:], os.Stdout, os.Stderr))
}

type runConfig struct {
	Input  string
	Before string
	After  string
	Output string
	Report string
	Tuning tuning.Tuning
}

// convertCmd handles both convert mode and diff mode and returns the exit code.
func convertCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("portalmap", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var input, output string
	var diff bool
	fs.StringVar(&input, "i", "", "input block log (.json or .json.zst); required unless -d")
	fs.StringVar(&input, "input", "", "alias for -i")
	fs.StringVar(&output, "o", "", "output waypoint file (required)")
	fs.StringVar(&output, "output", "", "alias for -o")
	fs.BoolVar(&diff, "d", false, "diff mode: write waypoints only for portals new in -after")
	fs.BoolVar(&diff, "diff", false, "alias for -d")
	before := fs.String("before", "", "diff mode: earlier block log or waypoint file")
	after := fs.String("after", "", "diff mode: later block log or waypoint file")
	configPath := fs.String("config", "", "tuning file (YAML, optional)")
	reportPath := fs.String("report", "", "write a zstd-compressed JSONL run report here (optional)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Convert block logger JSON files to Xaero's waypoints, or list portals new since an earlier snapshot.")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Usage: portalmap [flags]")
		fs.PrintDefaults()
		fmt.Fprint(stderr, usageExamples)
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintln(stderr, "unexpected arguments:", strings.Join(fs.Args(), " "))
		return 2
	}

	if strings.TrimSpace(output) == "" {
		fmt.Fprintln(stderr, "missing -o")
		return 2
	}
	if diff {
		if strings.TrimSpace(*before) == "" || strings.TrimSpace(*after) == "" {
			fmt.Fprintln(stderr, "diff mode requires both -before and -after")
			return 2
		}
	} else if strings.TrimSpace(input) == "" {
		fmt.Fprintln(stderr, "convert mode requires -i")
		return 2
	}

	logger := log.New(stdout, "[portalmap] ", log.LstdFlags)

	tune, err := tuning.Load(*configPath)
	if err != nil {
		logger.Printf("load tuning: %v", err)
		return 1
	}

	cfg := runConfig{
		Input:  input,
		Before: *before,
		After:  *after,
		Output: output,
		Report: *reportPath,
		Tuning: tune,
	}
	if diff {
		err = runDiff(cfg, logger)
	} else {
		err = runConvert(cfg, logger)
	}
	if err != nil {
		logger.Printf("error: %v", err)
		return 1
	}
	return 0
}

// logsPageSize matches the in-game log listing.
const logsPageSize = 8

func logsCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("logs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dir := fs.String("dir", "./block_logs", "block log directory")
	page := fs.Int("page", 1, "page to show, "+strconv.Itoa(logsPageSize)+" logs per page")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintln(stderr, "unexpected arguments:", strings.Join(fs.Args(), " "))
		return 2
	}

	ents, err := blocklog.List(*dir)
	if err != nil {
		fmt.Fprintln(stderr, "read:", err)
		return 1
	}
	if len(ents) == 0 {
		fmt.Fprintln(stdout, "no block logs in", *dir)
		return 0
	}

	maxPage := (len(ents) + logsPageSize - 1) / logsPageSize
	if *page < 1 || *page > maxPage {
		fmt.Fprintf(stderr, "invalid -page %d: must be between 1 and %d\n", *page, maxPage)
		return 2
	}
	start := (*page - 1) * logsPageSize
	end := start + logsPageSize
	if end > len(ents) {
		end = len(ents)
	}

	fmt.Fprintf(stdout, "block logs (page %d/%d):\n", *page, maxPage)
	for _, e := range ents[start:end] {
		if e.Err != nil {
			fmt.Fprintf(stdout, "%s (unreadable: %v)\n", e.Name, e.Err)
			continue
		}
		blockType := e.BlockType
		if blockType == "" {
			blockType = "unknown"
		}
		fmt.Fprintf(stdout, "%s (%s, %d blocks)\n", e.Name, strings.TrimPrefix(blockType, "minecraft:"), e.Blocks)
	}
	if *page < maxPage {
		fmt.Fprintf(stdout, "use -page %d for more logs\n", *page+1)
	}
	return 0
}
