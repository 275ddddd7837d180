package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/spectrokit/spectrokit/internal/analyze"
	"github.com/spectrokit/spectrokit/internal/audio"
	"github.com/spectrokit/spectrokit/internal/cli"
	"github.com/spectrokit/spectrokit/internal/discover"
	"github.com/spectrokit/spectrokit/internal/feature"
	"github.com/spectrokit/spectrokit/internal/logging"
	"github.com/spectrokit/spectrokit/internal/ui"
)

var (
	version = "0.1.0"
)

// CLI defines the command-line interface
type CLI struct {
	Version bool `short:"v" help:"Show version information"`

	Input       string  `short:"i" type:"path" help:"Audio file or directory to analyze"`
	Features    string  `short:"f" help:"Space-separated feature names to compute"`
	SampleSize  int     `help:"Analyze a random sample of this many files"`
	Seed        *int64  `help:"Random seed for reproducible sampling"`
	Labels      string  `help:"Space-separated labels recorded with every result"`
	Duration    float64 `help:"Max seconds of audio to analyze per file"`
	Output      string  `short:"o" type:"path" default:"." help:"Directory to write the JSON report to"`
	ImageOutput string  `type:"path" help:"Directory for per-file spectrogram PNGs (disabled if unset)"`
	Workers     int     `help:"Parallel workers (default: number of CPUs)"`
	CacheDir    string  `type:"path" help:"Optional decode cache directory"`
	KeepCache   bool    `help:"Keep the decode cache after the run"`
	Plain       bool    `help:"Disable the progress UI, log progress instead"`
	Verbose     bool    `help:"Enable debug logging"`
}

func main() {
	cliArgs := &CLI{}
	kctx := kong.Parse(cliArgs,
		kong.Name("spectrokit"),
		kong.Description("Batch audio feature analyzer. Available features: "+strings.Join(feature.Names(), ", ")),
		kong.UsageOnError(),
	)

	if cliArgs.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	if cliArgs.Input == "" || cliArgs.Features == "" {
		cli.PrintError("both --input and --features are required")
		_ = kctx.PrintUsage(false)
		os.Exit(1)
	}

	// The TUI needs a terminal; piped output falls back to plain mode.
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		cliArgs.Plain = true
	}

	// While the TUI owns the terminal, logs go to a debug file.
	logFile := "spectrokit-debug.log"
	if cliArgs.Plain {
		logFile = ""
	}
	if err := logging.Init(logFile, cliArgs.Verbose); err != nil {
		cli.PrintError(fmt.Sprintf("initializing logger: %v", err))
		os.Exit(1)
	}
	defer logging.Sync()

	features := strings.Fields(cliArgs.Features)
	labels := strings.Fields(cliArgs.Labels)

	// Configuration errors are fatal before any file is opened.
	if err := feature.Validate(features); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	files, err := discover.Find(cliArgs.Input)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	if cliArgs.SampleSize > 0 {
		seed := time.Now().UnixNano()
		if cliArgs.Seed != nil {
			seed = *cliArgs.Seed
		}
		fmt.Printf("Using random seed: %d\n", seed)
		files = discover.Sample(files, cliArgs.SampleSize, seed)
	}

	cache, err := audio.NewCache(cliArgs.CacheDir)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	opts := analyze.Options{
		Features:    features,
		Labels:      labels,
		MaxDuration: cliArgs.Duration,
		ImageDir:    cliArgs.ImageOutput,
		Cache:       cache,
	}

	logging.Logger.Info("starting batch",
		zap.Int("files", len(files)),
		zap.Strings("features", features),
		zap.Int("workers", cliArgs.Workers))

	var results []analyze.Result
	var stats analyze.BatchStats
	if cliArgs.Plain {
		results, stats = runPlain(files, opts, cliArgs.Workers)
	} else {
		var aborted bool
		results, stats, aborted = runWithUI(files, opts, cliArgs.Workers)
		if aborted {
			cli.PrintError("aborted")
			os.Exit(1)
		}
	}

	reportPath, err := analyze.WriteReport(cliArgs.Output, labels, results)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	fmt.Printf("Processed %d of %d file(s).\n", stats.Succeeded, stats.Attempted)
	fmt.Printf("Analysis complete. Results saved to '%s'\n", reportPath)

	printSummary(analyze.Summarize(results))

	if cache.Enabled() && !cliArgs.KeepCache {
		if err := cache.Clear(); err != nil {
			logging.Logger.Warn("clearing decode cache", zap.Error(err))
		}
	}
}

// runWithUI drives the batch under the Bubbletea progress display. The
// orchestrator runs in the background and feeds completions to the UI;
// the third return value reports a user abort before the batch finished.
func runWithUI(files []string, opts analyze.Options, workers int, uiOpts ...tea.ProgramOption) ([]analyze.Result, analyze.BatchStats, bool) {
	model := ui.NewModel(len(files))
	p := tea.NewProgram(model, uiOpts...)

	var results []analyze.Result
	var stats analyze.BatchStats
	done := make(chan struct{})

	go func() {
		defer close(done)
		results, stats = analyze.RunBatch(files, opts, workers, func(pr analyze.Progress) {
			p.Send(ui.FileDoneMsg{File: pr.File, Err: pr.Err})
		})
		p.Send(ui.AllDoneMsg{})
	}()

	final, err := p.Run()
	if err != nil {
		cli.PrintError(fmt.Sprintf("UI error: %v", err))
		os.Exit(1)
	}
	// On abort the batch goroutine may still be writing results and
	// stats; report nothing rather than race on them.
	if m, ok := final.(ui.Model); ok && m.Quit {
		return nil, analyze.BatchStats{}, true
	}

	<-done
	return results, stats, false
}

// runPlain drives the batch without a TUI, logging each completion.
func runPlain(files []string, opts analyze.Options, workers int) ([]analyze.Result, analyze.BatchStats) {
	completed := 0
	return analyze.RunBatch(files, opts, workers, func(pr analyze.Progress) {
		completed++
		if pr.Err != nil {
			fmt.Printf("[%d/%d] FAILED %s: %v\n", completed, len(files), pr.File, pr.Err)
			return
		}
		fmt.Printf("[%d/%d] %s\n", completed, len(files), pr.File)
	})
}

// printSummary renders the per-feature statistics table. Features with
// fewer than two values get an explicit insufficient-data marker rather
// than a misleading number.
func printSummary(summary analyze.Summary) {
	if len(summary) == 0 {
		return
	}

	table := &logging.SummaryTable{}
	for _, name := range summary.Features() {
		s := summary[name]
		// A feature that failed on every file still gets a row.
		mean := "no data"
		if s.Count > 0 {
			mean = fmt.Sprintf("%.4f", s.Mean)
		}
		stddev := "insufficient data"
		if s.HasStdDev {
			stddev = fmt.Sprintf("%.4f", s.StdDev)
		} else if s.Count == 0 {
			stddev = "no data"
		}
		table.Rows = append(table.Rows, logging.SummaryRow{
			Feature: name,
			Mean:    mean,
			StdDev:  stddev,
			Count:   fmt.Sprintf("%d", s.Count),
		})
	}

	fmt.Println()
	fmt.Println(cli.TitleStyle.Render("Summary Statistics"))
	fmt.Print(table.String())
}
