package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aristath/taskrank/internal/analysis"
	"github.com/aristath/taskrank/internal/client"
	"github.com/aristath/taskrank/internal/config"
	"github.com/aristath/taskrank/internal/report"
	"github.com/aristath/taskrank/internal/watch"
)

type analyzeOptions struct {
	sets     []string
	asJSON   bool
	explain  bool
	width    int
	server   string
	watch    bool
	parallel int
}

func newAnalyzeCmd(a *app) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze FILE...",
		Short: "Rank the tasks in one or more task files",
		Long: `Analyze ranks every task in each file. Several files are analyzed
independently and in parallel.

Scoring overrides come from the file's "config" object and from --set,
which wins. Values are parsed as YAML, so --set weight_urgency=2 is a
number and --set q_multipliers.Q1_TOP=1.5 sets one quadrant multiplier.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := parseSets(opts.sets)
			if err != nil {
				return err
			}

			run := func(ctx context.Context) error {
				return a.runAnalyze(ctx, cmd.OutOrStdout(), args, overrides, opts)
			}
			if err := run(cmd.Context()); err != nil {
				return err
			}
			if !opts.watch {
				return nil
			}
			return a.watchFiles(cmd.Context(), args, run)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&opts.sets, "set", nil, "scoring override as key=value (repeatable)")
	flags.BoolVar(&opts.asJSON, "json", false, "print the report as JSON")
	flags.BoolVarP(&opts.explain, "explain", "e", false, "show why each task scored as it did")
	flags.IntVar(&opts.width, "width", 0, "draw the report in a box this many columns wide")
	flags.StringVar(&opts.server, "server", "", "analyze on a remote taskrank server (e.g. http://localhost:8080)")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "re-run whenever a task file changes")
	flags.IntVar(&opts.parallel, "parallel", analysis.DefaultBatchLimit, "files analyzed at once")

	return cmd
}

func (a *app) runAnalyze(ctx context.Context, out io.Writer, files []string, sets map[string]any, opts *analyzeOptions) error {
	batches, err := readBatches(files, sets)
	if err != nil {
		return err
	}

	var results []analysis.BatchResult
	if opts.server != "" {
		results, err = a.analyzeRemote(ctx, opts.server, batches)
	} else {
		results, err = a.analyzer().AnalyzeBatch(ctx, batches, opts.parallel)
	}
	if err != nil {
		return err
	}

	for i, res := range results {
		if res.Err != nil {
			return fmt.Errorf("%s: %w", res.Name, res.Err)
		}
		if opts.asJSON {
			if err := writeJSON(out, res.Report); err != nil {
				return err
			}
			continue
		}
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, res.Name)
		}
		fmt.Fprint(out, report.Render(res.Report, report.Options{Width: opts.width, Explain: opts.explain}))
	}
	return nil
}

// analyzeRemote sends each batch to a taskrank server in turn.
func (a *app) analyzeRemote(ctx context.Context, baseURL string, batches []analysis.Batch) ([]analysis.BatchResult, error) {
	c, err := client.New(baseURL, client.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}

	results := make([]analysis.BatchResult, len(batches))
	for i, b := range batches {
		rep, err := c.Analyze(ctx, analysis.Payload{Tasks: b.Tasks, Config: b.Config})
		results[i] = analysis.BatchResult{Name: b.Name, Report: rep, Err: err}
	}
	return results, nil
}

func (a *app) watchFiles(ctx context.Context, files []string, run func(context.Context) error) error {
	w, err := watch.New(files, watch.WithBus(a.bus), watch.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.logger.Info("watching for changes", "files", len(files))

	return w.Run(ctx, func(ctx context.Context, changed []string) {
		if err := run(ctx); err != nil {
			a.logger.Error("analysis failed", "error", err)
		}
	})
}

// readBatches reads every file and layers sets over each file's own config.
func readBatches(files []string, sets map[string]any) ([]analysis.Batch, error) {
	batches := make([]analysis.Batch, 0, len(files))
	for _, f := range files {
		p, err := analysis.ReadPayload(f)
		if err != nil {
			return nil, err
		}
		batches = append(batches, analysis.Batch{
			Name:   filepath.Base(f),
			Tasks:  p.Tasks,
			Config: config.MergeMaps(p.Config, sets),
		})
	}
	return batches, nil
}

// parseSets turns key=value flags into an override map. A dotted key sets
// one entry of a nested table.
func parseSets(sets []string) (map[string]any, error) {
	out := make(map[string]any, len(sets))
	for _, s := range sets {
		key, raw, ok := strings.Cut(s, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", s)
		}

		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("invalid --set %q: %w", s, err)
		}

		table, entry, nested := strings.Cut(key, ".")
		if !nested {
			out[key] = value
			continue
		}
		m, _ := out[table].(map[string]any)
		if m == nil {
			m = make(map[string]any)
			out[table] = m
		}
		m[entry] = value
	}
	return out, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
