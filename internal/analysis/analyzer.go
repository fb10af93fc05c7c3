package analysis

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/aristath/taskrank/internal/config"
	"github.com/aristath/taskrank/internal/dependency"
	"github.com/aristath/taskrank/internal/events"
	"github.com/aristath/taskrank/internal/logging"
	"github.com/aristath/taskrank/internal/scoring"
	"github.com/aristath/taskrank/internal/task"
)

// ErrInvalidConfig is returned when config overrides cannot be applied.
var ErrInvalidConfig = errors.New("invalid config overrides")

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger. Defaults to discarding output.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = logging.OrDiscard(l) }
}

// WithBus attaches an event bus that receives analysis lifecycle events.
func WithBus(b *events.Bus) Option {
	return func(a *Analyzer) { a.bus = b }
}

// WithClock sets the source of the current date. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// Analyzer runs the validate, normalize, cycle detection and scoring
// pipeline over submitted task records. It keeps no state between runs
// and is safe for concurrent use.
type Analyzer struct {
	base      *config.Config
	logger    *slog.Logger
	bus       *events.Bus
	now       func() time.Time
	validator task.Validator
}

// New creates an Analyzer whose runs start from base. A nil base uses the
// built-in defaults.
func New(base *config.Config, opts ...Option) *Analyzer {
	if base == nil {
		base = config.Default()
	}
	a := &Analyzer{
		base:   base.Clone(),
		logger: logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Config returns a copy of the analyzer's base config.
func (a *Analyzer) Config() *config.Config {
	return a.base.Clone()
}

// entry is one surviving record after key collisions are resolved.
type entry struct {
	task   task.Task
	issues []task.ValidationIssue
}

// Analyze scores records under the base config with overrides applied.
// Records with validation issues are still analyzed and are listed in
// both Warnings and NeedsAttention.
func (a *Analyzer) Analyze(records []task.Record, overrides map[string]any) (*Report, error) {
	cfg, err := a.base.Apply(overrides)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	started := a.now()
	today := task.Date(started)
	runID := uuid.NewString()
	logger := a.logger.With("run_id", runID)

	a.bus.Publish(events.TopicAnalysis, events.AnalysisStartedEvent{
		ID:        runID,
		Tasks:     len(records),
		Timestamp: started,
	})
	logger.Debug("analysis started", "tasks", len(records))

	report := &Report{
		RunID:          runID,
		PriorityList:   []ScoredTask{},
		BlockedTasks:   []ScoredTask{},
		NeedsAttention: []ScoredTask{},
		Warnings:       []Warning{},
		ConfigUsed:     config.MergeMaps(a.base.ToMap(), overrides),
	}

	// Validate and normalize. Later records replace earlier ones that share
	// a key, but keep the earlier record's position.
	entries := make(map[string]entry, len(records))
	order := make([]string, 0, len(records))
	for idx, rec := range records {
		ok, issues := a.validator.Validate(rec)
		t := Normalize(rec, cfg, today)

		if !ok {
			id := t.ID
			if id == "" {
				id = fmt.Sprintf("idx_%d", idx)
			}
			report.Warnings = append(report.Warnings, Warning{ID: id, Issues: issues})
			logger.Debug("task has validation issues", "task", id, "issues", len(issues))
		} else {
			issues = nil
		}

		key := t.Key()
		if _, seen := entries[key]; !seen {
			order = append(order, key)
		}
		entries[key] = entry{task: t, issues: issues}
	}

	taskMap := make(map[string]task.Task, len(entries))
	for key, e := range entries {
		taskMap[key] = e.task
	}

	graph, err := dependency.NewGraph(taskMap)
	if err != nil {
		return nil, fmt.Errorf("building dependency graph: %w", err)
	}
	report.Cycles = graph.Cycles()
	blocked := graph.Blocked()
	for _, cycle := range report.Cycles {
		logger.Warn("dependency cycle detected", "cycle", cycle)
		a.bus.Publish(events.TopicAnalysis, events.CycleDetectedEvent{
			ID:        runID,
			Cycle:     cycle,
			Timestamp: a.now(),
		})
	}

	scoringCfg := cfg.Scoring()
	engine, err := scoring.NewEngine(&scoringCfg, scoring.WithClock(func() time.Time { return started }))
	if err != nil {
		return nil, err
	}

	scored := make([]ScoredTask, 0, len(order))
	for _, key := range order {
		e := entries[key]
		scored = append(scored, a.scoreTask(engine, cfg, e, key, taskMap, blocked[key]))
	}
	sortByScore(scored)

	for _, st := range scored {
		if st.Blocked {
			report.BlockedTasks = append(report.BlockedTasks, st)
		} else {
			report.PriorityList = append(report.PriorityList, st)
		}
		if len(st.Issues) > 0 {
			report.NeedsAttention = append(report.NeedsAttention, st)
		}
	}

	report.WorkOrder, err = graph.WorkOrder()
	if err != nil {
		logger.Warn("work order unavailable", "error", err)
		report.WorkOrder = []string{}
	}

	duration := time.Since(started)
	a.bus.Publish(events.TopicAnalysis, events.AnalysisCompletedEvent{
		ID:        runID,
		Ranked:    len(report.PriorityList),
		Blocked:   len(report.BlockedTasks),
		Warnings:  len(report.Warnings),
		Duration:  duration,
		Timestamp: a.now(),
	})
	logger.Info("analysis completed",
		"tasks", len(scored),
		"blocked", len(report.BlockedTasks),
		"warnings", len(report.Warnings),
		"cycles", len(report.Cycles),
	)

	return report, nil
}

func (a *Analyzer) scoreTask(engine *scoring.Engine, cfg *config.Config, e entry, key string, taskMap map[string]task.Task, blocked bool) ScoredTask {
	t := e.task
	b := engine.Breakdown(t, taskMap)

	st := ScoredTask{
		ID:             t.ID,
		Key:            key,
		Title:          t.Title,
		DueDate:        t.DueDate.Format(task.DateLayout),
		EstimatedHours: t.EstimatedHours,
		Importance:     t.Importance,
		Dependencies:   t.Dependencies,
		Score:          b.Total,
		Explanation:    b.Explain(),
		Breakdown:      b,
		Blocked:        blocked,
		Issues:         e.issues,
	}

	if cfg.EnableEisenhower {
		st.Quadrant = scoring.Classify(b, cfg.ImportantThreshold, cfg.UrgencyThreshold)
		st.Breakdown = b.Scale(cfg.Multiplier(st.Quadrant))
		st.Score = st.Breakdown.Total
		st.Explanation = st.Breakdown.Explain()
	}
	return st
}

func sortByScore(tasks []ScoredTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Score > tasks[j].Score
	})
}
