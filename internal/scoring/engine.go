package scoring

import (
	"errors"
	"sort"
	"time"

	"github.com/aristath/taskrank/internal/task"
)

// ErrNilConfig is returned by NewEngine when no scoring config is supplied.
var ErrNilConfig = errors.New("scoring: nil config")

// Scored pairs a task with its computed score.
type Scored struct {
	Task  task.Task `json:"task"`
	Score float64   `json:"score"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the source of "today" used for urgency. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine combines the four scoring factors into one weighted score.
// It holds a private copy of its Config and is safe for concurrent use.
type Engine struct {
	cfg Config
	now func() time.Time
}

// NewEngine creates an engine for cfg. The config is copied, so later
// changes to *cfg do not affect the engine.
func NewEngine(cfg *Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	e := &Engine{cfg: *cfg, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the engine's scoring config.
func (e *Engine) Config() Config {
	return e.cfg
}

// Today returns the current calendar date according to the engine's clock.
func (e *Engine) Today() time.Time {
	return task.Date(e.now())
}

// ScoreTask returns the flat weighted sum of t's factors. taskMap supplies
// the other tasks for the dependency fan-in.
func (e *Engine) ScoreTask(t task.Task, taskMap map[string]task.Task) float64 {
	return e.score(t, DependencyScore(t, taskMap), e.Today())
}

// ScoreTasks scores every task against a map built from tasks and returns
// the results sorted by score, highest first. Equal scores keep input order.
func (e *Engine) ScoreTasks(tasks []task.Task) []Scored {
	fanIn := FanIn(task.Map(tasks))
	today := e.Today()

	results := make([]Scored, 0, len(tasks))
	for _, t := range tasks {
		results = append(results, Scored{Task: t, Score: e.score(t, fanIn[t.Key()], today)})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

func (e *Engine) score(t task.Task, dependents int, today time.Time) float64 {
	return e.cfg.WeightUrgency*Urgency(t, e.cfg, today) +
		e.cfg.WeightImportance*Importance(t) +
		e.cfg.WeightEffort*Effort(t) +
		e.cfg.WeightDependency*float64(dependents)
}
