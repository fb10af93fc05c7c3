package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aristath/taskrank/internal/task"
)

// ErrInvalidPayload is returned when a payload is not a task list or a
// {tasks, config} document.
var ErrInvalidPayload = errors.New("invalid payload")

// Payload is a submitted task set with optional config overrides.
type Payload struct {
	Tasks  []task.Record  `json:"tasks" yaml:"tasks"`
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// ParsePayload decodes a JSON or YAML document that is either a bare list
// of task objects or an object with a tasks list and an optional config
// object.
func ParsePayload(data []byte) (*Payload, error) {
	var doc any

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	} else if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	switch v := doc.(type) {
	case []any:
		tasks, err := toRecords(v)
		if err != nil {
			return nil, err
		}
		return &Payload{Tasks: tasks}, nil

	case map[string]any:
		rawTasks, ok := v["tasks"].([]any)
		if !ok {
			return nil, fmt.Errorf("%w: tasks must be a list", ErrInvalidPayload)
		}
		tasks, err := toRecords(rawTasks)
		if err != nil {
			return nil, err
		}

		p := &Payload{Tasks: tasks}
		if rawCfg, present := v["config"]; present && rawCfg != nil {
			cfg, ok := rawCfg.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: config must be an object", ErrInvalidPayload)
			}
			p.Config = cfg
		}
		return p, nil
	}

	return nil, fmt.Errorf("%w: expected a task list or an object with tasks", ErrInvalidPayload)
}

// ReadPayload reads and parses a task file.
func ReadPayload(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	p, err := ParsePayload(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return p, nil
}

func toRecords(items []any) ([]task.Record, error) {
	records := make([]task.Record, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: task %d is not an object", ErrInvalidPayload, i)
		}
		records = append(records, task.Record(m))
	}
	return records, nil
}
