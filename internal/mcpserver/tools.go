package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aristath/taskrank/internal/analysis"
)

func registerTools(s *server.MCPServer, analyzer *analysis.Analyzer) {
	analyzeTasks := mcp.NewTool("analyze_tasks",
		mcp.WithDescription("Rank tasks by urgency, importance, effort and how many other tasks depend on them. Tasks caught in a dependency cycle are reported as blocked."),
		mcp.WithString("tasks",
			mcp.Description(`JSON array of tasks, or an object {"tasks": [...], "config": {...}}. Task fields: id, title, due_date (YYYY-MM-DD), estimated_hours, importance (1-10), dependencies (list of ids)`),
			mcp.Required(),
		),
		mcp.WithString("config",
			mcp.Description("Optional JSON object of scoring overrides, e.g. {\"weight_urgency\": 2, \"urgency_mode\": \"threshold\"}"),
		),
	)

	suggestTasks := mcp.NewTool("suggest_tasks",
		mcp.WithDescription("Suggest the top tasks to work on today, with a short reason for each."),
		mcp.WithString("tasks",
			mcp.Description("JSON array of tasks, same shape as analyze_tasks"),
			mcp.Required(),
		),
		mcp.WithString("config",
			mcp.Description("Optional JSON object of scoring overrides"),
		),
		mcp.WithNumber("top_n",
			mcp.Description("Number of suggestions to return (default 3)"),
		),
	)

	s.AddTool(analyzeTasks, makeAnalyzeHandler(analyzer))
	s.AddTool(suggestTasks, makeSuggestHandler(analyzer))
}

func makeAnalyzeHandler(analyzer *analysis.Analyzer) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		payload, err := readPayload(request)
		if err != nil {
			return errorResult(err), nil
		}

		report, err := analyzer.Analyze(payload.Tasks, payload.Config)
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(report), nil
	}
}

func makeSuggestHandler(analyzer *analysis.Analyzer) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		payload, err := readPayload(request)
		if err != nil {
			return errorResult(err), nil
		}

		topN := int(request.GetFloat("top_n", analysis.DefaultTopN))
		suggestions, err := analyzer.Suggest(payload.Tasks, payload.Config, topN)
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(suggestions), nil
	}
}

// readPayload decodes the tasks argument and merges the separate config
// argument over any config embedded in it.
func readPayload(request mcp.CallToolRequest) (*analysis.Payload, error) {
	raw := request.GetString("tasks", "")
	if raw == "" {
		return nil, fmt.Errorf("tasks is required")
	}

	payload, err := analysis.ParsePayload([]byte(raw))
	if err != nil {
		return nil, err
	}

	if rawCfg := request.GetString("config", ""); rawCfg != "" {
		var overrides map[string]any
		if err := json.Unmarshal([]byte(rawCfg), &overrides); err != nil {
			return nil, fmt.Errorf("config must be a JSON object: %w", err)
		}
		if payload.Config == nil {
			payload.Config = overrides
		} else {
			for k, v := range overrides {
				payload.Config[k] = v
			}
		}
	}

	return payload, nil
}
