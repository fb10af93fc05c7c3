package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aristath/taskrank/internal/analysis"
	"github.com/aristath/taskrank/internal/task"
)

type analyzeRequest struct {
	Tasks  []task.Record  `json:"tasks" binding:"required"`
	Config map[string]any `json:"config"`
}

// suggestRequest has optional tasks: an empty request yields no suggestions.
type suggestRequest struct {
	Tasks  []task.Record  `json:"tasks"`
	Config map[string]any `json:"config"`
}

type batchRequest struct {
	Batches []struct {
		Name   string         `json:"name"`
		Tasks  []task.Record  `json:"tasks" binding:"required"`
		Config map[string]any `json:"config"`
	} `json:"batches" binding:"required"`
	Limit int `json:"limit"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}

	report, err := s.analyzer.Analyze(req.Tasks, req.Config)
	if err != nil {
		s.analysisFailed(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": report})
}

func (s *Server) handleSuggest(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		invalidPayload(c, err)
		return
	}

	if len(req.Tasks) == 0 {
		c.JSON(http.StatusOK, gin.H{"results": []analysis.Suggestion{}, "message": "no_tasks_provided"})
		return
	}

	topN, err := strconv.Atoi(c.Query("top_n"))
	if err != nil || topN <= 0 {
		topN = analysis.DefaultTopN
	}

	suggestions, err := s.analyzer.Suggest(req.Tasks, req.Config, topN)
	if err != nil {
		s.analysisFailed(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": suggestions})
}

func (s *Server) handleBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}

	batches := make([]analysis.Batch, 0, len(req.Batches))
	for _, b := range req.Batches {
		batches = append(batches, analysis.Batch{Name: b.Name, Tasks: b.Tasks, Config: b.Config})
	}

	results, err := s.analyzer.AnalyzeBatch(c.Request.Context(), batches, req.Limit)
	if err != nil {
		s.analysisFailed(c, err)
		return
	}

	out := make([]gin.H, 0, len(results))
	for _, r := range results {
		item := gin.H{"name": r.Name}
		if r.Err != nil {
			item["error"] = errorCode(r.Err)
			item["details"] = r.Err.Error()
		} else {
			item["results"] = r.Report
		}
		out = append(out, item)
	}
	c.JSON(http.StatusOK, gin.H{"results": out})
}

func invalidPayload(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "invalid_payload",
		"details": err.Error(),
	})
}

func (s *Server) analysisFailed(c *gin.Context, err error) {
	code := errorCode(err)
	status := http.StatusInternalServerError
	if code == "invalid_config" {
		status = http.StatusBadRequest
	} else {
		s.logger.Error("analysis failed", "error", err)
	}

	c.JSON(status, gin.H{
		"error":   code,
		"details": err.Error(),
	})
}

func errorCode(err error) string {
	if errors.Is(err, analysis.ErrInvalidConfig) {
		return "invalid_config"
	}
	return "analysis_failed"
}
