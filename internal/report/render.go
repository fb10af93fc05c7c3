// Package report renders analysis results for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aristath/taskrank/internal/analysis"
	"github.com/aristath/taskrank/internal/dependency"
)

const (
	barWidth   = 20
	titleWidth = 32
)

// Options controls what Render includes.
type Options struct {
	Width   int  // Total width of the boxed output, 0 for unboxed
	Explain bool // Show the explanation line under each task
}

// Render formats a report as ranked sections: priorities, blocked tasks,
// validation warnings, and the suggested work order.
func Render(r *analysis.Report, opts Options) string {
	var b strings.Builder

	heading(&b, "Task Priorities")
	if len(r.PriorityList) == 0 {
		b.WriteString(StyleMuted.Render("No unblocked tasks."))
		b.WriteString("\n")
	}
	top := topScore(r)
	for i, st := range r.PriorityList {
		writeTask(&b, i+1, st, top, opts.Explain)
	}

	if len(r.BlockedTasks) > 0 {
		b.WriteString("\n")
		heading(&b, "Blocked by circular dependencies")
		for _, cycle := range r.Cycles {
			b.WriteString(StyleBlocked.Render("  cycle: " + FormatCycle(cycle)))
			b.WriteString("\n")
		}
		for _, st := range r.BlockedTasks {
			fmt.Fprintf(&b, "  %s  %s\n", StyleBlocked.Render("blocked"), st.Title)
		}
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\n")
		heading(&b, "Needs attention")
		for _, w := range r.Warnings {
			msgs := make([]string, 0, len(w.Issues))
			for _, issue := range w.Issues {
				msgs = append(msgs, issue.Message)
			}
			fmt.Fprintf(&b, "  %s %s\n", StyleWarning.Render(w.ID+":"), strings.Join(msgs, "; "))
		}
	}

	if len(r.WorkOrder) > 1 {
		b.WriteString("\n")
		heading(&b, "Work order")
		b.WriteString("  " + strings.Join(r.WorkOrder, " -> "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleMuted.Render("run " + r.RunID))

	content := b.String()
	if opts.Width > 0 {
		return StyleBox.Width(opts.Width - 2).Render(content)
	}
	return content + "\n"
}

// RenderSuggestions formats suggestions as a short numbered list.
func RenderSuggestions(suggestions []analysis.Suggestion) string {
	var b strings.Builder

	heading(&b, "Suggested for today")
	if len(suggestions) == 0 {
		b.WriteString(StyleMuted.Render("Nothing to suggest."))
		b.WriteString("\n")
		return b.String()
	}

	for i, s := range suggestions {
		fmt.Fprintf(&b, "%2d. %s  %s\n", i+1, s.Title, StyleScore.Render(fmt.Sprintf("%.2f", s.Score)))
		fmt.Fprintf(&b, "    %s\n", StyleMuted.Render(fmt.Sprintf("%s (due %s)", s.Reason, s.DueDate)))
	}
	return b.String()
}

// FormatCycle renders a cycle as a closed loop, e.g. "A -> B -> A".
func FormatCycle(c dependency.Cycle) string {
	if len(c) == 0 {
		return ""
	}
	return strings.Join(append(append([]string{}, c...), c[0]), " -> ")
}

func heading(b *strings.Builder, text string) {
	title := StyleTitle.Render(text)
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", lipgloss.Width(title)))
	b.WriteString("\n")
}

func writeTask(b *strings.Builder, rank int, st analysis.ScoredTask, top float64, explain bool) {
	title := lipgloss.NewStyle().Width(titleWidth).MaxWidth(titleWidth).Render(st.Title)

	due := st.DueDate
	if st.Breakdown.Overdue() {
		due = StyleOverdue.Render(due)
	}

	fmt.Fprintf(b, "%2d. %s [%s] %s  due %s\n",
		rank, title, scoreBar(st.Score, top), StyleScore.Render(fmt.Sprintf("%6.2f", st.Score)), due)

	if explain && st.Explanation != "" {
		fmt.Fprintf(b, "    %s\n", StyleMuted.Render(st.Explanation))
	}
}

func scoreBar(score, top float64) string {
	filled := 0
	if top > 0 && score > 0 {
		filled = int(score / top * barWidth)
	}
	filled = min(max(filled, 0), barWidth)
	return strings.Repeat("=", filled) + strings.Repeat(".", barWidth-filled)
}

func topScore(r *analysis.Report) float64 {
	top := 0.0
	for _, st := range r.PriorityList {
		top = max(top, st.Score)
	}
	return top
}
