package dependency

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gammazero/toposort"

	"github.com/aristath/taskrank/internal/task"
)

// ErrNilTaskMap is returned when a graph is built without a task map.
var ErrNilTaskMap = errors.New("dependency graph requires a task map")

// Cycle is an ordered list of task keys forming a closed dependency loop.
// It starts at the task where the traversal re-entered the loop.
type Cycle []string

// Graph is an index-based view of the dependency edges in a task map.
// A Graph is scoped to a single analysis and is not safe for concurrent use.
type Graph struct {
	ids   []string       // Sorted task keys; position is the node index
	index map[string]int // Task key -> node index
	edges [][]int        // Node -> nodes it depends on (dangling targets dropped)

	computed bool
	cycles   []Cycle
}

// NewGraph builds a graph over tasks. Dependencies that reference keys
// missing from the map are ignored.
func NewGraph(tasks map[string]task.Task) (*Graph, error) {
	if tasks == nil {
		return nil, ErrNilTaskMap
	}

	ids := make([]string, 0, len(tasks))
	for id := range tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	edges := make([][]int, len(ids))
	for i, id := range ids {
		for _, dep := range tasks[id].Dependencies {
			if j, ok := index[dep]; ok {
				edges[i] = append(edges[i], j)
			}
		}
	}

	return &Graph{ids: ids, index: index, edges: edges}, nil
}

// FindCycles detects the cycles in tasks without keeping a graph around.
func FindCycles(tasks map[string]task.Task) ([]Cycle, error) {
	g, err := NewGraph(tasks)
	if err != nil {
		return nil, err
	}
	return g.Cycles(), nil
}

// HasCycle recomputes cycle detection and reports whether any cycle exists.
func (g *Graph) HasCycle() bool {
	g.detect()
	return len(g.cycles) > 0
}

// Cycles returns the detected cycles, running detection on first use.
func (g *Graph) Cycles() []Cycle {
	if !g.computed {
		g.detect()
	}
	return g.cycles
}

// Blocked returns the set of task keys that participate in any cycle.
func (g *Graph) Blocked() map[string]bool {
	blocked := make(map[string]bool)
	for _, cycle := range g.Cycles() {
		for _, id := range cycle {
			blocked[id] = true
		}
	}
	return blocked
}

// detect runs a depth-first traversal from every unvisited node.
// One cycle is recorded per back edge discovered; overlapping loops are not
// exhaustively enumerated.
func (g *Graph) detect() {
	visited := make([]bool, len(g.ids))
	onStack := make([]bool, len(g.ids))
	cycles := []Cycle{}

	var path []int
	var dfs func(node int)
	dfs = func(node int) {
		visited[node] = true
		onStack[node] = true
		path = append(path, node)

		for _, next := range g.edges[node] {
			if onStack[next] {
				cycles = append(cycles, g.cycleFrom(path, next))
				continue
			}
			if !visited[next] {
				dfs(next)
			}
		}

		onStack[node] = false
		path = path[:len(path)-1]
	}

	for node := range g.ids {
		if !visited[node] {
			dfs(node)
		}
	}

	g.cycles = cycles
	g.computed = true
}

// cycleFrom returns the path suffix starting at the first occurrence of start.
func (g *Graph) cycleFrom(path []int, start int) Cycle {
	first := 0
	for i, node := range path {
		if node == start {
			first = i
			break
		}
	}

	cycle := make(Cycle, 0, len(path)-first)
	for _, node := range path[first:] {
		cycle = append(cycle, g.ids[node])
	}
	return cycle
}

// WorkOrder returns the unblocked task keys in dependency order: every task
// appears after the tasks it depends on. Edges to blocked tasks are ignored.
func (g *Graph) WorkOrder() ([]string, error) {
	blocked := g.Blocked()

	var edges []toposort.Edge
	count := 0
	for i, id := range g.ids {
		if blocked[id] {
			continue
		}
		count++

		deps := 0
		for _, j := range g.edges[i] {
			// Skip prerequisites caught in a cycle; they never get an order
			if blocked[g.ids[j]] {
				continue
			}
			edges = append(edges, toposort.Edge{g.ids[j], id})
			deps++
		}
		if deps == 0 {
			// A root task only appears in the sort through a nil source
			edges = append(edges, toposort.Edge{nil, id})
		}
	}

	sorted, err := toposort.Toposort(edges)
	if err != nil {
		return nil, fmt.Errorf("ordering unblocked tasks: %w", err)
	}

	order := make([]string, 0, count)
	for _, id := range sorted {
		if id != nil {
			order = append(order, id.(string))
		}
	}

	if len(order) != count {
		return nil, fmt.Errorf("topological sort lost %d tasks", count-len(order))
	}

	return order, nil
}

// Len returns the number of tasks in the graph.
func (g *Graph) Len() int {
	return len(g.ids)
}
