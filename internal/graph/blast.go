// Package graph computes blast-radius reachability over the dependency
// edges persisted by internal/store: direct imports/dependents and the
// transitive dependent set reached by BFS.
package graph

import "github.com/ctxagent/ctx/internal/store"

// Risk categorizes a file's blast radius per spec.md §4.4.
type Risk string

const (
	RiskLow      Risk = "low"
	RiskMedium   Risk = "medium"
	RiskHigh     Risk = "high"
	RiskCritical Risk = "critical"
)

// BlastRadius is the full answer for one file.
type BlastRadius struct {
	FileID               int64   `json:"file_id"`
	DirectImports        []int64 `json:"direct_imports"`
	DirectDependents     []int64 `json:"direct_dependents"`
	TransitiveDependents []int64 `json:"transitive_dependents"`
	MaxDepth             int     `json:"max_depth"`
	Risk                 Risk    `json:"risk"`
}

// Compute resolves imports/dependents for fileID and BFS-walks the
// reverse adjacency map to find every transitive dependent, visiting
// each node at most once so import cycles terminate.
func Compute(s *store.Store, fileID int64, churnScore float64) (BlastRadius, error) {
	imports, err := s.ImportsOf(fileID)
	if err != nil {
		return BlastRadius{}, err
	}
	dependents, err := s.DependentsOf(fileID)
	if err != nil {
		return BlastRadius{}, err
	}
	reverse, err := s.ReverseAdjacency()
	if err != nil {
		return BlastRadius{}, err
	}

	transitive, depth := bfs(fileID, reverse)

	br := BlastRadius{
		FileID:               fileID,
		DirectImports:        imports,
		DirectDependents:     dependents,
		TransitiveDependents: transitive,
		MaxDepth:             depth,
	}
	br.Risk = categorize(len(dependents), churnScore)
	return br, nil
}

// bfs walks reverse edges (target -> sources) breadth-first from root,
// returning every node reached (excluding root itself) and the max depth.
func bfs(root int64, reverse map[int64][]int64) ([]int64, int) {
	visited := map[int64]bool{root: true}
	queue := []int64{root}
	depths := map[int64]int{root: 0}

	var order []int64
	maxDepth := 0
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, src := range reverse[node] {
			if visited[src] {
				continue
			}
			visited[src] = true
			depths[src] = depths[node] + 1
			if depths[src] > maxDepth {
				maxDepth = depths[src]
			}
			order = append(order, src)
			queue = append(queue, src)
		}
	}
	return order, maxDepth
}

// categorize implements spec.md §4.4's risk thresholds.
func categorize(directDependents int, churnScore float64) Risk {
	switch {
	case churnScore > 5.0 && directDependents > 3:
		return RiskCritical
	case directDependents > 10:
		return RiskCritical
	case directDependents >= 4:
		return RiskHigh
	case directDependents >= 1:
		return RiskMedium
	default:
		return RiskLow
	}
}
