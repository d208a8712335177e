package construct

import (
	"errors"
	"fmt"
	"sort"
)

// sortedIds sorts ResourceIds purely by their content, for use when deterministic ordering is desired.
type sortedIds []ResourceId

func (s sortedIds) Len() int {
	return len(s)
}

func ResourceIdLess(a, b ResourceId) bool {
	if a.Provider != b.Provider {
		return a.Provider < b.Provider
	}
	if a.Type != b.Type {
		return a.Type < b.Type
	}
	if a.Namespace != b.Namespace {
		return a.Namespace < b.Namespace
	}
	return a.Name < b.Name
}

func (s sortedIds) Less(i, j int) bool {
	return ResourceIdLess(s[i], s[j])
}

func (s sortedIds) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

// TopologicalSort provides a stable topological ordering of resource IDs: dependents come before their
// dependencies, ties are broken by [ResourceIdLess].
func TopologicalSort(g Graph) ([]ResourceId, error) {
	if !g.Traits().IsDirected {
		return nil, fmt.Errorf("topological sort cannot be computed on undirected graph")
	}
	predecessors, err := g.PredecessorMap()
	if err != nil {
		return nil, fmt.Errorf("failed to get predecessor map: %w", err)
	}
	adjacent, err := g.AdjacencyMap()
	if err != nil {
		return nil, fmt.Errorf("failed to get adjacency map: %w", err)
	}

	remaining := make(map[ResourceId]int, len(predecessors))
	var queue []ResourceId
	for id, preds := range predecessors {
		remaining[id] = len(preds)
		if len(preds) == 0 {
			queue = append(queue, id)
		}
	}
	sort.Sort(sortedIds(queue))

	order := make([]ResourceId, 0, len(predecessors))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		var frontier []ResourceId
		for next := range adjacent[current] {
			remaining[next]--
			if remaining[next] == 0 {
				frontier = append(frontier, next)
			}
		}
		sort.Sort(sortedIds(frontier))
		queue = append(queue, frontier...)
	}

	if len(order) != len(predecessors) {
		return nil, fmt.Errorf("graph contains a cycle: sorted %d of %d resources", len(order), len(predecessors))
	}
	return order, nil
}

func reverseInplace[E any](a []E) {
	for i := 0; i < len(a)/2; i++ {
		a[i], a[len(a)-i-1] = a[len(a)-i-1], a[i]
	}
}

// ReverseTopologicalSort is like TopologicalSort, but returns the reverse order: the order in which resources
// need to be created.
func ReverseTopologicalSort(g Graph) ([]ResourceId, error) {
	topo, err := TopologicalSort(g)
	if err != nil {
		return nil, err
	}
	reverseInplace(topo)
	return topo, nil
}

// WalkGraphFunc is much like `fs.WalkDirFunc` and is used in `WalkGraph` and `WalkGraphReverse` for the callback
// during graph traversal. Return `StopWalk` to end the walk.
type WalkGraphFunc func(id ResourceId, resource *Resource, nerr error) error

// StopWalk is a special error that can be returned from WalkGraphFunc to stop walking the graph.
var StopWalk = errors.New("stop walking")

func walkGraph(g Graph, ids []ResourceId, fn WalkGraphFunc) (err error) {
	for _, id := range ids {
		v, verr := g.Vertex(id)
		err = fn(id, v, errors.Join(err, verr))
		if errors.Is(err, StopWalk) {
			return nil
		}
	}
	return err
}

func WalkGraph(g Graph, fn WalkGraphFunc) error {
	topo, err := TopologicalSort(g)
	if err != nil {
		return err
	}
	return walkGraph(g, topo, fn)
}

func WalkGraphReverse(g Graph, fn WalkGraphFunc) error {
	topo, err := ReverseTopologicalSort(g)
	if err != nil {
		return err
	}
	return walkGraph(g, topo, fn)
}
