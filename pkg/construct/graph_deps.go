package construct

import (
	"sort"
)

// DirectDependencies returns the resources `r` depends on directly, sorted.
func DirectDependencies(g Graph, r ResourceId) ([]ResourceId, error) {
	adj, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}
	return sortedKeys(adj[r]), nil
}

// DirectDependents returns the resources that depend on `r` directly, sorted.
func DirectDependents(g Graph, r ResourceId) ([]ResourceId, error) {
	pred, err := g.PredecessorMap()
	if err != nil {
		return nil, err
	}
	return sortedKeys(pred[r]), nil
}

// AllDependencies returns all the transitive dependencies of `r` in breadth-first order.
// For A -> B -> C -> D the dependencies of B are [C, D].
func AllDependencies(g Graph, r ResourceId) ([]ResourceId, error) {
	adj, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}
	return bfs(adj, r), nil
}

// AllDependents returns all the transitive dependents of `r` in breadth-first order.
// For A -> B -> C -> D the dependents of C are [B, A].
func AllDependents(g Graph, r ResourceId) ([]ResourceId, error) {
	pred, err := g.PredecessorMap()
	if err != nil {
		return nil, err
	}
	return bfs(pred, r), nil
}

func sortedKeys(m map[ResourceId]Edge) []ResourceId {
	ids := make([]ResourceId, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Sort(sortedIds(ids))
	return ids
}

func bfs(deps map[ResourceId]map[ResourceId]Edge, r ResourceId) []ResourceId {
	visited := map[ResourceId]struct{}{r: {}}
	queue := sortedKeys(deps[r])
	var ids []ResourceId
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}
		ids = append(ids, id)
		queue = append(queue, sortedKeys(deps[id])...)
	}
	return ids
}
