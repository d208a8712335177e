package construct

import (
	"crypto/sha256"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dominikbraun/graph"
)

// Graph is a directed graph of resources. An edge `A -> B` means A depends on B (A references B or must be
// created after it).
type (
	Graph = graph.Graph[ResourceId, *Resource]
	Edge  = graph.Edge[ResourceId]
)

func resourceHash(r *Resource) ResourceId {
	return r.ID
}

func NewGraph() Graph {
	return graph.New(resourceHash, graph.Directed())
}

func NewAcyclicGraph() Graph {
	return graph.New(resourceHash, graph.Directed(), graph.Acyclic(), graph.PreventCycles())
}

// Hash is a sha256 fingerprint of the graph's resource ids and edges. Properties are not included.
func Hash(g Graph) ([]byte, error) {
	sum := sha256.New()
	err := stringTo(g, sum)
	return sum.Sum(nil), err
}

func String(g Graph) (string, error) {
	w := new(strings.Builder)
	err := stringTo(g, w)
	return w.String(), err
}

func stringTo(g Graph, w io.Writer) error {
	topo, err := TopologicalSort(g)
	if err != nil {
		return err
	}
	adjacent, err := g.AdjacencyMap()
	if err != nil {
		return err
	}

	for _, id := range topo {
		if _, err := fmt.Fprintf(w, "%s\n", id); err != nil {
			return err
		}
		targets := make([]ResourceId, 0, len(adjacent[id]))
		for t := range adjacent[id] {
			targets = append(targets, t)
		}
		sort.Sort(sortedIds(targets))

		for _, t := range targets {
			if _, err := fmt.Fprintf(w, "-> %s\n", t); err != nil {
				return err
			}
		}
	}
	return nil
}
