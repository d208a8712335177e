package graphtest

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dominikbraun/graph"
	"github.com/klothoplatform/lattice/pkg/construct"
	"github.com/stretchr/testify/assert"
)

func AssertGraphEqual(t *testing.T, expect, actual construct.Graph, message string, args ...any) {
	assert := assert.New(t)
	must := func(v any, err error) any {
		if err != nil {
			t.Fatal(err)
		}
		return v
	}

	msg := func(subMessage string) []any {
		if message == "" {
			return []any{subMessage}
		}
		return append([]any{message + ": " + subMessage}, args...)
	}

	assert.Equal(must(expect.Order()), must(actual.Order()), msg("order (# of nodes) mismatch")...)
	assert.Equal(must(expect.Size()), must(actual.Size()), msg("size (# of edges) mismatch")...)

	// Use the string representation to compare the graphs so that the diffs are nicer
	eStr := must(construct.String(expect))
	aStr := must(construct.String(actual))
	assert.Equal(eStr, aStr, msg("graph mismatch")...)
}

// ParseId parses a resource id, failing the test on error.
func ParseId(t *testing.T, s string) construct.ResourceId {
	var id construct.ResourceId
	if err := id.UnmarshalText([]byte(s)); err != nil {
		t.Fatalf("invalid resource id %q: %v", s, err)
	}
	return id
}

// MakeGraph creates a graph from a list of elements which can be of types:
//   - ResourceId : adds an empty resource with the given ID
//   - *Resource : adds the given resource
//   - Edge : adds the given edge (and missing vertices)
//   - string : parses the string as either a ResourceId or an edge `a -> b` and adds it as above
func MakeGraph(t *testing.T, g construct.Graph, elements ...any) construct.Graph {
	must := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	addIfMissing := func(id construct.ResourceId) {
		if _, err := g.Vertex(id); errors.Is(err, graph.ErrVertexNotFound) {
			must(g.AddVertex(construct.CreateResource(id)))
		} else if err != nil {
			t.Fatal(fmt.Errorf("could not check vertex %s: %w", id, err))
		}
	}

	for _, e := range elements {
		if s, ok := e.(string); ok {
			if src, tgt, found := strings.Cut(s, " -> "); found {
				e = construct.Edge{Source: ParseId(t, src), Target: ParseId(t, tgt)}
			} else {
				e = ParseId(t, s)
			}
		}
		switch e := e.(type) {
		case construct.ResourceId:
			addIfMissing(e)

		case *construct.Resource:
			must(g.AddVertex(e))

		case construct.Edge:
			addIfMissing(e.Source)
			addIfMissing(e.Target)
			must(g.AddEdge(e.Source, e.Target))

		default:
			t.Fatalf("invalid element of type %T", e)
		}
	}
	return g
}
