package construct

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type ioEdge struct {
	Source ResourceId
	Target ResourceId
}

func (e ioEdge) String() string {
	return fmt.Sprintf("%s -> %s", e.Source, e.Target)
}

func (e ioEdge) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *ioEdge) UnmarshalText(data []byte) error {
	source, target, found := strings.Cut(string(data), " -> ")
	if !found {
		return errors.New("invalid edge format, expected `source -> target`")
	}
	return errors.Join(
		e.Source.UnmarshalText([]byte(source)),
		e.Target.UnmarshalText([]byte(target)),
	)
}

type yamlGraph struct {
	Resources map[string]Properties `yaml:"resources"`
	Edges     []string              `yaml:"edges"`
}

// GraphToYAML renders the graph `g` as YAML to `w`. Resources are written in topological order and edges
// sorted, so the output is stable for a given graph.
func GraphToYAML(g Graph, w io.Writer) error {
	topo, err := TopologicalSort(g)
	if err != nil {
		return err
	}
	adj, err := g.AdjacencyMap()
	if err != nil {
		return err
	}

	resources := &yaml.Node{Kind: yaml.MappingNode}
	var edges []string
	for _, rid := range topo {
		r, err := g.Vertex(rid)
		if err != nil {
			return err
		}
		var props yaml.Node
		if err := props.Encode(r.Properties); err != nil {
			return fmt.Errorf("could not encode properties of %s: %w", rid, err)
		}
		resources.Content = append(resources.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: rid.String()},
			&props,
		)
		for _, target := range sortedKeys(adj[rid]) {
			edges = append(edges, ioEdge{Source: rid, Target: target}.String())
		}
	}

	var edgeNode yaml.Node
	if err := edgeNode.Encode(edges); err != nil {
		return err
	}
	doc := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		{Kind: yaml.ScalarNode, Value: "resources"}, resources,
		{Kind: yaml.ScalarNode, Value: "edges"}, &edgeNode,
	}}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// AddFromYAML adds the resources and edges written by [GraphToYAML] to `g`.
func AddFromYAML(g Graph, r io.Reader) error {
	var y yamlGraph
	if err := yaml.NewDecoder(r).Decode(&y); err != nil {
		return err
	}

	names := make([]string, 0, len(y.Resources))
	for name := range y.Resources {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs error
	for _, name := range names {
		var rid ResourceId
		if err := rid.UnmarshalText([]byte(name)); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		props := y.Resources[name]
		if props == nil {
			props = make(Properties)
		}
		errs = errors.Join(errs, g.AddVertex(&Resource{ID: rid, Properties: props}))
	}
	for _, es := range y.Edges {
		var e ioEdge
		if err := e.UnmarshalText([]byte(es)); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		errs = errors.Join(errs, g.AddEdge(e.Source, e.Target))
	}
	return errs
}
