package cfn

import (
	"errors"
	"fmt"

	"github.com/dominikbraun/graph"
	"github.com/klothoplatform/lattice/pkg/construct"
	"go.uber.org/zap"
)

// Provider is the provider of every resource a Stack holds.
const Provider = "aws"

type (
	// Stack collects the resources of a single CloudFormation template. Resources are vertices of an acyclic
	// graph, edges point from a resource to the resources it references.
	Stack struct {
		Name        string
		Description string

		graph      construct.Graph
		parameters map[string]Parameter
		outputs    map[string]Output
	}

	Parameter struct {
		Type        string `json:"Type"`
		Description string `json:"Description,omitempty"`
		Default     any    `json:"Default,omitempty"`
	}

	Output struct {
		Value       any    `json:"Value"`
		Description string `json:"Description,omitempty"`
		ExportName  string `json:"-"`
	}
)

func NewStack(name string) *Stack {
	return &Stack{
		Name:       name,
		graph:      construct.NewAcyclicGraph(),
		parameters: make(map[string]Parameter),
		outputs:    make(map[string]Output),
	}
}

func (s *Stack) Graph() construct.Graph {
	return s.graph
}

// Id returns the id of a resource of type `resourceType` at construct path `path` in this stack.
func (s *Stack) Id(resourceType, path string) construct.ResourceId {
	return construct.ResourceId{Provider: Provider, Type: resourceType, Name: path}
}

// AddResource adds `r` to the stack together with edges to every resource its properties reference. All
// referenced resources must already be in the stack.
func (s *Stack) AddResource(r *construct.Resource) error {
	if err := r.ID.Validate(); err != nil {
		return fmt.Errorf("invalid resource id %s: %w", r.ID, err)
	}
	if _, err := ResourceType(r.ID); err != nil {
		return err
	}
	if r.Properties == nil {
		r.Properties = make(construct.Properties)
	}
	if err := s.checkReferences(r); err != nil {
		return err
	}
	if err := s.graph.AddVertex(r); err != nil {
		if errors.Is(err, graph.ErrVertexAlreadyExists) {
			return fmt.Errorf("resource %s already exists in stack %s", r.ID, s.Name)
		}
		return err
	}
	if err := s.addReferenceEdges(r); err != nil {
		return err
	}
	zap.L().Debug("added resource", zap.Stringer("resource", r.ID), zap.String("stack", s.Name))
	return nil
}

// SetProperty sets a property of an existing resource, adding edges for any new references.
func (s *Stack) SetProperty(id construct.ResourceId, key string, value any) error {
	r, err := s.Resource(id)
	if err != nil {
		return err
	}
	old, hadOld := r.Properties[key]
	r.Properties.SetProperty(key, value)
	if err := s.addReferenceEdges(r); err != nil {
		if hadOld {
			r.Properties[key] = old
		} else {
			delete(r.Properties, key)
		}
		return err
	}
	return nil
}

func (s *Stack) checkReferences(r *construct.Resource) error {
	var errs error
	for _, ref := range r.Properties.References() {
		switch {
		case ref.Resource == r.ID:
			errs = errors.Join(errs, fmt.Errorf("resource %s references itself (%s)", r.ID, ref))
		case !s.HasResource(ref.Resource):
			errs = errors.Join(errs, fmt.Errorf("resource %s references %s which is not in stack %s", r.ID, ref, s.Name))
		}
	}
	return errs
}

func (s *Stack) addReferenceEdges(r *construct.Resource) error {
	if err := s.checkReferences(r); err != nil {
		return err
	}
	var errs error
	for _, ref := range r.Properties.References() {
		errs = errors.Join(errs, s.AddDependency(r.ID, ref.Resource))
	}
	return errs
}

// AddDependency records that `from` must be created after `to`.
func (s *Stack) AddDependency(from, to construct.ResourceId) error {
	err := s.graph.AddEdge(from, to)
	switch {
	case err == nil, errors.Is(err, graph.ErrEdgeAlreadyExists):
		return nil
	case errors.Is(err, graph.ErrVertexNotFound):
		return fmt.Errorf("dependency %s -> %s: resource not in stack %s", from, to, s.Name)
	default:
		return fmt.Errorf("dependency %s -> %s: %w", from, to, err)
	}
}

func (s *Stack) Resource(id construct.ResourceId) (*construct.Resource, error) {
	r, err := s.graph.Vertex(id)
	if err != nil {
		return nil, fmt.Errorf("resource %s: %w", id, err)
	}
	return r, nil
}

func (s *Stack) HasResource(id construct.ResourceId) bool {
	_, err := s.graph.Vertex(id)
	return err == nil
}

// Resources returns the ids of all resources of the given type (all resources for ""), in creation order.
func (s *Stack) Resources(resourceType string) ([]construct.ResourceId, error) {
	ids, err := construct.ReverseTopologicalSort(s.graph)
	if err != nil {
		return nil, err
	}
	return construct.SelectIds(ids, construct.ResourceId{Type: resourceType}), nil
}

// AddParameter declares a template parameter. Re-declaring a parameter with the same definition is a no-op.
func (s *Stack) AddParameter(name string, p Parameter) error {
	if existing, ok := s.parameters[name]; ok && existing != p {
		return fmt.Errorf("parameter %s already declared with a different definition", name)
	}
	s.parameters[name] = p
	return nil
}

func (s *Stack) AddOutput(name string, o Output) error {
	if _, ok := s.outputs[name]; ok {
		return fmt.Errorf("output %s already declared", name)
	}
	s.outputs[name] = o
	return nil
}
