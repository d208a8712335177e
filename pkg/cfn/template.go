package cfn

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/klothoplatform/lattice/pkg/construct"
	"sigs.k8s.io/yaml"
)

const FormatVersion = "2010-09-09"

type (
	Template struct {
		AWSTemplateFormatVersion string                      `json:"AWSTemplateFormatVersion"`
		Description              string                      `json:"Description,omitempty"`
		Parameters               map[string]Parameter        `json:"Parameters,omitempty"`
		Resources                map[string]TemplateResource `json:"Resources"`
		Outputs                  map[string]TemplateOutput   `json:"Outputs,omitempty"`

		logicalIds logicalIds
	}

	TemplateResource struct {
		Type       string         `json:"Type"`
		Properties map[string]any `json:"Properties,omitempty"`
		DependsOn  []string       `json:"DependsOn,omitempty"`
	}

	TemplateOutput struct {
		Value       any            `json:"Value"`
		Description string         `json:"Description,omitempty"`
		Export      map[string]any `json:"Export,omitempty"`
	}
)

// Template renders the stack. Resource references are converted to `Ref` / `Fn::GetAtt` and dependencies that
// are not implied by a reference are rendered as `DependsOn`.
func (s *Stack) Template() (*Template, error) {
	order, err := construct.ReverseTopologicalSort(s.graph)
	if err != nil {
		return nil, fmt.Errorf("could not order resources of stack %s: %w", s.Name, err)
	}
	adj, err := s.graph.AdjacencyMap()
	if err != nil {
		return nil, err
	}

	t := &Template{
		AWSTemplateFormatVersion: FormatVersion,
		Description:              s.Description,
		Resources:                make(map[string]TemplateResource, len(order)),
		logicalIds:               assignLogicalIds(order),
	}
	if len(s.parameters) > 0 {
		t.Parameters = s.parameters
	}

	var errs error
	for _, id := range order {
		r, err := s.graph.Vertex(id)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		cfnType, err := ResourceType(id)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		props, err := t.resolve(map[string]any(r.Properties))
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("resource %s: %w", id, err))
			continue
		}

		referenced := make(map[construct.ResourceId]struct{})
		for _, ref := range r.Properties.References() {
			referenced[ref.Resource] = struct{}{}
		}
		var dependsOn []string
		for dep := range adj[id] {
			if _, ok := referenced[dep]; !ok {
				dependsOn = append(dependsOn, t.logicalIds[dep])
			}
		}
		sort.Strings(dependsOn)

		tr := TemplateResource{Type: cfnType, DependsOn: dependsOn}
		if m, _ := props.(map[string]any); len(m) > 0 {
			tr.Properties = m
		}
		t.Resources[t.logicalIds[id]] = tr
	}

	if len(s.outputs) > 0 {
		t.Outputs = make(map[string]TemplateOutput, len(s.outputs))
		for name, o := range s.outputs {
			v, err := t.resolve(o.Value)
			if err != nil {
				errs = errors.Join(errs, fmt.Errorf("output %s: %w", name, err))
				continue
			}
			out := TemplateOutput{Value: v, Description: o.Description}
			if o.ExportName != "" {
				out.Export = map[string]any{"Name": o.ExportName}
			}
			t.Outputs[name] = out
		}
	}
	if errs != nil {
		return nil, errs
	}
	return t, nil
}

// LogicalId returns the logical id assigned to the resource.
func (t *Template) LogicalId(id construct.ResourceId) (string, bool) {
	lid, ok := t.logicalIds[id]
	return lid, ok
}

func (t *Template) resolve(v any) (any, error) {
	switch v := v.(type) {
	case construct.PropertyRef:
		lid, ok := t.logicalIds[v.Resource]
		if !ok {
			return nil, fmt.Errorf("reference to unknown resource %s", v.Resource)
		}
		if v.IsRef() {
			return map[string]any{"Ref": lid}, nil
		}
		return GetAtt(lid, v.Property), nil

	case *construct.PropertyRef:
		return t.resolve(*v)

	case construct.Properties:
		return t.resolve(map[string]any(v))

	case map[string]any:
		out := make(map[string]any, len(v))
		var errs error
		for k, e := range v {
			r, err := t.resolve(e)
			errs = errors.Join(errs, err)
			out[k] = r
		}
		return out, errs

	case []map[string]any:
		out := make([]any, len(v))
		var errs error
		for i, e := range v {
			r, err := t.resolve(e)
			errs = errors.Join(errs, err)
			out[i] = r
		}
		return out, errs

	case []any:
		out := make([]any, len(v))
		var errs error
		for i, e := range v {
			r, err := t.resolve(e)
			errs = errors.Join(errs, err)
			out[i] = r
		}
		return out, errs
	}
	return v, nil
}

func (t *Template) JSON() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

func (t *Template) YAML() ([]byte, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return yaml.JSONToYAML(b)
}
