package iam

import (
	"fmt"
	"maps"

	"github.com/klothoplatform/lattice/pkg/set"
)

type Effect string

const (
	EffectAllow Effect = "Allow"
	EffectDeny  Effect = "Deny"
)

// Conditions maps a condition operator (eg StringEquals) to its key/value pairs.
type Conditions map[string]map[string]any

// Statement is a single policy statement. Resources and principal values may be literal strings or
// deploy-time tokens.
type Statement struct {
	Sid        string
	Effect     Effect
	Actions    []string
	Resources  []any
	Principals []Principal
	Conditions Conditions
}

func NewStatement(effect Effect, actions ...string) *Statement {
	return &Statement{Effect: effect, Actions: actions}
}

func (s *Statement) AddActions(actions ...string) *Statement {
	s.Actions = append(s.Actions, actions...)
	return s
}

func (s *Statement) AddResources(resources ...any) *Statement {
	s.Resources = append(s.Resources, resources...)
	return s
}

// AddPrincipals appends principals, skipping any already present.
func (s *Statement) AddPrincipals(principals ...Principal) *Statement {
	seen := make(set.Set[string], len(s.Principals))
	for _, p := range s.Principals {
		seen.Add(principalKey(p))
	}
	for _, p := range principals {
		if seen.TryAdd(principalKey(p)) {
			s.Principals = append(s.Principals, p)
		}
	}
	return s
}

func principalKey(p Principal) string {
	return fmt.Sprintf("%s|%v", p.Key(), p.Value())
}

// AddCondition merges `key: value` into the block for `operator`. An existing value for the same key is replaced.
func (s *Statement) AddCondition(operator, key string, value any) *Statement {
	if s.Conditions == nil {
		s.Conditions = make(Conditions)
	}
	block, ok := s.Conditions[operator]
	if !ok {
		block = make(map[string]any)
		s.Conditions[operator] = block
	}
	block[key] = value
	return s
}

func (s *Statement) HasPrincipal() bool {
	return len(s.Principals) > 0
}

func (s *Statement) HasResource() bool {
	return len(s.Resources) > 0
}

// Render converts the statement to its IAM JSON form. Single actions, resources and principal values are
// rendered as scalars, and a lone `*` principal as the literal `"Principal": "*"`.
func (s *Statement) Render() map[string]any {
	out := map[string]any{
		"Effect": string(s.Effect),
	}
	if s.Sid != "" {
		out["Sid"] = s.Sid
	}
	if len(s.Actions) > 0 {
		actions := make([]any, len(s.Actions))
		for i, a := range s.Actions {
			actions[i] = a
		}
		out["Action"] = scalarOrList(actions)
	}
	if len(s.Resources) > 0 {
		out["Resource"] = scalarOrList(append([]any(nil), s.Resources...))
	}
	if len(s.Principals) > 0 {
		out["Principal"] = renderPrincipals(s.Principals)
	}
	if len(s.Conditions) > 0 {
		conditions := make(map[string]any, len(s.Conditions))
		for op, block := range s.Conditions {
			conditions[op] = maps.Clone(block)
		}
		out["Condition"] = conditions
	}
	return out
}

func renderPrincipals(principals []Principal) any {
	if len(principals) == 1 {
		if _, ok := principals[0].(StarPrincipal); ok {
			return "*"
		}
	}
	grouped := make(map[string][]any)
	for _, p := range principals {
		grouped[p.Key()] = append(grouped[p.Key()], p.Value())
	}
	out := make(map[string]any, len(grouped))
	for k, vs := range grouped {
		out[k] = scalarOrList(vs)
	}
	return out
}

func scalarOrList(vs []any) any {
	if len(vs) == 1 {
		return vs[0]
	}
	return vs
}
