package lattice

import (
	"fmt"
)

type HttpMethod string

const (
	HttpMethodGet     HttpMethod = "GET"
	HttpMethodPost    HttpMethod = "POST"
	HttpMethodPut     HttpMethod = "PUT"
	HttpMethodDelete  HttpMethod = "DELETE"
	HttpMethodPatch   HttpMethod = "PATCH"
	HttpMethodHead    HttpMethod = "HEAD"
	HttpMethodOptions HttpMethod = "OPTIONS"
	HttpMethodConnect HttpMethod = "CONNECT"
	HttpMethodTrace   HttpMethod = "TRACE"
)

type PathMatchType string

const (
	PathMatchExact  PathMatchType = "EXACT"
	PathMatchPrefix PathMatchType = "PREFIX"
)

type MatchOperator string

const (
	MatchExact    MatchOperator = "EXACT"
	MatchContains MatchOperator = "CONTAINS"
	MatchPrefix   MatchOperator = "PREFIX"
)

type (
	// PathMatch matches the request path. Type defaults to EXACT, CaseSensitive to true.
	PathMatch struct {
		Path          string
		Type          PathMatchType
		CaseSensitive *bool
	}

	// HeaderMatch matches a request header. Operator defaults to EXACT, CaseSensitive to false.
	HeaderMatch struct {
		Name          string
		Operator      MatchOperator
		Value         string
		CaseSensitive *bool
	}

	// HttpMatch selects the requests a rule applies to. At least one of its fields must be set.
	HttpMatch struct {
		Method        HttpMethod
		PathMatch     *PathMatch
		HeaderMatches []HeaderMatch
	}
)

func (m HttpMatch) isEmpty() bool {
	return m.Method == "" && m.PathMatch == nil && len(m.HeaderMatches) == 0
}

func (m HttpMatch) validate() error {
	if m.isEmpty() {
		return invalid("At least one of pathMatches, headerMatches, or method must be provided")
	}
	switch m.Method {
	case "", HttpMethodGet, HttpMethodPost, HttpMethodPut, HttpMethodDelete, HttpMethodPatch,
		HttpMethodHead, HttpMethodOptions, HttpMethodConnect, HttpMethodTrace:
	default:
		return invalid(fmt.Sprintf("unsupported HTTP method %q", m.Method))
	}
	if m.PathMatch != nil {
		switch m.PathMatch.Type {
		case "", PathMatchExact, PathMatchPrefix:
		default:
			return invalid(fmt.Sprintf("unsupported path match type %q", m.PathMatch.Type))
		}
		if m.PathMatch.Path == "" {
			return invalid("A path match must have a path")
		}
	}
	for _, h := range m.HeaderMatches {
		switch h.Operator {
		case "", MatchExact, MatchContains, MatchPrefix:
		default:
			return invalid(fmt.Sprintf("unsupported match operator %q", h.Operator))
		}
		if h.Name == "" {
			return invalid("A header match must have a header name")
		}
	}
	return nil
}

func (p PathMatch) matchType() PathMatchType {
	if p.Type == "" {
		return PathMatchExact
	}
	return p.Type
}

func (h HeaderMatch) operator() MatchOperator {
	if h.Operator == "" {
		return MatchExact
	}
	return h.Operator
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// properties renders the match as a CloudFormation HttpMatch.
func (m HttpMatch) properties() map[string]any {
	props := make(map[string]any)
	if m.Method != "" {
		props["Method"] = string(m.Method)
	}
	if m.PathMatch != nil {
		key := "Exact"
		if m.PathMatch.matchType() == PathMatchPrefix {
			key = "Prefix"
		}
		props["PathMatch"] = map[string]any{
			"Match":         map[string]any{key: m.PathMatch.Path},
			"CaseSensitive": boolOr(m.PathMatch.CaseSensitive, true),
		}
	}
	if len(m.HeaderMatches) > 0 {
		headers := make([]any, len(m.HeaderMatches))
		for i, h := range m.HeaderMatches {
			var key string
			switch h.operator() {
			case MatchContains:
				key = "Contains"
			case MatchPrefix:
				key = "Prefix"
			default:
				key = "Exact"
			}
			headers[i] = map[string]any{
				"Name":          h.Name,
				"Match":         map[string]any{key: h.Value},
				"CaseSensitive": boolOr(h.CaseSensitive, false),
			}
		}
		props["HeaderMatches"] = headers
	}
	return props
}

// conditionValue is the value an auth policy condition uses to express the header match.
func (h HeaderMatch) conditionValue() string {
	switch h.operator() {
	case MatchContains:
		return "*" + h.Value + "*"
	case MatchPrefix:
		return h.Value + "*"
	default:
		return h.Value
	}
}
