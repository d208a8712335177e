package construct

import (
	"fmt"
	"sort"
)

// Properties holds the template properties of a resource. Values are restricted to scalars, `map[string]any`,
// `[]any` and references ([PropertyRef]) so that they can be walked and rendered without reflection.
type Properties map[string]any

// SetProperty sets `key` to `value`. A nil value removes the key.
func (p Properties) SetProperty(key string, value any) {
	if value == nil {
		delete(p, key)
		return
	}
	p[key] = value
}

func (p Properties) GetProperty(key string) (any, bool) {
	v, ok := p[key]
	return v, ok
}

// AppendProperty appends `values` to the list stored at `key`, creating it if absent.
func (p Properties) AppendProperty(key string, values ...any) error {
	current, ok := p[key]
	if !ok {
		p[key] = append([]any{}, values...)
		return nil
	}
	list, ok := current.([]any)
	if !ok {
		return fmt.Errorf("cannot append to property %s: existing value is %T, not a list", key, current)
	}
	p[key] = append(list, values...)
	return nil
}

// References returns all the references contained anywhere in the properties, in deterministic order.
func (p Properties) References() []PropertyRef {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var refs []PropertyRef
	for _, k := range keys {
		refs = appendRefs(refs, p[k])
	}
	return refs
}

func appendRefs(refs []PropertyRef, v any) []PropertyRef {
	switch v := v.(type) {
	case PropertyRef:
		return append(refs, v)
	case *PropertyRef:
		if v != nil {
			return append(refs, *v)
		}
	case Properties:
		return append(refs, v.References()...)
	case map[string]any:
		return append(refs, Properties(v).References()...)
	case []any:
		for _, e := range v {
			refs = appendRefs(refs, e)
		}
	case []map[string]any:
		for _, e := range v {
			refs = append(refs, Properties(e).References()...)
		}
	}
	return refs
}

// Clone returns a deep copy of the maps and lists. Scalars and references are copied by value.
func (p Properties) Clone() Properties {
	if p == nil {
		return nil
	}
	c := make(Properties, len(p))
	for k, v := range p {
		c[k] = cloneValue(v)
	}
	return c
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case Properties:
		return v.Clone()
	case map[string]any:
		return map[string]any(Properties(v).Clone())
	case []any:
		c := make([]any, len(v))
		for i, e := range v {
			c[i] = cloneValue(e)
		}
		return c
	case []map[string]any:
		c := make([]map[string]any, len(v))
		for i, e := range v {
			c[i] = map[string]any(Properties(e).Clone())
		}
		return c
	case []string:
		return append([]string(nil), v...)
	}
	return v
}
