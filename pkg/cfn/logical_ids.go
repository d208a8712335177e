package cfn

import (
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/klothoplatform/lattice/pkg/construct"
	"github.com/klothoplatform/lattice/pkg/sanitization"
)

type logicalIds map[construct.ResourceId]string

func pascal(parts ...string) string {
	sb := strings.Builder{}
	for _, p := range parts {
		for _, seg := range strings.Split(p, "/") {
			sb.WriteString(strcase.ToCamel(seg))
		}
	}
	return sanitization.LogicalIdSanitizer.Apply(sb.String())
}

// assignLogicalIds names each resource after its construct path. When two resources would share a logical id,
// the type (and then namespace) is added, falling back to a hash of the full id.
func assignLogicalIds(resources []construct.ResourceId) logicalIds {
	byName := make(map[string][]construct.ResourceId)
	for _, r := range resources {
		key := pascal(r.Name)
		byName[key] = append(byName[key], r)
	}

	ids := make(logicalIds, len(resources))
	taken := make(map[string]struct{}, len(resources))
	claim := func(r construct.ResourceId, candidate string) bool {
		if candidate == "" {
			return false
		}
		if _, ok := taken[candidate]; ok {
			return false
		}
		taken[candidate] = struct{}{}
		ids[r] = candidate
		return true
	}

	for _, r := range resources {
		name := pascal(r.Name)
		if len(byName[name]) == 1 && claim(r, name) {
			continue
		}
		if claim(r, pascal(r.Name, r.Type)) {
			continue
		}
		if r.Namespace != "" && claim(r, pascal(r.Namespace, r.Name, r.Type)) {
			continue
		}
		claim(r, pascal(r.Name)+strings.ToUpper(construct.Addr(r.String())[:8]))
	}
	return ids
}
