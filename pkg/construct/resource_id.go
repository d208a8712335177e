package construct

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ResourceId identifies a resource within a stack graph. Provider is the cloud (always "aws" for synthesized
// resources), Type is the short resource type (eg "vpclattice_service") and Name is the construct path of the
// resource within the stack.
type ResourceId struct {
	Provider string `yaml:"provider" toml:"provider"`
	Type     string `yaml:"type" toml:"type"`
	// Namespace is optional and is used to disambiguate resources that share a name, such as the policy of a
	// service and the policy of a service network.
	Namespace string `yaml:"namespace" toml:"namespace"`
	Name      string `yaml:"name" toml:"name"`
}

var zeroId = ResourceId{}

func (id ResourceId) IsZero() bool {
	return id == zeroId
}

func (id ResourceId) String() string {
	if id.IsZero() {
		return ""
	}
	sb := strings.Builder{}
	sb.Grow(len(id.Provider) + len(id.Type) + len(id.Namespace) + len(id.Name) + 3)

	sb.WriteString(id.Provider)
	sb.WriteByte(':')
	sb.WriteString(id.Type)
	if id.Namespace != "" || strings.Contains(id.Name, ":") {
		sb.WriteByte(':')
		sb.WriteString(id.Namespace)
	}
	if id.Name != "" {
		sb.WriteByte(':')
		sb.WriteString(id.Name)
	}
	return sb.String()
}

func (id ResourceId) QualifiedTypeName() string {
	return id.Provider + ":" + id.Type
}

// Matches uses `id` (the receiver) as a filter for `other` and returns true if all the non-empty fields of `id`
// match the corresponding fields in `other`.
func (id ResourceId) Matches(other ResourceId) bool {
	if id.Provider != "" && id.Provider != other.Provider {
		return false
	}
	if id.Type != "" && id.Type != other.Type {
		return false
	}
	if id.Namespace != "" && id.Namespace != other.Namespace {
		return false
	}
	if id.Name != "" && id.Name != other.Name {
		return false
	}
	return true
}

func SelectIds(ids []ResourceId, selector ResourceId) []ResourceId {
	result := make([]ResourceId, 0, len(ids))
	for _, id := range ids {
		if selector.Matches(id) {
			result = append(result, id)
		}
	}
	return result
}

var (
	resourceProviderPattern  = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	resourceTypePattern      = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	resourceNamespacePattern = regexp.MustCompile(`^[a-zA-Z0-9_./\-\[\]]*$`) // like name, but `:` not allowed
	resourceNamePattern      = regexp.MustCompile(`^[a-zA-Z0-9_./\-:\[\]]*$`)
)

// Validate checks every field of the id against the allowed character sets.
func (id ResourceId) Validate() error {
	if id.IsZero() {
		return nil
	}
	var err error
	if !resourceProviderPattern.MatchString(id.Provider) {
		err = errors.Join(err, fmt.Errorf("invalid provider '%s' (must match %s)", id.Provider, resourceProviderPattern))
	}
	if id.Type != "" && !resourceTypePattern.MatchString(id.Type) {
		err = errors.Join(err, fmt.Errorf("invalid type '%s' (must match %s)", id.Type, resourceTypePattern))
	}
	if id.Namespace != "" && !resourceNamespacePattern.MatchString(id.Namespace) {
		err = errors.Join(err, fmt.Errorf("invalid namespace '%s' (must match %s)", id.Namespace, resourceNamespacePattern))
	}
	if !resourceNamePattern.MatchString(id.Name) {
		err = errors.Join(err, fmt.Errorf("invalid name '%s' (must match %s)", id.Name, resourceNamePattern))
	}
	return err
}

// Parse reads the `provider:type[:namespace]:name` form produced by String. It does not validate.
func (id *ResourceId) Parse(s string) error {
	parts := strings.SplitN(s, ":", 4)
	switch len(parts) {
	case 4:
		id.Provider, id.Type, id.Namespace, id.Name = parts[0], parts[1], parts[2], parts[3]
	case 3:
		id.Provider, id.Type, id.Name = parts[0], parts[1], parts[2]
	case 2:
		id.Provider, id.Type = parts[0], parts[1]
	default:
		if parts[0] != "" {
			return fmt.Errorf("must have trailing ':' for provider-only ID")
		}
	}
	return nil
}

func (id ResourceId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ResourceId) UnmarshalText(data []byte) error {
	if err := id.Parse(string(data)); err != nil {
		return err
	}
	if err := id.Validate(); err != nil {
		return fmt.Errorf("invalid resource id '%s': %w", string(data), err)
	}
	return nil
}
