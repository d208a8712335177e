package lattice

import (
	"maps"
	"slices"

	"github.com/klothoplatform/lattice/pkg/construct"
	"github.com/klothoplatform/lattice/pkg/sanitization"
)

// ShareProps configures a RAM resource share of a service or service network.
type ShareProps struct {
	Name                    string
	AllowExternalPrincipals bool
	// Accounts are the account ids (or organization / OU ARNs) to share with.
	Accounts []string
	Tags     map[string]string
}

func shareId(stack *Stack, parent string, props ShareProps) (construct.ResourceId, error) {
	if props.Name == "" {
		return construct.ResourceId{}, invalid("A share name must be provided")
	}
	return stack.Id(ResourceShareType, path(parent, "Share-"+sanitization.ConstructIdSanitizer.Apply(props.Name))), nil
}

func share(stack *Stack, parent string, resourceArn any, props ShareProps) error {
	id, err := shareId(stack, parent, props)
	if err != nil {
		return err
	}
	principals := make([]any, len(props.Accounts))
	for i, a := range props.Accounts {
		principals[i] = a
	}
	properties := construct.Properties{
		"Name":                    props.Name,
		"ResourceArns":            []any{resourceArn},
		"AllowExternalPrincipals": props.AllowExternalPrincipals,
		"Principals":              principals,
	}
	if len(props.Tags) > 0 {
		tags := make([]any, 0, len(props.Tags))
		for _, k := range slices.Sorted(maps.Keys(props.Tags)) {
			tags = append(tags, map[string]any{"Key": k, "Value": props.Tags[k]})
		}
		properties["Tags"] = tags
	}
	return stack.AddResource(&construct.Resource{ID: id, Properties: properties})
}
