package construct

import (
	"bytes"
	"fmt"
)

// RefProperty is the property name used to reference a resource's primary identifier rather than one of
// its attributes.
const RefProperty = "Ref"

// PropertyRef is a reference to a property (attribute) of another resource in the graph. The value is unknown
// at build time and is resolved by the deployment engine.
type PropertyRef struct {
	Resource ResourceId
	Property string
}

func (v PropertyRef) String() string {
	return v.Resource.String() + "#" + v.Property
}

func (v PropertyRef) IsRef() bool {
	return v.Property == RefProperty
}

func (v PropertyRef) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *PropertyRef) UnmarshalText(b []byte) error {
	parts := bytes.SplitN(b, []byte("#"), 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid PropertyRef format: %s", string(b))
	}
	if err := v.Resource.UnmarshalText(parts[0]); err != nil {
		return err
	}
	v.Property = string(parts[1])
	return nil
}
