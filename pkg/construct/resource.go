package construct

type Resource struct {
	ID         ResourceId
	Properties Properties
}

func CreateResource(id ResourceId) *Resource {
	return &Resource{
		ID:         id,
		Properties: make(Properties),
	}
}

// Ref returns a reference to the resource itself (rendered as `Ref` in a template).
func (r *Resource) Ref() PropertyRef {
	return PropertyRef{Resource: r.ID, Property: RefProperty}
}

// Attr returns a reference to the named attribute of the resource.
func (r *Resource) Attr(attribute string) PropertyRef {
	return PropertyRef{Resource: r.ID, Property: attribute}
}
