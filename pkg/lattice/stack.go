package lattice

import (
	"context"
	"fmt"
	"strings"

	"github.com/klothoplatform/lattice/pkg/cfn"
	"github.com/klothoplatform/lattice/pkg/construct"
	"github.com/klothoplatform/lattice/pkg/set"
)

// Stack is the scope every construct is created in: the CloudFormation stack receiving the resources plus the
// resolvers used for values that live outside of it.
type Stack struct {
	*cfn.Stack
	Lookups Lookups

	// ctx is used for resolver calls made while constructs are built. Construction is synchronous, so the
	// context is that of the whole build.
	ctx context.Context

	orgId any
}

func NewStack(ctx context.Context, name string, lookups Lookups) *Stack {
	return &Stack{
		Stack:   cfn.NewStack(name),
		Lookups: lookups,
		ctx:     ctx,
	}
}

// OrgId returns the organization id of the deploying account. It is resolved once per stack.
func (s *Stack) OrgId() (any, error) {
	if s.orgId != nil {
		return s.orgId, nil
	}
	if s.Lookups.OrgId == nil {
		return nil, invalid("no organization id resolver configured")
	}
	id, err := s.Lookups.OrgId.OrgId(s.ctx, s.Stack)
	if err != nil {
		return nil, err
	}
	s.orgId = id
	return id, nil
}

// RoleArn resolves the ARN of the IAM role named `name`.
func (s *Stack) RoleArn(name string) (any, error) {
	if s.Lookups.Roles == nil {
		return nil, invalid("no role resolver configured")
	}
	return s.Lookups.Roles.RoleArn(s.ctx, s.Stack, name)
}

func path(parts ...string) string {
	return strings.Join(parts, "/")
}

func (s *Stack) add(resourceType, name string, props construct.Properties) (*construct.Resource, error) {
	r := &construct.Resource{ID: s.Id(resourceType, name), Properties: props}
	if err := s.AddResource(r); err != nil {
		return nil, err
	}
	return r, nil
}

// checkNew fails if any of `ids` could not be added to the stack: it is invalid, already in the stack or listed
// twice. Constructors that add several resources call it before adding the first one.
func (s *Stack) checkNew(ids ...construct.ResourceId) error {
	seen := make(set.Set[construct.ResourceId], len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return fmt.Errorf("invalid resource id %s: %w", id, err)
		}
		if s.HasResource(id) || !seen.TryAdd(id) {
			return fmt.Errorf("resource %s already exists in stack %s", id, s.Name)
		}
	}
	return nil
}
