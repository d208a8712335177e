package lattice

import (
	"context"

	"github.com/klothoplatform/lattice/pkg/cfn"
	"github.com/klothoplatform/lattice/pkg/construct"
	"github.com/klothoplatform/lattice/pkg/sanitization"
)

//go:generate mockgen -source=./lookups.go --destination=./lookups_mock_test.go --package=lattice

type (
	// OrgIdResolver returns the AWS Organizations id of the deploying account, as a literal or a deploy-time token.
	OrgIdResolver interface {
		OrgId(ctx context.Context, stack *cfn.Stack) (any, error)
	}

	// ServiceNetworkResolver finds an existing service network by name.
	ServiceNetworkResolver interface {
		ServiceNetworkByName(ctx context.Context, stack *cfn.Stack, name string) (ServiceNetworkRef, error)
	}

	// VpcResolver returns the primary IPv4 CIDR block of a VPC.
	VpcResolver interface {
		VpcCidr(ctx context.Context, vpcId string) (string, error)
	}

	// RoleResolver returns the ARN of an IAM role of the deploying account, by name.
	RoleResolver interface {
		RoleArn(ctx context.Context, stack *cfn.Stack, name string) (any, error)
	}

	// ServiceNetworkRef holds the id and ARN of a service network, as literals or deploy-time tokens.
	ServiceNetworkRef struct {
		Id  any
		Arn any
	}

	Lookups struct {
		OrgId           OrgIdResolver
		ServiceNetworks ServiceNetworkResolver
		Vpcs            VpcResolver
		Roles           RoleResolver
	}
)

// LookupServiceTokenParameter is the template parameter naming the Lambda function that serves lookup custom
// resources.
const LookupServiceTokenParameter = "LookupServiceToken"

// DeferredLookups resolves lookups at deployment time through custom resources. There is no deferred VPC
// resolver: CIDR blocks must be given when a default security group is needed.
func DeferredLookups() Lookups {
	d := deferredLookups{}
	return Lookups{OrgId: d, ServiceNetworks: d, Roles: d}
}

type deferredLookups struct{}

func (deferredLookups) serviceToken(stack *cfn.Stack) (any, error) {
	err := stack.AddParameter(LookupServiceTokenParameter, cfn.Parameter{
		Type:        "String",
		Description: "ARN of the Lambda function serving lookup custom resources",
	})
	return cfn.Ref(LookupServiceTokenParameter), err
}

func (d deferredLookups) OrgId(ctx context.Context, stack *cfn.Stack) (any, error) {
	id := stack.Id(OrganizationLookupType, "lookup/organization")
	if !stack.HasResource(id) {
		token, err := d.serviceToken(stack)
		if err != nil {
			return nil, err
		}
		err = stack.AddResource(&construct.Resource{ID: id, Properties: construct.Properties{
			"ServiceToken": token,
			"Service":      "Organizations",
			"Action":       "describeOrganization",
		}})
		if err != nil {
			return nil, err
		}
	}
	return construct.PropertyRef{Resource: id, Property: "Organization.Id"}, nil
}

func (d deferredLookups) ServiceNetworkByName(ctx context.Context, stack *cfn.Stack, name string) (ServiceNetworkRef, error) {
	id := stack.Id(ServiceNetworkLookupType, path("lookup", "service-network", sanitization.ConstructIdSanitizer.Apply(name)))
	if !stack.HasResource(id) {
		token, err := d.serviceToken(stack)
		if err != nil {
			return ServiceNetworkRef{}, err
		}
		err = stack.AddResource(&construct.Resource{ID: id, Properties: construct.Properties{
			"ServiceToken":       token,
			"ServiceNetworkName": name,
		}})
		if err != nil {
			return ServiceNetworkRef{}, err
		}
	}
	return ServiceNetworkRef{
		Id:  construct.PropertyRef{Resource: id, Property: "Id"},
		Arn: construct.PropertyRef{Resource: id, Property: "Arn"},
	}, nil
}

// RoleArn builds the role's ARN from the stack's partition and account. The role is not checked to exist.
func (deferredLookups) RoleArn(ctx context.Context, stack *cfn.Stack, name string) (any, error) {
	if name == "" {
		return nil, invalid("A role name must be provided")
	}
	return cfn.Join("", "arn:", cfn.Ref(cfn.Partition), ":iam::", cfn.Ref(cfn.AccountId), ":role/"+name), nil
}
