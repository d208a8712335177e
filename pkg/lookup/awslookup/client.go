package awslookup

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/aws/aws-sdk-go-v2/service/vpclattice"
	"github.com/klothoplatform/lattice/pkg/cfn"
	"github.com/klothoplatform/lattice/pkg/lattice"
	"go.uber.org/zap"
)

//go:generate mockgen -source=./client.go --destination=./client_mock_test.go --package=awslookup

type (
	OrganizationsAPI interface {
		DescribeOrganization(ctx context.Context, params *organizations.DescribeOrganizationInput, optFns ...func(*organizations.Options)) (*organizations.DescribeOrganizationOutput, error)
	}

	VpcLatticeAPI interface {
		ListServiceNetworks(ctx context.Context, params *vpclattice.ListServiceNetworksInput, optFns ...func(*vpclattice.Options)) (*vpclattice.ListServiceNetworksOutput, error)
	}

	EC2API interface {
		DescribeVpcs(ctx context.Context, params *ec2.DescribeVpcsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error)
	}

	IAMAPI interface {
		GetRole(ctx context.Context, params *iam.GetRoleInput, optFns ...func(*iam.Options)) (*iam.GetRoleOutput, error)
	}
)

// Client resolves lookups at synth time with the AWS APIs of the configured account. Results are cached for the
// lifetime of the client.
type Client struct {
	Organizations OrganizationsAPI
	Lattice       VpcLatticeAPI
	EC2           EC2API
	IAM           IAMAPI

	mu       sync.Mutex
	orgId    string
	networks map[string]lattice.ServiceNetworkRef
	cidrs    map[string]string
	roles    map[string]string
}

var ErrNotFound = errors.New("not found")

// New loads the default AWS configuration (environment, shared config and credentials files) and creates the
// service clients.
func New(ctx context.Context, optFns ...func(*config.LoadOptions) error) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	zap.S().Debugf("loaded AWS configuration for region %s", cfg.Region)
	return &Client{
		Organizations: organizations.NewFromConfig(cfg),
		Lattice:       vpclattice.NewFromConfig(cfg),
		EC2:           ec2.NewFromConfig(cfg),
		IAM:           iam.NewFromConfig(cfg),
	}, nil
}

// Lookups returns resolvers backed by the client.
func (c *Client) Lookups() lattice.Lookups {
	return lattice.Lookups{
		OrgId:           c,
		ServiceNetworks: c,
		Vpcs:            c,
		Roles:           c,
	}
}

func (c *Client) OrgId(ctx context.Context, _ *cfn.Stack) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.orgId != "" {
		return c.orgId, nil
	}
	out, err := c.Organizations.DescribeOrganization(ctx, &organizations.DescribeOrganizationInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe organization: %w", err)
	}
	if out.Organization == nil || aws.ToString(out.Organization.Id) == "" {
		return nil, fmt.Errorf("organization: %w", ErrNotFound)
	}
	c.orgId = aws.ToString(out.Organization.Id)
	zap.L().Debug("resolved organization id", zap.String("org_id", c.orgId))
	return c.orgId, nil
}

func (c *Client) ServiceNetworkByName(ctx context.Context, _ *cfn.Stack, name string) (lattice.ServiceNetworkRef, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ref, ok := c.networks[name]; ok {
		return ref, nil
	}

	paginator := vpclattice.NewListServiceNetworksPaginator(c.Lattice, &vpclattice.ListServiceNetworksInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return lattice.ServiceNetworkRef{}, fmt.Errorf("failed to list service networks: %w", err)
		}
		for _, item := range page.Items {
			if aws.ToString(item.Name) != name {
				continue
			}
			ref := lattice.ServiceNetworkRef{Id: aws.ToString(item.Id), Arn: aws.ToString(item.Arn)}
			if c.networks == nil {
				c.networks = make(map[string]lattice.ServiceNetworkRef)
			}
			c.networks[name] = ref
			zap.L().Debug("resolved service network", zap.String("name", name), zap.Any("id", ref.Id))
			return ref, nil
		}
	}
	return lattice.ServiceNetworkRef{}, fmt.Errorf("service network %s: %w", name, ErrNotFound)
}

func (c *Client) VpcCidr(ctx context.Context, vpcId string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cidr, ok := c.cidrs[vpcId]; ok {
		return cidr, nil
	}
	out, err := c.EC2.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{VpcIds: []string{vpcId}})
	if err != nil {
		return "", fmt.Errorf("failed to describe VPC %s: %w", vpcId, err)
	}
	if len(out.Vpcs) == 0 || aws.ToString(out.Vpcs[0].CidrBlock) == "" {
		return "", fmt.Errorf("VPC %s: %w", vpcId, ErrNotFound)
	}
	cidr := aws.ToString(out.Vpcs[0].CidrBlock)
	if c.cidrs == nil {
		c.cidrs = make(map[string]string)
	}
	c.cidrs[vpcId] = cidr
	return cidr, nil
}

// RoleArn returns the ARN of the IAM role named `name`.
func (c *Client) RoleArn(ctx context.Context, _ *cfn.Stack, name string) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if arn, ok := c.roles[name]; ok {
		return arn, nil
	}
	out, err := c.IAM.GetRole(ctx, &iam.GetRoleInput{RoleName: aws.String(name)})
	if err != nil {
		return nil, fmt.Errorf("failed to get role %s: %w", name, err)
	}
	if out.Role == nil || aws.ToString(out.Role.Arn) == "" {
		return nil, fmt.Errorf("role %s: %w", name, ErrNotFound)
	}
	arn := aws.ToString(out.Role.Arn)
	if c.roles == nil {
		c.roles = make(map[string]string)
	}
	c.roles[name] = arn
	return arn, nil
}
