package awslookup

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	orgtypes "github.com/aws/aws-sdk-go-v2/service/organizations/types"
	"github.com/aws/aws-sdk-go-v2/service/vpclattice"
	latticetypes "github.com/aws/aws-sdk-go-v2/service/vpclattice/types"
	"github.com/klothoplatform/lattice/pkg/cfn"
	"github.com/klothoplatform/lattice/pkg/lattice"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func TestClient_OrgId(t *testing.T) {
	tests := []struct {
		name    string
		mocks   func(m *MockOrganizationsAPI)
		want    any
		wantErr string
	}{
		{
			name: "resolved and cached",
			mocks: func(m *MockOrganizationsAPI) {
				m.EXPECT().DescribeOrganization(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&organizations.DescribeOrganizationOutput{
						Organization: &orgtypes.Organization{Id: aws.String("o-abc123")},
					}, nil).
					Times(1)
			},
			want: "o-abc123",
		},
		{
			name: "not in an organization",
			mocks: func(m *MockOrganizationsAPI) {
				m.EXPECT().DescribeOrganization(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("AWSOrganizationsNotInUseException"))
			},
			wantErr: "failed to describe organization: AWSOrganizationsNotInUseException",
		},
		{
			name: "empty response",
			mocks: func(m *MockOrganizationsAPI) {
				m.EXPECT().DescribeOrganization(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&organizations.DescribeOrganizationOutput{}, nil)
			},
			wantErr: "organization: not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			ctrl := gomock.NewController(t)
			m := NewMockOrganizationsAPI(ctrl)
			tt.mocks(m)
			c := &Client{Organizations: m}
			stack := cfn.NewStack("test")

			got, err := c.OrgId(context.Background(), stack)
			if tt.wantErr != "" {
				assert.EqualError(err, tt.wantErr)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tt.want, got)

			got, err = c.OrgId(context.Background(), stack)
			assert.NoError(err)
			assert.Equal(tt.want, got)
		})
	}
}

func TestClient_ServiceNetworkByName(t *testing.T) {
	summary := func(name, id string) latticetypes.ServiceNetworkSummary {
		return latticetypes.ServiceNetworkSummary{
			Name: aws.String(name),
			Id:   aws.String(id),
			Arn:  aws.String("arn:aws:vpc-lattice:us-east-1:123456789012:servicenetwork/" + id),
		}
	}
	tests := []struct {
		name    string
		network string
		mocks   func(m *MockVpcLatticeAPI)
		want    lattice.ServiceNetworkRef
		wantErr string
	}{
		{
			name:    "found on second page",
			network: "shared",
			mocks: func(m *MockVpcLatticeAPI) {
				gomock.InOrder(
					m.EXPECT().ListServiceNetworks(gomock.Any(), &vpclattice.ListServiceNetworksInput{}, gomock.Any()).
						Return(&vpclattice.ListServiceNetworksOutput{
							Items:     []latticetypes.ServiceNetworkSummary{summary("other", "sn-0")},
							NextToken: aws.String("page-2"),
						}, nil),
					m.EXPECT().ListServiceNetworks(gomock.Any(), &vpclattice.ListServiceNetworksInput{NextToken: aws.String("page-2")}, gomock.Any()).
						Return(&vpclattice.ListServiceNetworksOutput{
							Items: []latticetypes.ServiceNetworkSummary{summary("shared", "sn-1")},
						}, nil),
				)
			},
			want: lattice.ServiceNetworkRef{
				Id:  "sn-1",
				Arn: "arn:aws:vpc-lattice:us-east-1:123456789012:servicenetwork/sn-1",
			},
		},
		{
			name:    "not found",
			network: "missing",
			mocks: func(m *MockVpcLatticeAPI) {
				m.EXPECT().ListServiceNetworks(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&vpclattice.ListServiceNetworksOutput{
						Items: []latticetypes.ServiceNetworkSummary{summary("other", "sn-0")},
					}, nil)
			},
			wantErr: "service network missing: not found",
		},
		{
			name:    "list error",
			network: "shared",
			mocks: func(m *MockVpcLatticeAPI) {
				m.EXPECT().ListServiceNetworks(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("AccessDeniedException"))
			},
			wantErr: "failed to list service networks: AccessDeniedException",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			ctrl := gomock.NewController(t)
			m := NewMockVpcLatticeAPI(ctrl)
			tt.mocks(m)
			c := &Client{Lattice: m}

			got, err := c.ServiceNetworkByName(context.Background(), cfn.NewStack("test"), tt.network)
			if tt.wantErr != "" {
				assert.EqualError(err, tt.wantErr)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tt.want, got)

			// cached: no further calls expected
			got, err = c.ServiceNetworkByName(context.Background(), cfn.NewStack("test"), tt.network)
			assert.NoError(err)
			assert.Equal(tt.want, got)
		})
	}
}

func TestClient_VpcCidr(t *testing.T) {
	assert := assert.New(t)
	ctrl := gomock.NewController(t)
	m := NewMockEC2API(ctrl)
	c := &Client{EC2: m}

	m.EXPECT().DescribeVpcs(gomock.Any(), &ec2.DescribeVpcsInput{VpcIds: []string{"vpc-1"}}, gomock.Any()).
		Return(&ec2.DescribeVpcsOutput{Vpcs: []ec2types.Vpc{{VpcId: aws.String("vpc-1"), CidrBlock: aws.String("10.0.0.0/16")}}}, nil).
		Times(1)
	m.EXPECT().DescribeVpcs(gomock.Any(), &ec2.DescribeVpcsInput{VpcIds: []string{"vpc-2"}}, gomock.Any()).
		Return(&ec2.DescribeVpcsOutput{}, nil)

	for i := 0; i < 2; i++ {
		cidr, err := c.VpcCidr(context.Background(), "vpc-1")
		assert.NoError(err)
		assert.Equal("10.0.0.0/16", cidr)
	}

	_, err := c.VpcCidr(context.Background(), "vpc-2")
	assert.EqualError(err, "VPC vpc-2: not found")
	assert.ErrorIs(err, ErrNotFound)
}

func TestClient_RoleArn(t *testing.T) {
	assert := assert.New(t)
	ctrl := gomock.NewController(t)
	m := NewMockIAMAPI(ctrl)
	c := &Client{IAM: m}

	m.EXPECT().GetRole(gomock.Any(), &iam.GetRoleInput{RoleName: aws.String("caller")}, gomock.Any()).
		Return(&iam.GetRoleOutput{Role: &iamtypes.Role{Arn: aws.String("arn:aws:iam::123456789012:role/caller")}}, nil)
	m.EXPECT().GetRole(gomock.Any(), &iam.GetRoleInput{RoleName: aws.String("missing")}, gomock.Any()).
		Return(nil, errors.New("NoSuchEntity"))

	arn, err := c.RoleArn(context.Background(), nil, "caller")
	assert.NoError(err)
	assert.Equal("arn:aws:iam::123456789012:role/caller", arn)

	_, err = c.RoleArn(context.Background(), nil, "missing")
	assert.EqualError(err, "failed to get role missing: NoSuchEntity")
}

func TestClient_Lookups(t *testing.T) {
	c := &Client{}
	lookups := c.Lookups()
	assert.Same(t, c, lookups.OrgId)
	assert.Same(t, c, lookups.Vpcs)
}
