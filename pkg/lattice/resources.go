package lattice

import "github.com/klothoplatform/lattice/pkg/cfn"

const (
	ServiceType               = "vpclattice_service"
	ListenerType              = "vpclattice_listener"
	RuleType                  = "vpclattice_rule"
	TargetGroupType           = "vpclattice_target_group"
	AuthPolicyType            = "vpclattice_auth_policy"
	ServiceNetworkType        = "vpclattice_service_network"
	ServiceAssociationType    = "vpclattice_service_network_service_association"
	VpcAssociationType        = "vpclattice_service_network_vpc_association"
	AccessLogSubscriptionType = "vpclattice_access_log_subscription"
	ResourceShareType         = "ram_resource_share"
	SecurityGroupType         = "ec2_security_group"
	OrganizationLookupType    = "custom_organization_lookup"
	ServiceNetworkLookupType  = "custom_service_network_lookup"
)

const (
	invokeAction = "vpc-lattice-svcs:Invoke"

	operatorStringEquals              = "StringEquals"
	operatorStringNotEqualsIgnoreCase = "StringNotEqualsIgnoreCase"

	conditionPrincipalOrgId      = "aws:PrincipalOrgID"
	conditionPrincipalType       = "aws:PrincipalType"
	conditionRequestMethod       = "vpc-lattice-svcs:RequestMethod"
	conditionRequestHeaderPrefix = "vpc-lattice-svcs:RequestHeader/"
)

func init() {
	for short, cfnType := range map[string]string{
		ServiceType:               "AWS::VpcLattice::Service",
		ListenerType:              "AWS::VpcLattice::Listener",
		RuleType:                  "AWS::VpcLattice::Rule",
		TargetGroupType:           "AWS::VpcLattice::TargetGroup",
		AuthPolicyType:            "AWS::VpcLattice::AuthPolicy",
		ServiceNetworkType:        "AWS::VpcLattice::ServiceNetwork",
		ServiceAssociationType:    "AWS::VpcLattice::ServiceNetworkServiceAssociation",
		VpcAssociationType:        "AWS::VpcLattice::ServiceNetworkVpcAssociation",
		AccessLogSubscriptionType: "AWS::VpcLattice::AccessLogSubscription",
		ResourceShareType:         "AWS::RAM::ResourceShare",
		SecurityGroupType:         "AWS::EC2::SecurityGroup",
		OrganizationLookupType:    "Custom::OrganizationLookup",
		ServiceNetworkLookupType:  "Custom::ServiceNetworkLookup",
	} {
		cfn.RegisterResourceType(short, cfnType)
	}
}
