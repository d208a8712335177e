package lattice

import (
	"fmt"

	"github.com/klothoplatform/lattice/pkg/cfn"
	"github.com/klothoplatform/lattice/pkg/construct"
	"github.com/klothoplatform/lattice/pkg/iam"
	"go.uber.org/zap"
)

type NetworkAccessMode string

const (
	NetworkAccessUnauthenticated   NetworkAccessMode = "UNAUTHENTICATED"
	NetworkAccessAuthenticatedOnly NetworkAccessMode = "AUTHENTICATED"
	NetworkAccessOrgOnly           NetworkAccessMode = "ORG_ONLY"
)

type (
	ServiceNetworkProps struct {
		Name                string
		Authorization       *Authorizer
		LoggingDestinations []LoggingDestination
		Services            []*Service
		Vpcs                []VpcAssociationProps
		AccessMode          NetworkAccessMode
		// AuthStatements are added after the access mode statement. When any are given, the auth policy is
		// applied as part of construction.
		AuthStatements []*iam.Statement
	}

	// VpcAssociationProps associates a VPC with a service network.
	VpcAssociationProps struct {
		VpcId any
		// SecurityGroupIds are attached to the association. When empty, a security group allowing tcp/443 from
		// the VPC's CIDR block is created.
		SecurityGroupIds []any
		// CidrBlock of the VPC, used for the default security group. Looked up through the stack's VpcResolver
		// when not set.
		CidrBlock any
	}

	ServiceNetwork struct {
		Name       string
		AuthType   AuthType
		AccessMode NetworkAccessMode
		Origin     Origin

		stack          *Stack
		path           string
		policy         *iam.PolicyDocument
		resource       *construct.Resource
		policyResource *construct.Resource
		// id and arn hold the values of imported networks.
		id, arn any
	}
)

func NewServiceNetwork(stack *Stack, id string, props ServiceNetworkProps) (*ServiceNetwork, error) {
	if props.Name != "" && !validLatticeName(props.Name) {
		return nil, invalid("Theservice network name must be between 3 and 63 characters long. The name can only contain alphanumeric characters and hyphens. The name must be unique to the account.")
	}
	authType := authTypeOrDefault(props.Authorization)
	if props.AccessMode != "" && authType == AuthTypeNone {
		return nil, invalid("AccessMode can not be set if AuthType is NONE")
	}
	switch props.AccessMode {
	case "", NetworkAccessUnauthenticated, NetworkAccessAuthenticatedOnly, NetworkAccessOrgOnly:
	default:
		return nil, invalid(fmt.Sprintf("unsupported access mode %q", props.AccessMode))
	}

	properties := construct.Properties{
		"AuthType": string(authType),
	}
	properties.SetProperty("Name", nilIfEmpty(props.Name))

	n := &ServiceNetwork{
		Name:       props.Name,
		AuthType:   authType,
		AccessMode: props.AccessMode,
		Origin:     OriginOwned,
		stack:      stack,
		path:       id,
		policy:     iam.NewPolicyDocument(),
	}

	// Lookups and validation all happen before the first resource is added, so a failure leaves the stack
	// unchanged.
	statement := iam.NewStatement(iam.EffectAllow, invokeAction).
		AddResources("*").
		AddPrincipals(iam.StarPrincipal{})
	switch props.AccessMode {
	case NetworkAccessOrgOnly:
		orgId, err := stack.OrgId()
		if err != nil {
			return nil, fmt.Errorf("could not resolve organization id for service network %s: %w", id, err)
		}
		statement.AddCondition(operatorStringEquals, conditionPrincipalOrgId, []any{orgId})
		statement.AddCondition(operatorStringNotEqualsIgnoreCase, conditionPrincipalType, "Anonymous")
	case NetworkAccessAuthenticatedOnly:
		statement.AddCondition(operatorStringNotEqualsIgnoreCase, conditionPrincipalType, "Anonymous")
	}
	n.policy.AddStatements(statement)

	ids := []construct.ResourceId{stack.Id(ServiceNetworkType, id)}
	if len(props.AuthStatements) > 0 {
		n.policy.AddStatements(props.AuthStatements...)
		if err := n.checkAuthPolicy(n.policy); err != nil {
			return nil, err
		}
		ids = append(ids, stack.Id(AuthPolicyType, path(id, "AuthPolicy")))
	}
	for _, d := range props.LoggingDestinations {
		logId, err := accessLogSubscriptionId(stack, id, d)
		if err != nil {
			return nil, err
		}
		ids = append(ids, logId)
	}
	vpcs := make([]vpcAssociation, len(props.Vpcs))
	for i, vpc := range props.Vpcs {
		var err error
		if vpcs[i], err = n.planVpcAssociation(vpc); err != nil {
			return nil, err
		}
		ids = append(ids, vpcs[i].ids()...)
	}
	for _, svc := range props.Services {
		if svc == nil {
			return nil, invalid("A service and a service network must be provided")
		}
		ids = append(ids, serviceAssociationId(svc, n))
	}
	if err := stack.checkNew(ids...); err != nil {
		return nil, err
	}

	var err error
	n.resource, err = stack.add(ServiceNetworkType, id, properties)
	if err != nil {
		return nil, err
	}
	for _, d := range props.LoggingDestinations {
		if err := n.AddLoggingDestination(d); err != nil {
			return nil, err
		}
	}
	for _, vpc := range vpcs {
		if err := n.addVpcAssociation(vpc); err != nil {
			return nil, err
		}
	}
	for _, svc := range props.Services {
		if err := n.AddService(svc); err != nil {
			return nil, err
		}
	}
	if len(props.AuthStatements) > 0 {
		if _, err := n.ApplyAuthPolicyToServiceNetwork(); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// ImportServiceNetworkById references an existing service network. Services and VPCs may be associated with
// it, but its policy, logging and shares cannot be changed.
func ImportServiceNetworkById(stack *Stack, id string, networkId string) (*ServiceNetwork, error) {
	return importServiceNetwork(stack, id, "", networkId)
}

// ImportServiceNetworkByName references an existing service network by name, resolving its id through the
// stack's ServiceNetworkResolver.
func ImportServiceNetworkByName(stack *Stack, id string, name string) (*ServiceNetwork, error) {
	return importServiceNetwork(stack, id, name, "")
}

func importServiceNetwork(stack *Stack, id, name, networkId string) (*ServiceNetwork, error) {
	if name != "" && networkId != "" {
		return nil, invalid("Only one of serviceNetworkName or serviceNetworkId can be defined")
	}
	if name == "" && networkId == "" {
		return nil, invalid("One of serviceNetworkName or serviceNetworkId must be defined")
	}
	n := &ServiceNetwork{
		Name:     name,
		AuthType: AuthTypeIam,
		Origin:   OriginImported,
		stack:    stack,
		path:     id,
		policy:   iam.NewPolicyDocument(),
	}
	if networkId != "" {
		n.id = networkId
		n.arn = cfn.Arn("vpc-lattice", "servicenetwork/"+networkId)
		return n, nil
	}

	if stack.Lookups.ServiceNetworks == nil {
		return nil, invalid("no service network resolver configured")
	}
	ref, err := stack.Lookups.ServiceNetworks.ServiceNetworkByName(stack.ctx, stack.Stack, name)
	if err != nil {
		return nil, fmt.Errorf("could not find service network %s: %w", name, err)
	}
	n.id = ref.Id
	n.arn = ref.Arn
	if n.arn == nil {
		n.arn = cfn.Arn("vpc-lattice", "servicenetwork/", ref.Id)
	}
	return n, nil
}

func (n *ServiceNetwork) ServiceNetworkId() any {
	if n.Origin == OriginImported {
		return n.id
	}
	return n.resource.Attr("Id")
}

func (n *ServiceNetwork) ServiceNetworkArn() any {
	if n.Origin == OriginImported {
		return n.arn
	}
	return n.resource.Attr("Arn")
}

// ResourceId is the id of the network's resource in the stack, zero for imported networks.
func (n *ServiceNetwork) ResourceId() construct.ResourceId {
	if n.resource == nil {
		return construct.ResourceId{}
	}
	return n.resource.ID
}

func (n *ServiceNetwork) AuthPolicy() *iam.PolicyDocument {
	return n.policy
}

// AddService associates `service` with the network.
func (n *ServiceNetwork) AddService(service *Service) error {
	return associateService(service, n)
}

func serviceAssociationId(s *Service, n *ServiceNetwork) construct.ResourceId {
	return n.stack.Id(ServiceAssociationType, path(n.path, "ServiceAssociation"+construct.Addr(s.path)))
}

func associateService(s *Service, n *ServiceNetwork) error {
	if s == nil || n == nil {
		return invalid("A service and a service network must be provided")
	}
	return n.stack.AddResource(&construct.Resource{ID: serviceAssociationId(s, n), Properties: construct.Properties{
		"ServiceIdentifier":        s.ServiceId(),
		"ServiceNetworkIdentifier": n.ServiceNetworkId(),
	}})
}

// vpcAssociation is a VPC association whose CIDR block, when a default security group is needed, has been
// resolved.
type vpcAssociation struct {
	props  VpcAssociationProps
	parent string
	stack  *Stack
}

func (v vpcAssociation) needsSecurityGroup() bool {
	return len(v.props.SecurityGroupIds) == 0
}

func (v vpcAssociation) securityGroupId() construct.ResourceId {
	return v.stack.Id(SecurityGroupType, path(v.parent, "ServiceNetworkSecurityGroup"))
}

func (v vpcAssociation) associationId() construct.ResourceId {
	return v.stack.Id(VpcAssociationType, path(v.parent, "VpcAssociation"))
}

func (v vpcAssociation) ids() []construct.ResourceId {
	if v.needsSecurityGroup() {
		return []construct.ResourceId{v.securityGroupId(), v.associationId()}
	}
	return []construct.ResourceId{v.associationId()}
}

// AssociateVpc associates a VPC with the network, creating a default security group when none is given.
func (n *ServiceNetwork) AssociateVpc(props VpcAssociationProps) error {
	vpc, err := n.planVpcAssociation(props)
	if err != nil {
		return err
	}
	if err := n.stack.checkNew(vpc.ids()...); err != nil {
		return err
	}
	return n.addVpcAssociation(vpc)
}

func (n *ServiceNetwork) planVpcAssociation(props VpcAssociationProps) (vpcAssociation, error) {
	if props.VpcId == nil || props.VpcId == "" {
		return vpcAssociation{}, invalid("A VPC id must be provided")
	}
	vpc := vpcAssociation{
		props:  props,
		parent: path(n.path, "AssociateVPC"+construct.Addr(fmt.Sprint(props.VpcId))),
		stack:  n.stack,
	}
	if !vpc.needsSecurityGroup() || (props.CidrBlock != nil && props.CidrBlock != "") {
		return vpc, nil
	}
	vpcId, ok := props.VpcId.(string)
	if !ok || n.stack.Lookups.Vpcs == nil {
		return vpcAssociation{}, invalid(fmt.Sprintf("A CIDR block must be provided for VPC %v to create its security group", props.VpcId))
	}
	cidr, err := n.stack.Lookups.Vpcs.VpcCidr(n.stack.ctx, vpcId)
	if err != nil {
		return vpcAssociation{}, fmt.Errorf("could not look up CIDR block of VPC %s: %w", vpcId, err)
	}
	vpc.props.CidrBlock = cidr
	return vpc, nil
}

func (n *ServiceNetwork) addVpcAssociation(vpc vpcAssociation) error {
	securityGroupIds := vpc.props.SecurityGroupIds
	if vpc.needsSecurityGroup() {
		sg, err := n.addDefaultSecurityGroup(vpc)
		if err != nil {
			return err
		}
		securityGroupIds = []any{sg.Attr("GroupId")}
	}
	return n.stack.AddResource(&construct.Resource{ID: vpc.associationId(), Properties: construct.Properties{
		"SecurityGroupIds":         securityGroupIds,
		"ServiceNetworkIdentifier": n.ServiceNetworkId(),
		"VpcIdentifier":            vpc.props.VpcId,
	}})
}

func (n *ServiceNetwork) addDefaultSecurityGroup(vpc vpcAssociation) (*construct.Resource, error) {
	zap.L().Debug("creating default service network security group",
		zap.String("network", n.path), zap.Any("vpc", vpc.props.VpcId))

	sg := &construct.Resource{ID: vpc.securityGroupId(), Properties: construct.Properties{
		"GroupDescription": "ServiceNetworkSecurityGroup",
		"VpcId":            vpc.props.VpcId,
		"SecurityGroupEgress": []any{
			map[string]any{
				"CidrIp":      "0.0.0.0/0",
				"Description": "Allow all outbound traffic by default",
				"IpProtocol":  "-1",
			},
		},
		"SecurityGroupIngress": []any{
			map[string]any{
				"CidrIp":      vpc.props.CidrBlock,
				"Description": "HTTPS from the VPC",
				"FromPort":    443,
				"IpProtocol":  "tcp",
				"ToPort":      443,
			},
		},
	}}
	return sg, n.stack.AddResource(sg)
}

// AddStatementToAuthPolicy grants access to every service on the network. It is only attached by
// ApplyAuthPolicyToServiceNetwork.
func (n *ServiceNetwork) AddStatementToAuthPolicy(statement *iam.Statement) error {
	if n.Origin == OriginImported {
		return newError(ErrImported, "It is not possible to add statements to an imported Service Network")
	}
	n.policy.AddStatements(statement)
	return nil
}

// ApplyAuthPolicyToServiceNetwork attaches the accumulated policy to the network. As for services, the network
// has a single AuthPolicy resource which is updated on subsequent applies.
func (n *ServiceNetwork) ApplyAuthPolicyToServiceNetwork() (*iam.PolicyDocument, error) {
	if err := n.checkAuthPolicy(n.policy); err != nil {
		return nil, err
	}

	doc := n.policy.Render()
	if n.policyResource != nil {
		if err := n.stack.SetProperty(n.policyResource.ID, "Policy", doc); err != nil {
			return nil, err
		}
		return n.policy, nil
	}
	r, err := n.stack.add(AuthPolicyType, path(n.path, "AuthPolicy"), construct.Properties{
		"Policy":             doc,
		"ResourceIdentifier": n.ServiceNetworkArn(),
	})
	if err != nil {
		return nil, err
	}
	n.policyResource = r
	return n.policy, nil
}

// checkAuthPolicy returns the error ApplyAuthPolicyToServiceNetwork would return for `doc`.
func (n *ServiceNetwork) checkAuthPolicy(doc *iam.PolicyDocument) error {
	if n.Origin == OriginImported {
		return newError(ErrImported, "It is not possible to apply an AuthPolicy on an imported ServiceNetwork")
	}
	if err := validateResourcePolicy(doc); err != nil {
		return &Error{Kind: ErrInvalidPolicy, Message: "Auth Policy for granting access on  Service Network is invalid", Cause: err}
	}
	if n.AuthType != AuthTypeIam {
		return newError(ErrAuthTypeNone, fmt.Sprintf("AuthType must be %s to add an Auth Policy", AuthTypeIam))
	}
	return nil
}

func (n *ServiceNetwork) AddLoggingDestination(destination LoggingDestination) error {
	if n.Origin == OriginImported {
		return newError(ErrImported, "It is not possible to add a logging destination to an imported Service Network")
	}
	return addAccessLogSubscription(n.stack, n.path, n.ServiceNetworkId(), destination)
}

// Share shares the network through a RAM resource share.
func (n *ServiceNetwork) Share(props ShareProps) error {
	if n.Origin == OriginImported {
		return newError(ErrImported, "It is not possible to share an imported Service Network")
	}
	return share(n.stack, n.path, n.ServiceNetworkArn(), props)
}
