package lattice

import (
	"fmt"
	"regexp"

	"github.com/klothoplatform/lattice/pkg/cfn"
	"github.com/klothoplatform/lattice/pkg/construct"
	"github.com/klothoplatform/lattice/pkg/iam"
	"go.uber.org/zap"
)

// Origin tells whether a service or service network is created by the stack or references an existing one.
type Origin int

const (
	OriginOwned Origin = iota
	OriginImported
)

func (o Origin) String() string {
	if o == OriginImported {
		return "imported"
	}
	return "owned"
}

type (
	// HostedZone receives the DNS entry of the service. The entry's domain is ZoneName, or the service's custom
	// domain when ZoneName is empty.
	HostedZone struct {
		ZoneName     string
		HostedZoneId string
	}

	ServiceProps struct {
		Name           string
		Authorization  *Authorizer
		CertificateArn string
		CustomDomain   string
		HostedZone     *HostedZone
		// Shares share the service with other accounts through RAM.
		Shares []ShareProps
		// ServiceNetwork, when set, associates the service with the network.
		ServiceNetwork *ServiceNetwork
	}

	Service struct {
		Name     string
		AuthType AuthType
		Origin   Origin

		stack     *Stack
		path      string
		policy    *iam.PolicyDocument
		listeners []*Listener
		resource  *construct.Resource
		// policyResource is the single AuthPolicy resource, created on first apply.
		policyResource *construct.Resource
		// id and arn are literal values for imported services.
		id, arn any
	}
)

func NewService(stack *Stack, id string, props ServiceProps) (*Service, error) {
	if props.Name != "" && !validLatticeName(props.Name) {
		return nil, invalid("The service  name must be between 3 and 63 characters long. The name can only contain alphanumeric characters and hyphens. The name must be unique to the account.")
	}
	authType := authTypeOrDefault(props.Authorization)

	properties := construct.Properties{
		"AuthType": string(authType),
	}
	properties.SetProperty("Name", nilIfEmpty(props.Name))
	properties.SetProperty("CertificateArn", nilIfEmpty(props.CertificateArn))
	properties.SetProperty("CustomDomainName", nilIfEmpty(props.CustomDomain))
	if props.HostedZone != nil {
		domain := props.HostedZone.ZoneName
		if domain == "" {
			domain = props.CustomDomain
		}
		if domain == "" {
			return nil, invalid("A hosted zone requires a zone name or a custom domain")
		}
		properties["DnsEntry"] = map[string]any{
			"DomainName":   domain,
			"HostedZoneId": props.HostedZone.HostedZoneId,
		}
	}

	s := &Service{
		Name:     props.Name,
		AuthType: authType,
		Origin:   OriginOwned,
		stack:    stack,
		path:     id,
		policy:   iam.NewPolicyDocument(),
	}
	ids := []construct.ResourceId{stack.Id(ServiceType, id)}
	for _, share := range props.Shares {
		sid, err := shareId(stack, id, share)
		if err != nil {
			return nil, err
		}
		ids = append(ids, sid)
	}
	if props.ServiceNetwork != nil {
		ids = append(ids, serviceAssociationId(s, props.ServiceNetwork))
	}
	if err := stack.checkNew(ids...); err != nil {
		return nil, err
	}

	var err error
	s.resource, err = stack.add(ServiceType, id, properties)
	if err != nil {
		return nil, err
	}

	for _, share := range props.Shares {
		if err := s.ShareToAccounts(share); err != nil {
			return nil, err
		}
	}
	if props.ServiceNetwork != nil {
		if err := s.AssociateWithServiceNetwork(props.ServiceNetwork); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ImportService references an existing service by id. Listeners and associations may still be added, but the
// service's auth policy and shares cannot be changed.
func ImportService(stack *Stack, id string, serviceId string) (*Service, error) {
	if serviceId == "" {
		return nil, invalid("A service id must be provided")
	}
	return &Service{
		AuthType: AuthTypeIam,
		Origin:   OriginImported,
		stack:    stack,
		path:     id,
		policy:   iam.NewPolicyDocument(),
		id:       serviceId,
		arn:      cfn.Arn("vpc-lattice", "service/"+serviceId),
	}, nil
}

var latticeNamePattern = regexp.MustCompile(`^[a-z0-9\-]{3,63}$`)

func validLatticeName(name string) bool {
	return latticeNamePattern.MatchString(name)
}

// ServiceId is the service's id: a literal for imported services, a deploy-time token otherwise.
func (s *Service) ServiceId() any {
	if s.Origin == OriginImported {
		return s.id
	}
	return s.resource.Attr("Id")
}

func (s *Service) ServiceArn() any {
	if s.Origin == OriginImported {
		return s.arn
	}
	return s.resource.Attr("Arn")
}

// Url is the service's generated DNS name.
func (s *Service) Url() any {
	if s.Origin == OriginImported {
		return nil
	}
	return s.resource.Attr("DnsEntry.DomainName")
}

// ResourceId is the id of the service's resource in the stack, zero for imported services.
func (s *Service) ResourceId() construct.ResourceId {
	if s.resource == nil {
		return construct.ResourceId{}
	}
	return s.resource.ID
}

func (s *Service) Listeners() []*Listener {
	return append([]*Listener(nil), s.listeners...)
}

// AuthPolicy is the service's policy accumulator. It is only attached to the service by ApplyAuthPolicy.
func (s *Service) AuthPolicy() *iam.PolicyDocument {
	return s.policy
}

func (s *Service) errImported(operation string) error {
	return newError(ErrImported, fmt.Sprintf("It is not possible to %s an imported Service", operation))
}

// GrantAccess allows `principals` to invoke any path of the service.
func (s *Service) GrantAccess(principals ...iam.Principal) error {
	if s.Origin == OriginImported {
		return s.errImported("grant access to")
	}
	s.policy.AddStatements(
		iam.NewStatement(iam.EffectAllow, invokeAction).
			AddResources("*").
			AddPrincipals(principals...),
	)
	return nil
}

func (s *Service) AddPolicyStatement(statement *iam.Statement) error {
	if s.Origin == OriginImported {
		return s.errImported("add a policy statement to")
	}
	s.policy.AddStatements(statement)
	return nil
}

// ApplyAuthPolicy validates the accumulated policy and attaches it to the service. The service has a single
// AuthPolicy resource: applying again replaces its document with the current one. Applying an empty policy
// is a no-op.
func (s *Service) ApplyAuthPolicy() (*iam.PolicyDocument, error) {
	if err := s.checkAuthPolicy(s.policy); err != nil {
		return nil, err
	}
	if s.policy.IsEmpty() {
		zap.L().Debug("service auth policy has no statements, nothing to apply", zap.String("service", s.path))
		return nil, nil
	}

	doc := s.policy.Render()
	if s.policyResource != nil {
		if err := s.stack.SetProperty(s.policyResource.ID, "Policy", doc); err != nil {
			return nil, err
		}
		return s.policy, nil
	}
	r, err := s.stack.add(AuthPolicyType, path(s.path, "AuthPolicy"), construct.Properties{
		"Policy":             doc,
		"ResourceIdentifier": s.ServiceId(),
	})
	if err != nil {
		return nil, err
	}
	s.policyResource = r
	return s.policy, nil
}

// checkAuthPolicy returns the error ApplyAuthPolicy would return for `doc`.
func (s *Service) checkAuthPolicy(doc *iam.PolicyDocument) error {
	if s.Origin == OriginImported {
		return s.errImported("apply an auth policy to")
	}
	if s.AuthType == AuthTypeNone {
		return newError(ErrAuthTypeNone, "Can not apply a policy when authType is NONE")
	}
	if doc.IsEmpty() {
		return nil
	}
	if err := validateResourcePolicy(doc); err != nil {
		return &Error{Kind: ErrInvalidPolicy, Message: "The provided auth policy is not a valid Resource Policy", Cause: err}
	}
	return nil
}

func validateResourcePolicy(doc *iam.PolicyDocument) error {
	if err := doc.ValidateForResourcePolicy(); err != nil {
		return err
	}
	return doc.ValidateSchema()
}

// ShareToAccounts shares the service through a RAM resource share.
func (s *Service) ShareToAccounts(props ShareProps) error {
	if s.Origin == OriginImported {
		return s.errImported("share")
	}
	return share(s.stack, s.path, s.ServiceArn(), props)
}

// AssociateWithServiceNetwork associates the service with `network`.
func (s *Service) AssociateWithServiceNetwork(network *ServiceNetwork) error {
	return associateService(s, network)
}

// AddLoggingDestination sends the service's access logs to `destination`.
func (s *Service) AddLoggingDestination(destination LoggingDestination) error {
	if s.Origin == OriginImported {
		return s.errImported("add a logging destination to")
	}
	return addAccessLogSubscription(s.stack, s.path, s.ServiceArn(), destination)
}
