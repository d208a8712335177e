package lattice

import (
	"slices"

	"github.com/klothoplatform/lattice/pkg/construct"
	"github.com/klothoplatform/lattice/pkg/iam"
	"github.com/klothoplatform/lattice/pkg/set"
	"go.uber.org/zap"
)

// DefaultListenerAction is the action for requests no rule matches. Exactly one of FixedResponse (a status code)
// and Forward must be set.
type DefaultListenerAction struct {
	FixedResponse *int
	Forward       *WeightedTargetGroup
}

type ListenerProps struct {
	Name     string
	Protocol Protocol
	// Port defaults to 80 for HTTP and 443 for HTTPS.
	Port *int
	// DefaultAction defaults to a fixed 404 response.
	DefaultAction *DefaultListenerAction
	// Rules are added in order, after which the service's auth policy is applied.
	Rules []RuleProps
}

type Listener struct {
	Name     string
	Protocol Protocol
	Port     int
	Service  *Service

	path       string
	priorities set.Set[int]
	rules      []*Rule
	resource   *construct.Resource
}

// AddListener creates a listener on the service. See [NewListener].
func (s *Service) AddListener(id string, props ListenerProps) (*Listener, error) {
	return NewListener(s, id, props)
}

func NewListener(service *Service, id string, props ListenerProps) (*Listener, error) {
	defaultAction, err := props.defaultAction()
	if err != nil {
		return nil, err
	}

	if props.Port != nil && (*props.Port < 1 || *props.Port > 65535) {
		return nil, invalid("Port out of range")
	}

	protocol := props.Protocol
	if protocol == "" {
		protocol = ProtocolHttps
	}
	var port int
	switch protocol {
	case ProtocolHttp:
		port = 80
	case ProtocolHttps:
		port = 443
	default:
		return nil, invalid("Protocol not supported")
	}
	if props.Port != nil {
		port = *props.Port
	}

	if props.Name != "" && !validLatticeName(props.Name) {
		return nil, invalid("The listener name must be between 3 and 63 characters long. The name can only contain  lower case alphanumeric characters and hyphens. The name must be unique to the account.")
	}

	properties := construct.Properties{
		"DefaultAction":     defaultAction,
		"Protocol":          string(protocol),
		"Port":              port,
		"ServiceIdentifier": service.ServiceId(),
	}
	properties.SetProperty("Name", nilIfEmpty(props.Name))

	l := &Listener{
		Name:       props.Name,
		Protocol:   protocol,
		Port:       port,
		Service:    service,
		path:       path(service.path, id),
		priorities: make(set.Set[int]),
	}

	// Initial rules are all checked, together with the resulting auth policy, before anything is added so a
	// failing rule leaves neither the listener nor earlier rules behind.
	planned := make([]*plannedRule, 0, len(props.Rules))
	ids := []construct.ResourceId{service.stack.Id(ListenerType, l.path)}
	statements := slices.Clone(service.policy.Statement)
	used := make(set.Set[int])
	for _, rule := range props.Rules {
		p, err := l.planRule(rule, used)
		if err != nil {
			return nil, err
		}
		used.Add(p.priority)
		planned = append(planned, p)
		ids = append(ids, p.id)
		if p.statement != nil {
			statements = append(statements, p.statement)
		}
	}
	if err := service.stack.checkNew(ids...); err != nil {
		return nil, err
	}
	if len(planned) > 0 {
		if err := service.checkAuthPolicy(iam.NewPolicyDocument(statements...)); err != nil {
			return nil, err
		}
	}

	l.resource, err = service.stack.add(ListenerType, l.path, properties)
	if err != nil {
		return nil, err
	}
	service.listeners = append(service.listeners, l)

	if len(planned) > 0 {
		for _, p := range planned {
			if _, err := l.addRule(p); err != nil {
				return nil, err
			}
		}
		if _, err := service.ApplyAuthPolicy(); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (p ListenerProps) defaultAction() (map[string]any, error) {
	if p.DefaultAction == nil {
		return FixedResponse{StatusCode: FixedResponseNotFound}.properties(), nil
	}
	a := p.DefaultAction
	switch {
	case a.FixedResponse != nil && a.Forward != nil:
		return nil, invalid("Both fixedResponse and foward are set")
	case a.FixedResponse == nil && a.Forward == nil:
		return nil, invalid("At least one of fixedResponse or foward must be set")
	case a.FixedResponse != nil:
		action := FixedResponse{StatusCode: *a.FixedResponse}
		if err := action.validate(); err != nil {
			return nil, err
		}
		return action.properties(), nil
	default:
		action := Forward{TargetGroups: []WeightedTargetGroup{*a.Forward}}
		if err := action.validate(); err != nil {
			return nil, err
		}
		return action.properties(), nil
	}
}

func (l *Listener) ResourceId() construct.ResourceId {
	return l.resource.ID
}

func (l *Listener) ListenerId() construct.PropertyRef {
	return l.resource.Attr("Id")
}

func (l *Listener) ListenerArn() construct.PropertyRef {
	return l.resource.Attr("Arn")
}

func (l *Listener) Rules() []*Rule {
	return append([]*Rule(nil), l.rules...)
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func logRule(l *Listener, r *Rule) {
	fields := []zap.Field{
		zap.String("listener", l.path),
		zap.String("rule", r.Name),
		zap.Int("priority", r.Priority),
		zap.String("access_mode", string(r.AccessMode)),
	}
	if r.Statement != nil && !r.Statement.HasPrincipal() {
		zap.L().Warn("rule auth statement has no principals, the service auth policy will fail validation", fields...)
		return
	}
	zap.L().Debug("added listener rule", fields...)
}
