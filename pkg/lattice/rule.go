package lattice

import (
	"fmt"
	"strings"

	"github.com/klothoplatform/lattice/pkg/cfn"
	"github.com/klothoplatform/lattice/pkg/construct"
	"github.com/klothoplatform/lattice/pkg/iam"
	"github.com/klothoplatform/lattice/pkg/sanitization"
	"github.com/klothoplatform/lattice/pkg/set"
)

type RuleAccessMode string

const (
	// RuleAccessUnauthenticated allows anyone, including anonymous callers.
	RuleAccessUnauthenticated RuleAccessMode = "UNAUTHENTICATED"
	// RuleAccessAuthenticatedOnly denies anonymous callers.
	RuleAccessAuthenticatedOnly RuleAccessMode = "AUTHENTICATED"
	// RuleAccessOrgOnly allows only authenticated callers of the deploying account's organization.
	RuleAccessOrgOnly RuleAccessMode = "ORG_ONLY"
	// RuleAccessNoStatement adds no statement to the service's auth policy.
	RuleAccessNoStatement RuleAccessMode = "NO_STATEMENT"
)

const defaultRulePriority = 50

type RuleProps struct {
	Name      string
	Action    RuleAction
	HttpMatch HttpMatch
	// Priority must be between 1 and 100 and unique within the listener. Defaults to 50.
	Priority             *int
	AccessMode           RuleAccessMode
	AllowedPrincipals    []iam.Principal
	AllowedPrincipalArns []string
}

// Rule is an immutable listener rule.
type Rule struct {
	Name       string
	Priority   int
	HttpMatch  HttpMatch
	Action     RuleAction
	AccessMode RuleAccessMode
	// Statement is the auth policy statement contributed to the service, nil for NO_STATEMENT.
	Statement *iam.Statement

	resource *construct.Resource
}

// AddRule validates `props` and adds the rule to the listener and its statement to the service's auth policy.
// A rule that fails validation leaves the listener and the policy unchanged.
func (l *Listener) AddRule(props RuleProps) (*Rule, error) {
	p, err := l.planRule(props, l.priorities)
	if err != nil {
		return nil, err
	}
	return l.addRule(p)
}

// plannedRule is a rule that passed validation and can be added without further checks.
type plannedRule struct {
	props     RuleProps
	id        construct.ResourceId
	priority  int
	statement *iam.Statement
}

// planRule runs every check of AddRule against the `used` priorities without changing the listener, the
// service's policy or the stack.
func (l *Listener) planRule(props RuleProps, used set.Set[int]) (*plannedRule, error) {
	if props.Name == "" {
		return nil, invalid("A rule name must be provided")
	}
	name := sanitization.ConstructIdSanitizer.Apply(props.Name)
	if strings.Trim(name, "-_.") == "" {
		return nil, invalid(fmt.Sprintf("The rule name %q must contain alphanumeric characters", props.Name))
	}
	if props.Action == nil {
		return nil, invalid("A rule action must be provided")
	}
	if err := props.Action.validate(); err != nil {
		return nil, err
	}

	priority := defaultRulePriority
	if props.Priority != nil {
		priority = *props.Priority
	}
	if used.Contains(priority) {
		return nil, &Error{
			Kind:    ErrDuplicatePriority,
			Message: "Priority is already in use, ensure all listerner rules have unique prioritys",
		}
	}
	if priority < 1 || priority > 100 {
		return nil, invalid("Priority must be between 1 and 100")
	}

	if err := props.HttpMatch.validate(); err != nil {
		return nil, err
	}
	switch props.AccessMode {
	case "", RuleAccessUnauthenticated, RuleAccessAuthenticatedOnly, RuleAccessOrgOnly, RuleAccessNoStatement:
	default:
		return nil, invalid(fmt.Sprintf("unsupported access mode %q", props.AccessMode))
	}
	if props.AccessMode == RuleAccessUnauthenticated && (len(props.AllowedPrincipals) > 0 || len(props.AllowedPrincipalArns) > 0) {
		return nil, invalid("An unauthenticated rule cannot have allowedPrincipals")
	}

	p := &plannedRule{
		props:    props,
		id:       l.Service.stack.Id(RuleType, path(l.path, name+"-Rule")),
		priority: priority,
	}
	if props.AccessMode != RuleAccessNoStatement {
		var err error
		p.statement, err = l.ruleStatement(props)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (l *Listener) addRule(p *plannedRule) (*Rule, error) {
	props := p.props
	r := &construct.Resource{ID: p.id, Properties: construct.Properties{
		"Action":             props.Action.properties(),
		"Match":              map[string]any{"HttpMatch": props.HttpMatch.properties()},
		"Priority":           p.priority,
		"ListenerIdentifier": l.ListenerId(),
		"ServiceIdentifier":  l.Service.ServiceId(),
	}}
	if err := l.Service.stack.AddResource(r); err != nil {
		return nil, err
	}

	rule := &Rule{
		Name:       props.Name,
		Priority:   p.priority,
		HttpMatch:  props.HttpMatch,
		Action:     props.Action,
		AccessMode: props.AccessMode,
		Statement:  p.statement,
		resource:   r,
	}
	l.priorities.Add(p.priority)
	l.rules = append(l.rules, rule)
	if p.statement != nil {
		l.Service.policy.AddStatements(p.statement)
	}
	logRule(l, rule)
	return rule, nil
}

// ruleStatement builds the Invoke statement granting the rule's callers access to the requests it matches.
func (l *Listener) ruleStatement(props RuleProps) (*iam.Statement, error) {
	stmt := iam.NewStatement(iam.EffectAllow, invokeAction)

	switch props.AccessMode {
	case RuleAccessUnauthenticated:
		stmt.AddPrincipals(iam.StarPrincipal{})

	case RuleAccessAuthenticatedOnly:
		stmt.AddCondition(operatorStringNotEqualsIgnoreCase, conditionPrincipalType, "Anonymous")

	case RuleAccessOrgOnly:
		orgId, err := l.Service.stack.OrgId()
		if err != nil {
			return nil, fmt.Errorf("could not resolve organization id for rule %s: %w", props.Name, err)
		}
		stmt.AddCondition(operatorStringEquals, conditionPrincipalOrgId, []any{orgId})
		stmt.AddCondition(operatorStringNotEqualsIgnoreCase, conditionPrincipalType, "Anonymous")
	}

	stmt.AddPrincipals(props.AllowedPrincipals...)
	for _, arn := range props.AllowedPrincipalArns {
		stmt.AddPrincipals(iam.ArnPrincipal{Arn: arn})
	}

	m := props.HttpMatch
	if m.Method != "" {
		stmt.AddCondition(operatorStringEquals, conditionRequestMethod, string(m.Method))
	}
	if m.PathMatch != nil {
		resource := []any{"service/", l.Service.ServiceId(), m.PathMatch.Path}
		if m.PathMatch.matchType() == PathMatchPrefix {
			resource = append(resource, "*")
		}
		stmt.AddResources(cfn.Arn("vpc-lattice", resource...))
	}
	for _, h := range m.HeaderMatches {
		stmt.AddCondition(operatorStringEquals, conditionRequestHeaderPrefix+h.Name, h.conditionValue())
	}
	return stmt, nil
}

func (r *Rule) ResourceId() construct.ResourceId {
	return r.resource.ID
}

func (r *Rule) RuleArn() construct.PropertyRef {
	return r.resource.Attr("Arn")
}
