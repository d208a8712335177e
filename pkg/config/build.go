package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/klothoplatform/lattice/pkg/cfn"
	"github.com/klothoplatform/lattice/pkg/iam"
	"github.com/klothoplatform/lattice/pkg/lattice"
	"github.com/klothoplatform/lattice/pkg/sanitization"
	"go.uber.org/zap"
)

const defaultStatementAction = "vpc-lattice-svcs:Invoke"

type builder struct {
	stack        *lattice.Stack
	targetGroups map[string]*lattice.TargetGroup
	services     map[string]*lattice.Service
}

// Build creates the constructs of `cfg` in `stack`: target groups first, then services (which forward to
// target groups by name), then service networks (which associate services by name). Building stops at the
// first error.
func Build(stack *lattice.Stack, cfg StackConfig) error {
	b := &builder{
		stack:        stack,
		targetGroups: make(map[string]*lattice.TargetGroup),
		services:     make(map[string]*lattice.Service),
	}
	for _, tg := range cfg.TargetGroups {
		if err := b.targetGroup(tg); err != nil {
			return fmt.Errorf("target group %s: %w", tg.Name, err)
		}
	}
	for _, svc := range cfg.Services {
		if err := b.service(svc); err != nil {
			return fmt.Errorf("service %s: %w", svc.Name, err)
		}
	}
	for _, n := range cfg.ServiceNetworks {
		if err := b.serviceNetwork(n); err != nil {
			return fmt.Errorf("service network %s: %w", n.Name, err)
		}
	}
	zap.L().Sugar().Debugf("built %d target groups, %d services and %d service networks",
		len(cfg.TargetGroups), len(cfg.Services), len(cfg.ServiceNetworks))
	return nil
}

func constructId(name string) (string, error) {
	if name == "" {
		return "", errors.New("a name must be provided")
	}
	return sanitization.ConstructIdSanitizer.Apply(name), nil
}

func outputName(name, suffix string) string {
	return sanitization.LogicalIdSanitizer.Apply(strcase.ToCamel(name) + suffix)
}

func (b *builder) targetGroup(cfg TargetGroup) error {
	id, err := constructId(cfg.Name)
	if err != nil {
		return err
	}
	if _, ok := b.targetGroups[cfg.Name]; ok {
		return fmt.Errorf("target group %s is defined more than once", cfg.Name)
	}

	props := lattice.TargetGroupProps{Name: cfg.Name}
	switch strings.ToLower(cfg.Type) {
	case "lambda":
		for _, t := range cfg.Targets {
			props.LambdaTargets = append(props.LambdaTargets, t)
		}
	case "ip", "instance", "alb":
		targetCfg := lattice.TargetConfig{
			IpAddressType:   lattice.IpAddressType(strings.ToUpper(cfg.IpAddressType)),
			Protocol:        lattice.Protocol(strings.ToUpper(cfg.Protocol)),
			Port:            cfg.Port,
			ProtocolVersion: lattice.ProtocolVersion(strings.ToUpper(cfg.ProtocolVersion)),
		}
		if cfg.Vpc != "" {
			targetCfg.VpcId = cfg.Vpc
		}
		if cfg.HealthCheck != nil {
			targetCfg.HealthCheck, err = healthCheck(*cfg.HealthCheck)
			if err != nil {
				return err
			}
		}
		props.Config = &targetCfg
		switch strings.ToLower(cfg.Type) {
		case "ip":
			props.IpTargets = cfg.Targets
		case "instance":
			props.InstanceTargets = cfg.Targets
		default:
			props.AlbTargets = cfg.Targets
		}
	default:
		return fmt.Errorf("unsupported target type %q, must be one of lambda, ip, instance or alb", cfg.Type)
	}

	tg, err := lattice.NewTargetGroup(b.stack, id, props)
	if err != nil {
		return err
	}
	b.targetGroups[cfg.Name] = tg
	return nil
}

func seconds(s *int) *time.Duration {
	if s == nil {
		return nil
	}
	d := time.Duration(*s) * time.Second
	return &d
}

func healthCheck(cfg HealthCheck) (*lattice.HealthCheck, error) {
	return lattice.NewHealthCheck(lattice.HealthCheckProps{
		Enabled:                 cfg.Enabled,
		Interval:                seconds(cfg.IntervalSeconds),
		Timeout:                 seconds(cfg.TimeoutSeconds),
		HealthyThresholdCount:   cfg.HealthyThreshold,
		UnhealthyThresholdCount: cfg.UnhealthyThreshold,
		Matcher:                 cfg.Matcher,
		Path:                    cfg.Path,
		Port:                    cfg.Port,
		Protocol:                lattice.Protocol(strings.ToUpper(cfg.Protocol)),
		ProtocolVersion:         lattice.ProtocolVersion(strings.ToUpper(cfg.ProtocolVersion)),
	})
}

func authorizer(authorization string) (*lattice.Authorizer, error) {
	switch t := lattice.AuthType(strings.ToUpper(authorization)); t {
	case "":
		return nil, nil
	case lattice.AuthTypeNone, lattice.AuthTypeIam:
		return &lattice.Authorizer{Type: t}, nil
	default:
		return nil, fmt.Errorf("unsupported authorization %q, must be NONE or AWS_IAM", authorization)
	}
}

func destination(cfg Destination) (lattice.LoggingDestination, error) {
	var arn any
	if cfg.Arn != "" {
		arn = cfg.Arn
	}
	switch strings.ToLower(cfg.Type) {
	case "s3":
		return lattice.S3Destination(arn), nil
	case "kinesis":
		return lattice.KinesisDestination(arn), nil
	case "cloudwatch":
		return lattice.CloudWatchDestination(arn), nil
	default:
		return lattice.LoggingDestination{}, fmt.Errorf("unsupported logging destination type %q, must be one of s3, kinesis or cloudwatch", cfg.Type)
	}
}

func shareProps(cfg Share) lattice.ShareProps {
	return lattice.ShareProps{
		Name:                    cfg.Name,
		AllowExternalPrincipals: cfg.AllowExternal,
		Accounts:                cfg.Accounts,
		Tags:                    cfg.Tags,
	}
}

func (b *builder) statement(cfg Statement) (*iam.Statement, error) {
	effect := iam.EffectAllow
	switch strings.ToLower(cfg.Effect) {
	case "", "allow":
	case "deny":
		effect = iam.EffectDeny
	default:
		return nil, fmt.Errorf("unsupported statement effect %q", cfg.Effect)
	}
	actions := cfg.Actions
	if len(actions) == 0 {
		actions = []string{defaultStatementAction}
	}

	s := iam.NewStatement(effect, actions...)
	s.Sid = cfg.Sid
	for _, r := range cfg.Resources {
		s.AddResources(r)
	}
	principals, err := decodePrincipals(b.stack, cfg.Principals)
	if err != nil {
		return nil, err
	}
	s.AddPrincipals(principals...)

	operators := make([]string, 0, len(cfg.Conditions))
	for op := range cfg.Conditions {
		operators = append(operators, op)
	}
	sort.Strings(operators)
	for _, op := range operators {
		for key, value := range cfg.Conditions[op] {
			s.AddCondition(op, key, value)
		}
	}
	return s, nil
}

func (b *builder) service(cfg Service) error {
	id, err := constructId(cfg.Name)
	if err != nil {
		return err
	}
	if _, ok := b.services[cfg.Name]; ok {
		return fmt.Errorf("service %s is defined more than once", cfg.Name)
	}

	var svc *lattice.Service
	if cfg.Import != "" {
		svc, err = lattice.ImportService(b.stack, id, cfg.Import)
		if err != nil {
			return err
		}
	} else {
		props := lattice.ServiceProps{
			Name:           cfg.Name,
			CertificateArn: cfg.CertificateArn,
			CustomDomain:   cfg.CustomDomain,
		}
		if props.Authorization, err = authorizer(cfg.Authorization); err != nil {
			return err
		}
		if cfg.HostedZoneId != "" {
			props.HostedZone = &lattice.HostedZone{ZoneName: cfg.HostedZoneName, HostedZoneId: cfg.HostedZoneId}
		}
		for _, share := range cfg.Shares {
			props.Shares = append(props.Shares, shareProps(share))
		}
		svc, err = lattice.NewService(b.stack, id, props)
		if err != nil {
			return err
		}
		if err := b.stack.AddOutput(outputName(cfg.Name, "ServiceArn"), cfn.Output{
			Value:       svc.ServiceArn(),
			Description: fmt.Sprintf("ARN of service %s", cfg.Name),
		}); err != nil {
			return err
		}
	}
	b.services[cfg.Name] = svc

	for _, d := range cfg.Logging {
		dest, err := destination(d)
		if err != nil {
			return err
		}
		if err := svc.AddLoggingDestination(dest); err != nil {
			return err
		}
	}

	for _, l := range cfg.Listeners {
		if err := b.listener(svc, l); err != nil {
			return fmt.Errorf("listener %s: %w", l.Name, err)
		}
	}

	if len(cfg.AllowedPrincipals) == 0 && len(cfg.Statements) == 0 {
		return nil
	}
	principals, err := decodePrincipals(b.stack, cfg.AllowedPrincipals)
	if err != nil {
		return err
	}
	if len(principals) > 0 {
		if err := svc.GrantAccess(principals...); err != nil {
			return err
		}
	}
	for _, sc := range cfg.Statements {
		s, err := b.statement(sc)
		if err != nil {
			return err
		}
		if err := svc.AddPolicyStatement(s); err != nil {
			return err
		}
	}
	_, err = svc.ApplyAuthPolicy()
	return err
}

func (b *builder) forward(cfgs []Forward) ([]lattice.WeightedTargetGroup, error) {
	forwards := make([]lattice.WeightedTargetGroup, 0, len(cfgs))
	for _, f := range cfgs {
		tg, ok := b.targetGroups[f.TargetGroup]
		if !ok {
			return nil, fmt.Errorf("unknown target group %s", f.TargetGroup)
		}
		forwards = append(forwards, lattice.WeightedTargetGroup{TargetGroup: tg, Weight: f.Weight})
	}
	return forwards, nil
}

func (b *builder) ruleAction(cfg Action) (lattice.RuleAction, error) {
	switch {
	case cfg.FixedResponse != nil && len(cfg.Forward) > 0:
		return nil, errors.New("an action must set only one of fixed_response or forward")
	case cfg.FixedResponse != nil:
		return lattice.FixedResponseAction(*cfg.FixedResponse), nil
	case len(cfg.Forward) > 0:
		forwards, err := b.forward(cfg.Forward)
		if err != nil {
			return nil, err
		}
		return lattice.ForwardAction(forwards...), nil
	default:
		return nil, nil
	}
}

func (b *builder) defaultAction(cfg *Action) (*lattice.DefaultListenerAction, error) {
	if cfg == nil {
		return nil, nil
	}
	if cfg.FixedResponse != nil && len(cfg.Forward) > 0 {
		return nil, errors.New("a default action must set only one of fixed_response or forward")
	}
	if len(cfg.Forward) > 1 {
		return nil, errors.New("a default action can forward to only one target group")
	}
	action := &lattice.DefaultListenerAction{FixedResponse: cfg.FixedResponse}
	if len(cfg.Forward) == 1 {
		forwards, err := b.forward(cfg.Forward)
		if err != nil {
			return nil, err
		}
		action.Forward = &forwards[0]
	}
	return action, nil
}

func (b *builder) rule(cfg Rule) (lattice.RuleProps, error) {
	props := lattice.RuleProps{
		Name:       cfg.Name,
		Priority:   cfg.Priority,
		AccessMode: lattice.RuleAccessMode(strings.ToUpper(cfg.Access)),
		HttpMatch: lattice.HttpMatch{
			Method: lattice.HttpMethod(strings.ToUpper(cfg.Method)),
		},
	}
	if cfg.Path != "" {
		props.HttpMatch.PathMatch = &lattice.PathMatch{
			Path:          cfg.Path,
			Type:          lattice.PathMatchType(strings.ToUpper(cfg.PathMatch)),
			CaseSensitive: cfg.PathCaseSensitive,
		}
	}
	for _, h := range cfg.Headers {
		props.HttpMatch.HeaderMatches = append(props.HttpMatch.HeaderMatches, lattice.HeaderMatch{
			Name:          h.Name,
			Operator:      lattice.MatchOperator(strings.ToUpper(h.Match)),
			Value:         h.Value,
			CaseSensitive: h.CaseSensitive,
		})
	}

	var err error
	if props.Action, err = b.ruleAction(cfg.Action); err != nil {
		return props, err
	}
	if props.AllowedPrincipals, err = decodePrincipals(b.stack, cfg.Principals); err != nil {
		return props, err
	}
	return props, nil
}

func (b *builder) listener(svc *lattice.Service, cfg Listener) error {
	id, err := constructId(cfg.Name)
	if err != nil {
		return err
	}
	props := lattice.ListenerProps{
		Name:     cfg.Name,
		Protocol: lattice.Protocol(strings.ToUpper(cfg.Protocol)),
		Port:     cfg.Port,
	}
	if props.DefaultAction, err = b.defaultAction(cfg.Default); err != nil {
		return err
	}
	for _, r := range cfg.Rules {
		rule, err := b.rule(r)
		if err != nil {
			return fmt.Errorf("rule %s: %w", r.Name, err)
		}
		props.Rules = append(props.Rules, rule)
	}
	_, err = svc.AddListener(id, props)
	return err
}

func (b *builder) serviceNetwork(cfg ServiceNetwork) error {
	id, err := constructId(cfg.Name)
	if err != nil {
		return err
	}

	services := make([]*lattice.Service, 0, len(cfg.Services))
	for _, name := range cfg.Services {
		svc, ok := b.services[name]
		if !ok {
			return fmt.Errorf("unknown service %s", name)
		}
		services = append(services, svc)
	}
	vpcs := make([]lattice.VpcAssociationProps, 0, len(cfg.Vpcs))
	for _, v := range cfg.Vpcs {
		vpc := lattice.VpcAssociationProps{}
		if v.Id != "" {
			vpc.VpcId = v.Id
		}
		if v.Cidr != "" {
			vpc.CidrBlock = v.Cidr
		}
		for _, sg := range v.SecurityGroups {
			vpc.SecurityGroupIds = append(vpc.SecurityGroupIds, sg)
		}
		vpcs = append(vpcs, vpc)
	}
	destinations := make([]lattice.LoggingDestination, 0, len(cfg.Logging))
	for _, d := range cfg.Logging {
		dest, err := destination(d)
		if err != nil {
			return err
		}
		destinations = append(destinations, dest)
	}
	statements := make([]*iam.Statement, 0, len(cfg.Statements))
	for _, sc := range cfg.Statements {
		s, err := b.statement(sc)
		if err != nil {
			return err
		}
		statements = append(statements, s)
	}

	var network *lattice.ServiceNetwork
	switch {
	case cfg.Import != "" || cfg.ImportByName != "":
		if cfg.Import != "" && cfg.ImportByName != "" {
			return errors.New("only one of import or import_by_name may be set")
		}
		if cfg.Import != "" {
			network, err = lattice.ImportServiceNetworkById(b.stack, id, cfg.Import)
		} else {
			network, err = lattice.ImportServiceNetworkByName(b.stack, id, cfg.ImportByName)
		}
		if err != nil {
			return err
		}
		for _, svc := range services {
			if err := network.AddService(svc); err != nil {
				return err
			}
		}
		for _, vpc := range vpcs {
			if err := network.AssociateVpc(vpc); err != nil {
				return err
			}
		}
		for _, d := range destinations {
			if err := network.AddLoggingDestination(d); err != nil {
				return err
			}
		}
		if len(statements) > 0 {
			return errors.New("statements cannot be added to an imported service network")
		}

	default:
		props := lattice.ServiceNetworkProps{
			Name:                cfg.Name,
			LoggingDestinations: destinations,
			Services:            services,
			Vpcs:                vpcs,
			AccessMode:          lattice.NetworkAccessMode(strings.ToUpper(cfg.AccessMode)),
			AuthStatements:      statements,
		}
		if props.Authorization, err = authorizer(cfg.Authorization); err != nil {
			return err
		}
		network, err = lattice.NewServiceNetwork(b.stack, id, props)
		if err != nil {
			return err
		}
		// statements already applied the policy during construction
		if props.AccessMode != "" && len(statements) == 0 {
			if _, err := network.ApplyAuthPolicyToServiceNetwork(); err != nil {
				return err
			}
		}
		if err := b.stack.AddOutput(outputName(cfg.Name, "ServiceNetworkArn"), cfn.Output{
			Value:       network.ServiceNetworkArn(),
			Description: fmt.Sprintf("ARN of service network %s", cfg.Name),
		}); err != nil {
			return err
		}
	}

	for _, share := range cfg.Shares {
		if err := network.Share(shareProps(share)); err != nil {
			return err
		}
	}
	return nil
}
