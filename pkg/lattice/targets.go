package lattice

import (
	"fmt"
)

type TargetType string

const (
	TargetTypeLambda   TargetType = "LAMBDA"
	TargetTypeIp       TargetType = "IP"
	TargetTypeInstance TargetType = "INSTANCE"
	TargetTypeAlb      TargetType = "ALB"
)

type IpAddressType string

const (
	IpAddressTypeIpv4 IpAddressType = "IPV4"
	IpAddressTypeIpv6 IpAddressType = "IPV6"
)

// TargetConfig configures the target group of IP, INSTANCE and ALB targets.
type TargetConfig struct {
	// VpcId is the VPC the targets are in. It may be a literal id or a deploy-time token.
	VpcId           any
	HealthCheck     *HealthCheck
	IpAddressType   IpAddressType
	Protocol        Protocol
	Port            *int
	ProtocolVersion ProtocolVersion
}

// Target describes what a target group routes to. Config is nil for LAMBDA targets and set for every other type.
type Target struct {
	Type    TargetType
	Targets []any
	Config  *TargetConfig
}

func LambdaTarget(functionArns ...any) (*Target, error) {
	if len(functionArns) == 0 {
		return nil, invalid("at least one target must be provided")
	}
	return &Target{Type: TargetTypeLambda, Targets: functionArns}, nil
}

func IpTarget(addresses []string, config TargetConfig) (*Target, error) {
	return newConfiguredTarget(TargetTypeIp, addresses, config)
}

func InstanceTarget(instanceIds []string, config TargetConfig) (*Target, error) {
	return newConfiguredTarget(TargetTypeInstance, instanceIds, config)
}

func AlbTarget(loadBalancerArns []string, config TargetConfig) (*Target, error) {
	return newConfiguredTarget(TargetTypeAlb, loadBalancerArns, config)
}

func newConfiguredTarget(t TargetType, ids []string, config TargetConfig) (*Target, error) {
	if len(ids) == 0 {
		return nil, invalid("at least one target must be provided")
	}
	resolved, err := resolveTargetConfig(t, config)
	if err != nil {
		return nil, err
	}
	targets := make([]any, len(ids))
	for i, id := range ids {
		targets[i] = id
	}
	return &Target{Type: t, Targets: targets, Config: resolved}, nil
}

// resolveTargetConfig validates config for targets of type `t` and fills in defaults.
func resolveTargetConfig(t TargetType, config TargetConfig) (*TargetConfig, error) {
	if config.VpcId == nil || config.VpcId == "" {
		return nil, invalid(fmt.Sprintf("A VPC must be supplied for %s targets", t))
	}
	if t == TargetTypeAlb && config.HealthCheck != nil {
		return nil, invalid("HealthCheck is not supported for Application Load Balancers")
	}
	if config.Port != nil && (*config.Port < 1 || *config.Port > 65535) {
		return nil, invalid("Port out of range")
	}

	resolved := config
	if resolved.Protocol == "" {
		resolved.Protocol = ProtocolHttps
	}
	if resolved.IpAddressType == "" {
		resolved.IpAddressType = IpAddressTypeIpv4
	}
	if resolved.Port == nil {
		port := 443
		if resolved.Protocol == ProtocolHttp {
			port = 80
		}
		resolved.Port = &port
	}
	return &resolved, nil
}

func (c *TargetConfig) properties() map[string]any {
	props := map[string]any{
		"VpcIdentifier": c.VpcId,
		"Protocol":      string(c.Protocol),
		"Port":          *c.Port,
		"IpAddressType": string(c.IpAddressType),
	}
	if c.ProtocolVersion != "" {
		props["ProtocolVersion"] = string(c.ProtocolVersion)
	}
	if c.HealthCheck != nil {
		props["HealthCheck"] = c.HealthCheck.Properties()
	}
	return props
}
