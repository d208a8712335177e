package lattice

import (
	"fmt"

	"github.com/klothoplatform/lattice/pkg/construct"
)

// TargetGroupProps configures a target group. Either Target is set, or exactly one of the per-kind target lists
// (with Config for every kind but lambda).
type TargetGroupProps struct {
	Name   string
	Target *Target

	LambdaTargets   []any
	IpTargets       []string
	InstanceTargets []string
	AlbTargets      []string
	Config          *TargetConfig
}

type TargetGroup struct {
	Name     string
	Target   *Target
	resource *construct.Resource
}

const errTargetKind = "Only one kind of target can be specifed, and at least one target must be provided"

func NewTargetGroup(stack *Stack, id string, props TargetGroupProps) (*TargetGroup, error) {
	target, err := props.target()
	if err != nil {
		return nil, err
	}
	if props.Name == "" {
		return nil, invalid("A target group name must be provided")
	}

	properties := construct.Properties{
		"Name": props.Name,
		"Type": string(target.Type),
	}
	targets := make([]any, len(target.Targets))
	for i, t := range target.Targets {
		targets[i] = map[string]any{"Id": t}
	}
	properties["Targets"] = targets
	if target.Config != nil {
		properties["Config"] = target.Config.properties()
	}

	r, err := stack.add(TargetGroupType, id, properties)
	if err != nil {
		return nil, err
	}
	return &TargetGroup{Name: props.Name, Target: target, resource: r}, nil
}

func (p TargetGroupProps) target() (*Target, error) {
	kinds := 0
	for _, n := range []int{len(p.LambdaTargets), len(p.IpTargets), len(p.InstanceTargets), len(p.AlbTargets)} {
		if n > 0 {
			kinds++
		}
	}
	if p.Target != nil {
		if kinds > 0 || p.Config != nil {
			return nil, invalid(errTargetKind)
		}
		if p.Target.Type != TargetTypeLambda && p.Target.Config == nil {
			return nil, invalid(fmt.Sprintf("A configuration must be supplied for %s targets", p.Target.Type))
		}
		if p.Target.Type == TargetTypeLambda && p.Target.Config != nil {
			return nil, invalid("No configuration should be supplied for a target group of lambdas")
		}
		return p.Target, nil
	}
	if kinds != 1 {
		return nil, invalid(errTargetKind)
	}

	if len(p.LambdaTargets) > 0 {
		if p.Config != nil {
			return nil, invalid("No configuration should be supplied for a target group of lambdas")
		}
		return LambdaTarget(p.LambdaTargets...)
	}

	var (
		t   TargetType
		ids []string
	)
	switch {
	case len(p.IpTargets) > 0:
		t, ids = TargetTypeIp, p.IpTargets
	case len(p.InstanceTargets) > 0:
		t, ids = TargetTypeInstance, p.InstanceTargets
	default:
		t, ids = TargetTypeAlb, p.AlbTargets
	}
	if p.Config == nil {
		return nil, invalid(fmt.Sprintf("A configuration must be supplied for %s targets", t))
	}
	return newConfiguredTarget(t, ids, *p.Config)
}

func (tg *TargetGroup) ResourceId() construct.ResourceId {
	return tg.resource.ID
}

// TargetGroupId is the deploy-time id of the target group.
func (tg *TargetGroup) TargetGroupId() construct.PropertyRef {
	return tg.resource.Attr("Id")
}

func (tg *TargetGroup) TargetGroupArn() construct.PropertyRef {
	return tg.resource.Attr("Arn")
}
