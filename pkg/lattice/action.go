package lattice

import "go.uber.org/zap"

// FixedResponse status codes commonly used for listener and rule actions.
const (
	FixedResponseNotFound = 404
	FixedResponseOk       = 200
)

const defaultForwardWeight = 100

// WeightedTargetGroup forwards a share of traffic to a target group. Weight defaults to 100.
type WeightedTargetGroup struct {
	TargetGroup *TargetGroup
	Weight      *int
}

func (w WeightedTargetGroup) properties() map[string]any {
	weight := defaultForwardWeight
	if w.Weight != nil {
		weight = *w.Weight
	}
	return map[string]any{
		"TargetGroupIdentifier": w.TargetGroup.TargetGroupId(),
		"Weight":                weight,
	}
}

// RuleAction is what a rule does with matching requests: either a [FixedResponse] or a [Forward].
type RuleAction interface {
	properties() map[string]any
	validate() error
}

type FixedResponse struct {
	StatusCode int
}

type Forward struct {
	TargetGroups []WeightedTargetGroup
}

func FixedResponseAction(statusCode int) RuleAction {
	return FixedResponse{StatusCode: statusCode}
}

func ForwardAction(targetGroups ...WeightedTargetGroup) RuleAction {
	return Forward{TargetGroups: targetGroups}
}

func (f FixedResponse) validate() error {
	if f.StatusCode < 100 || f.StatusCode > 599 {
		return invalid("A fixed response must have an HTTP status code")
	}
	return nil
}

func (f FixedResponse) properties() map[string]any {
	return map[string]any{"FixedResponse": map[string]any{"StatusCode": f.StatusCode}}
}

func (f Forward) validate() error {
	if len(f.TargetGroups) == 0 {
		return invalid("A forward action must have at least one target group")
	}
	for _, tg := range f.TargetGroups {
		if tg.TargetGroup == nil {
			return invalid("A forward action must have at least one target group")
		}
		if tg.Weight != nil && (*tg.Weight < 0 || *tg.Weight > 999) {
			return invalid("Target group weight must be between 0 and 999")
		}
		if tg.Weight != nil && *tg.Weight == 0 {
			zap.L().Warn("forward target group has weight 0 and receives no traffic", zap.String("target_group", tg.TargetGroup.Name))
		}
	}
	return nil
}

func (f Forward) properties() map[string]any {
	groups := make([]any, len(f.TargetGroups))
	for i, tg := range f.TargetGroups {
		groups[i] = tg.properties()
	}
	return map[string]any{"Forward": map[string]any{"TargetGroups": groups}}
}
