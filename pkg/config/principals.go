package config

import (
	"fmt"

	"github.com/klothoplatform/lattice/pkg/iam"
	"github.com/klothoplatform/lattice/pkg/lattice"
	"github.com/mitchellh/mapstructure"
)

// principalSpec is the object form of a principal entry. Exactly one field must be set.
type principalSpec struct {
	Arn     string `mapstructure:"arn"`
	Account string `mapstructure:"account"`
	Service string `mapstructure:"service"`
	// Role is the name of an IAM role in the deploying account.
	Role string `mapstructure:"role"`
}

// decodePrincipal converts a principal entry, either a string (`*`, an account id, an ARN or a service
// principal) or a principalSpec object, to an iam.Principal.
func decodePrincipal(stack *lattice.Stack, raw any) (iam.Principal, error) {
	if s, ok := raw.(string); ok {
		return iam.ParsePrincipal(s)
	}

	var spec principalSpec
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &spec,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid principal %v: %w", raw, err)
	}

	set := 0
	for _, v := range []string{spec.Arn, spec.Account, spec.Service, spec.Role} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("invalid principal %v: exactly one of arn, account, service or role must be set", raw)
	}

	switch {
	case spec.Arn != "":
		return iam.NewArnPrincipal(spec.Arn)
	case spec.Account != "":
		return iam.NewAccountPrincipal(spec.Account)
	case spec.Service != "":
		return iam.ServicePrincipal{Service: spec.Service}, nil
	default:
		arn, err := stack.RoleArn(spec.Role)
		if err != nil {
			return nil, fmt.Errorf("could not resolve role %s: %w", spec.Role, err)
		}
		return iam.ArnPrincipal{Arn: arn}, nil
	}
}

func decodePrincipals(stack *lattice.Stack, raws []any) ([]iam.Principal, error) {
	principals := make([]iam.Principal, 0, len(raws))
	for _, raw := range raws {
		p, err := decodePrincipal(stack, raw)
		if err != nil {
			return nil, err
		}
		principals = append(principals, p)
	}
	return principals, nil
}
