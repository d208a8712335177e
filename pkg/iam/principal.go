package iam

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
)

// Principal is an identity a statement applies to. Key is the principal block key it renders under
// ("AWS", "Service") and Value the rendered value, which may be a deploy-time token.
type Principal interface {
	Key() string
	Value() any
}

const (
	principalKeyAWS     = "AWS"
	principalKeyService = "Service"
)

// StarPrincipal is the literal `*` principal: anyone, including anonymous callers unless a condition excludes them.
type StarPrincipal struct{}

func (StarPrincipal) Key() string { return principalKeyAWS }
func (StarPrincipal) Value() any  { return "*" }

// ArnPrincipal is an IAM role, user or root ARN. Arn may be a literal string or a deploy-time token.
type ArnPrincipal struct {
	Arn any
}

func (p ArnPrincipal) Key() string { return principalKeyAWS }
func (p ArnPrincipal) Value() any  { return p.Arn }

// AccountPrincipal grants access to every identity of an AWS account the account allows.
type AccountPrincipal struct {
	AccountId string
}

func (p AccountPrincipal) Key() string { return principalKeyAWS }
func (p AccountPrincipal) Value() any  { return p.AccountId }

type ServicePrincipal struct {
	Service string
}

func (p ServicePrincipal) Key() string { return principalKeyService }
func (p ServicePrincipal) Value() any  { return p.Service }

// NewArnPrincipal validates a literal ARN. Use ArnPrincipal directly for deploy-time tokens.
func NewArnPrincipal(s string) (ArnPrincipal, error) {
	if s == "*" {
		return ArnPrincipal{}, fmt.Errorf("use StarPrincipal for '*'")
	}
	parsed, err := arn.Parse(s)
	if err != nil {
		return ArnPrincipal{}, fmt.Errorf("invalid principal ARN %q: %w", s, err)
	}
	if parsed.Service != "iam" && parsed.Service != "sts" {
		return ArnPrincipal{}, fmt.Errorf("invalid principal ARN %q: service must be iam or sts, got %s", s, parsed.Service)
	}
	return ArnPrincipal{Arn: s}, nil
}

func NewAccountPrincipal(accountId string) (AccountPrincipal, error) {
	if len(accountId) != 12 || strings.Trim(accountId, "0123456789") != "" {
		return AccountPrincipal{}, fmt.Errorf("invalid account id %q: must be 12 digits", accountId)
	}
	return AccountPrincipal{AccountId: accountId}, nil
}

// ParsePrincipal accepts `*`, a 12 digit account id, an IAM ARN or a service principal (`*.amazonaws.com`).
func ParsePrincipal(s string) (Principal, error) {
	switch {
	case s == "*":
		return StarPrincipal{}, nil
	case strings.HasPrefix(s, "arn:"):
		return NewArnPrincipal(s)
	case strings.HasSuffix(s, ".amazonaws.com"):
		return ServicePrincipal{Service: s}, nil
	default:
		return NewAccountPrincipal(s)
	}
}
