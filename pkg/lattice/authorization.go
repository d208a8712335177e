package lattice

type AuthType string

const (
	// AuthTypeNone disables authorization: no auth policy may be attached.
	AuthTypeNone AuthType = "NONE"
	// AuthTypeIam requires callers to sign requests with SigV4, allowing an auth policy to be attached.
	AuthTypeIam AuthType = "AWS_IAM"
)

// Authorizer selects how a service or service network authorizes requests.
type Authorizer struct {
	Type AuthType
}

func AuthorizerIam() Authorizer {
	return Authorizer{Type: AuthTypeIam}
}

func AuthorizerNone() Authorizer {
	return Authorizer{Type: AuthTypeNone}
}

// authTypeOrDefault returns the configured auth type, defaulting to AWS_IAM.
func authTypeOrDefault(a *Authorizer) AuthType {
	if a == nil || a.Type == "" {
		return AuthTypeIam
	}
	return a.Type
}
