package lattice

import (
	"strconv"
	"time"
)

type Protocol string

const (
	ProtocolHttp  Protocol = "HTTP"
	ProtocolHttps Protocol = "HTTPS"
)

type ProtocolVersion string

const (
	ProtocolVersionHttp1 ProtocolVersion = "HTTP1"
	ProtocolVersionHttp2 ProtocolVersion = "HTTP2"
	ProtocolVersionGrpc  ProtocolVersion = "GRPC"
)

const (
	defaultHealthCheckInterval     = 30 * time.Second
	defaultHealthCheckTimeout      = 5 * time.Second
	defaultHealthyThresholdCount   = 5
	defaultUnhealthyThresholdCount = 2
	defaultHealthCheckPath         = "/"
)

// HealthCheckProps configures target health checks. Nil fields take their defaults.
type HealthCheckProps struct {
	Enabled                 *bool
	Interval                *time.Duration
	Timeout                 *time.Duration
	HealthyThresholdCount   *int
	UnhealthyThresholdCount *int
	// Matcher is the HTTP status code a healthy target responds with.
	Matcher         *int
	Path            string
	Port            *int
	Protocol        Protocol
	ProtocolVersion ProtocolVersion
}

// HealthCheck is a validated, immutable health check configuration.
type HealthCheck struct {
	Enabled                 bool
	Interval                time.Duration
	Timeout                 time.Duration
	HealthyThresholdCount   int
	UnhealthyThresholdCount int
	Matcher                 *int
	Path                    string
	Port                    int
	Protocol                Protocol
	ProtocolVersion         ProtocolVersion
}

func NewHealthCheck(props HealthCheckProps) (*HealthCheck, error) {
	hc := &HealthCheck{
		Enabled:                 true,
		Interval:                defaultHealthCheckInterval,
		Timeout:                 defaultHealthCheckTimeout,
		HealthyThresholdCount:   defaultHealthyThresholdCount,
		UnhealthyThresholdCount: defaultUnhealthyThresholdCount,
		Path:                    defaultHealthCheckPath,
		Protocol:                ProtocolHttps,
		ProtocolVersion:         ProtocolVersionHttp1,
		Matcher:                 props.Matcher,
	}
	if props.Enabled != nil {
		hc.Enabled = *props.Enabled
	}

	if props.Interval != nil {
		if *props.Interval < 5*time.Second || *props.Interval > 300*time.Second {
			return nil, invalid("HealthCheckInterval must be between 5 and 300 seconds")
		}
		hc.Interval = *props.Interval
	}
	if props.Timeout != nil {
		if *props.Timeout < 1*time.Second || *props.Timeout > 120*time.Second {
			return nil, invalid("HealthCheckTimeout must be between 1 and 120seconds")
		}
		hc.Timeout = *props.Timeout
	}
	if props.HealthyThresholdCount != nil {
		if *props.HealthyThresholdCount < 1 || *props.HealthyThresholdCount > 10 {
			return nil, invalid("HealthyThresholdCount must be between 1 and 10")
		}
		hc.HealthyThresholdCount = *props.HealthyThresholdCount
	}
	if props.ProtocolVersion != "" {
		if props.ProtocolVersion == ProtocolVersionGrpc {
			return nil, invalid("GRPC is not supported")
		}
		hc.ProtocolVersion = props.ProtocolVersion
	}
	if props.UnhealthyThresholdCount != nil {
		if *props.UnhealthyThresholdCount < 2 || *props.UnhealthyThresholdCount > 10 {
			return nil, invalid("UnhealthyThresholdCount must be between 2 and 10")
		}
		hc.UnhealthyThresholdCount = *props.UnhealthyThresholdCount
	}

	if props.Path != "" {
		hc.Path = props.Path
	}
	if props.Protocol != "" {
		hc.Protocol = props.Protocol
	}
	switch {
	case props.Port != nil:
		if *props.Port < 1 || *props.Port > 65535 {
			return nil, invalid("HealthCheck Port out of range")
		}
		hc.Port = *props.Port
	case hc.Protocol == ProtocolHttp:
		hc.Port = 80
	default:
		hc.Port = 443
	}
	return hc, nil
}

// Properties renders the health check as a CloudFormation HealthCheckConfig.
func (hc *HealthCheck) Properties() map[string]any {
	props := map[string]any{
		"Enabled":                    hc.Enabled,
		"HealthCheckIntervalSeconds": int(hc.Interval / time.Second),
		"HealthCheckTimeoutSeconds":  int(hc.Timeout / time.Second),
		"HealthyThresholdCount":      hc.HealthyThresholdCount,
		"UnhealthyThresholdCount":    hc.UnhealthyThresholdCount,
		"Path":                       hc.Path,
		"Port":                       hc.Port,
		"Protocol":                   string(hc.Protocol),
		"ProtocolVersion":            string(hc.ProtocolVersion),
	}
	if hc.Matcher != nil {
		props["Matcher"] = map[string]any{"HttpCode": strconv.Itoa(*hc.Matcher)}
	}
	return props
}
