package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type (
	// StackConfig is a stack definition file: the target groups, services and service networks of one
	// CloudFormation stack.
	StackConfig struct {
		Name        string `json:"name" yaml:"name" toml:"name"`
		Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`

		TargetGroups    []TargetGroup    `json:"target_groups,omitempty" yaml:"target_groups,omitempty" toml:"target_groups,omitempty"`
		Services        []Service        `json:"services,omitempty" yaml:"services,omitempty" toml:"services,omitempty"`
		ServiceNetworks []ServiceNetwork `json:"service_networks,omitempty" yaml:"service_networks,omitempty" toml:"service_networks,omitempty"`

		// Format is the format of the file the config was read from.
		Format string `json:"-" yaml:"-" toml:"-"`
	}

	TargetGroup struct {
		Name string `json:"name" yaml:"name" toml:"name"`
		// Type is one of lambda, ip, instance or alb.
		Type            string       `json:"type" yaml:"type" toml:"type"`
		Targets         []string     `json:"targets" yaml:"targets" toml:"targets"`
		Vpc             string       `json:"vpc,omitempty" yaml:"vpc,omitempty" toml:"vpc,omitempty"`
		Protocol        string       `json:"protocol,omitempty" yaml:"protocol,omitempty" toml:"protocol,omitempty"`
		Port            *int         `json:"port,omitempty" yaml:"port,omitempty" toml:"port,omitempty"`
		ProtocolVersion string       `json:"protocol_version,omitempty" yaml:"protocol_version,omitempty" toml:"protocol_version,omitempty"`
		IpAddressType   string       `json:"ip_address_type,omitempty" yaml:"ip_address_type,omitempty" toml:"ip_address_type,omitempty"`
		HealthCheck     *HealthCheck `json:"health_check,omitempty" yaml:"health_check,omitempty" toml:"health_check,omitempty"`
	}

	HealthCheck struct {
		Enabled            *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty" toml:"enabled,omitempty"`
		IntervalSeconds    *int   `json:"interval_seconds,omitempty" yaml:"interval_seconds,omitempty" toml:"interval_seconds,omitempty"`
		TimeoutSeconds     *int   `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" toml:"timeout_seconds,omitempty"`
		HealthyThreshold   *int   `json:"healthy_threshold,omitempty" yaml:"healthy_threshold,omitempty" toml:"healthy_threshold,omitempty"`
		UnhealthyThreshold *int   `json:"unhealthy_threshold,omitempty" yaml:"unhealthy_threshold,omitempty" toml:"unhealthy_threshold,omitempty"`
		Path               string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
		Port               *int   `json:"port,omitempty" yaml:"port,omitempty" toml:"port,omitempty"`
		Protocol           string `json:"protocol,omitempty" yaml:"protocol,omitempty" toml:"protocol,omitempty"`
		ProtocolVersion    string `json:"protocol_version,omitempty" yaml:"protocol_version,omitempty" toml:"protocol_version,omitempty"`
		Matcher            *int   `json:"matcher,omitempty" yaml:"matcher,omitempty" toml:"matcher,omitempty"`
	}

	Service struct {
		Name string `json:"name" yaml:"name" toml:"name"`
		// Import is the id of an existing service to reference instead of creating one.
		Import string `json:"import,omitempty" yaml:"import,omitempty" toml:"import,omitempty"`
		// Authorization is NONE or AWS_IAM (the default).
		Authorization  string        `json:"authorization,omitempty" yaml:"authorization,omitempty" toml:"authorization,omitempty"`
		CertificateArn string        `json:"certificate_arn,omitempty" yaml:"certificate_arn,omitempty" toml:"certificate_arn,omitempty"`
		CustomDomain   string        `json:"custom_domain,omitempty" yaml:"custom_domain,omitempty" toml:"custom_domain,omitempty"`
		HostedZoneId   string        `json:"hosted_zone_id,omitempty" yaml:"hosted_zone_id,omitempty" toml:"hosted_zone_id,omitempty"`
		HostedZoneName string        `json:"hosted_zone_name,omitempty" yaml:"hosted_zone_name,omitempty" toml:"hosted_zone_name,omitempty"`
		Shares         []Share       `json:"shares,omitempty" yaml:"shares,omitempty" toml:"shares,omitempty"`
		Logging        []Destination `json:"logging,omitempty" yaml:"logging,omitempty" toml:"logging,omitempty"`
		// AllowedPrincipals are granted access to the whole service.
		AllowedPrincipals []any       `json:"allowed_principals,omitempty" yaml:"allowed_principals,omitempty" toml:"allowed_principals,omitempty"`
		Statements        []Statement `json:"statements,omitempty" yaml:"statements,omitempty" toml:"statements,omitempty"`
		Listeners         []Listener  `json:"listeners,omitempty" yaml:"listeners,omitempty" toml:"listeners,omitempty"`
	}

	Listener struct {
		Name     string  `json:"name" yaml:"name" toml:"name"`
		Protocol string  `json:"protocol,omitempty" yaml:"protocol,omitempty" toml:"protocol,omitempty"`
		Port     *int    `json:"port,omitempty" yaml:"port,omitempty" toml:"port,omitempty"`
		Default  *Action `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
		Rules    []Rule  `json:"rules,omitempty" yaml:"rules,omitempty" toml:"rules,omitempty"`
	}

	// Action is either a fixed response or a forward to one or more target groups (referenced by name).
	Action struct {
		FixedResponse *int      `json:"fixed_response,omitempty" yaml:"fixed_response,omitempty" toml:"fixed_response,omitempty"`
		Forward       []Forward `json:"forward,omitempty" yaml:"forward,omitempty" toml:"forward,omitempty"`
	}

	Forward struct {
		TargetGroup string `json:"target_group" yaml:"target_group" toml:"target_group"`
		Weight      *int   `json:"weight,omitempty" yaml:"weight,omitempty" toml:"weight,omitempty"`
	}

	Rule struct {
		Name     string `json:"name" yaml:"name" toml:"name"`
		Priority *int   `json:"priority,omitempty" yaml:"priority,omitempty" toml:"priority,omitempty"`
		Method   string `json:"method,omitempty" yaml:"method,omitempty" toml:"method,omitempty"`
		Path     string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
		// PathMatch is exact (the default) or prefix.
		PathMatch         string   `json:"path_match,omitempty" yaml:"path_match,omitempty" toml:"path_match,omitempty"`
		PathCaseSensitive *bool    `json:"path_case_sensitive,omitempty" yaml:"path_case_sensitive,omitempty" toml:"path_case_sensitive,omitempty"`
		Headers           []Header `json:"headers,omitempty" yaml:"headers,omitempty" toml:"headers,omitempty"`
		Action            Action   `json:"action" yaml:"action" toml:"action"`
		// Access is UNAUTHENTICATED, AUTHENTICATED, ORG_ONLY or NO_STATEMENT.
		Access     string `json:"access,omitempty" yaml:"access,omitempty" toml:"access,omitempty"`
		Principals []any  `json:"principals,omitempty" yaml:"principals,omitempty" toml:"principals,omitempty"`
	}

	Header struct {
		Name string `json:"name" yaml:"name" toml:"name"`
		// Match is exact (the default), contains or prefix.
		Match         string `json:"match,omitempty" yaml:"match,omitempty" toml:"match,omitempty"`
		Value         string `json:"value" yaml:"value" toml:"value"`
		CaseSensitive *bool  `json:"case_sensitive,omitempty" yaml:"case_sensitive,omitempty" toml:"case_sensitive,omitempty"`
	}

	ServiceNetwork struct {
		Name string `json:"name" yaml:"name" toml:"name"`
		// Import is the id of an existing service network, ImportByName its name.
		Import        string `json:"import,omitempty" yaml:"import,omitempty" toml:"import,omitempty"`
		ImportByName  string `json:"import_by_name,omitempty" yaml:"import_by_name,omitempty" toml:"import_by_name,omitempty"`
		Authorization string `json:"authorization,omitempty" yaml:"authorization,omitempty" toml:"authorization,omitempty"`
		AccessMode    string `json:"access_mode,omitempty" yaml:"access_mode,omitempty" toml:"access_mode,omitempty"`
		// Services are the names of services in this config to associate.
		Services   []string      `json:"services,omitempty" yaml:"services,omitempty" toml:"services,omitempty"`
		Vpcs       []Vpc         `json:"vpcs,omitempty" yaml:"vpcs,omitempty" toml:"vpcs,omitempty"`
		Logging    []Destination `json:"logging,omitempty" yaml:"logging,omitempty" toml:"logging,omitempty"`
		Shares     []Share       `json:"shares,omitempty" yaml:"shares,omitempty" toml:"shares,omitempty"`
		Statements []Statement   `json:"statements,omitempty" yaml:"statements,omitempty" toml:"statements,omitempty"`
	}

	Vpc struct {
		Id             string   `json:"id" yaml:"id" toml:"id"`
		Cidr           string   `json:"cidr,omitempty" yaml:"cidr,omitempty" toml:"cidr,omitempty"`
		SecurityGroups []string `json:"security_groups,omitempty" yaml:"security_groups,omitempty" toml:"security_groups,omitempty"`
	}

	Destination struct {
		// Type is s3, kinesis or cloudwatch.
		Type string `json:"type" yaml:"type" toml:"type"`
		Arn  string `json:"arn" yaml:"arn" toml:"arn"`
	}

	Share struct {
		Name          string            `json:"name" yaml:"name" toml:"name"`
		Accounts      []string          `json:"accounts" yaml:"accounts" toml:"accounts"`
		AllowExternal bool              `json:"allow_external,omitempty" yaml:"allow_external,omitempty" toml:"allow_external,omitempty"`
		Tags          map[string]string `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`
	}

	Statement struct {
		Sid        string                    `json:"sid,omitempty" yaml:"sid,omitempty" toml:"sid,omitempty"`
		Effect     string                    `json:"effect,omitempty" yaml:"effect,omitempty" toml:"effect,omitempty"`
		Actions    []string                  `json:"actions,omitempty" yaml:"actions,omitempty" toml:"actions,omitempty"`
		Resources  []string                  `json:"resources,omitempty" yaml:"resources,omitempty" toml:"resources,omitempty"`
		Principals []any                     `json:"principals,omitempty" yaml:"principals,omitempty" toml:"principals,omitempty"`
		Conditions map[string]map[string]any `json:"conditions,omitempty" yaml:"conditions,omitempty" toml:"conditions,omitempty"`
	}
)

func ReadConfig(fpath string) (StackConfig, error) {
	var stackCfg StackConfig

	f, err := os.Open(fpath)
	if err != nil {
		return stackCfg, err
	}
	defer f.Close() // nolint:errcheck

	switch ext := filepath.Ext(fpath); ext {
	case ".json":
		err = json.NewDecoder(f).Decode(&stackCfg)
		stackCfg.Format = "json"

	case ".jsonc":
		var data []byte
		data, err = os.ReadFile(fpath)
		if err == nil {
			err = json.Unmarshal(jsonc.ToJSON(data), &stackCfg)
		}
		stackCfg.Format = "jsonc"

	case ".yaml", ".yml":
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		err = dec.Decode(&stackCfg)
		stackCfg.Format = "yaml"

	case ".toml":
		err = toml.NewDecoder(f).Decode(&stackCfg)
		stackCfg.Format = "toml"

	default:
		return stackCfg, fmt.Errorf("unsupported config file extension %q", ext)
	}
	if err != nil {
		return stackCfg, fmt.Errorf("could not decode %s: %w", fpath, err)
	}
	return stackCfg, nil
}

// ReadConfigs reads every file matching `pattern` (which may use `**`) and merges them into one stack. The
// stack's name and description are taken from the first file that sets them; a target group, service or
// service network defined in more than one file is an error.
func ReadConfigs(pattern string) (StackConfig, error) {
	paths, err := glob(pattern)
	if err != nil {
		return StackConfig{}, err
	}
	if len(paths) == 0 {
		return StackConfig{}, fmt.Errorf("no config files match %s", pattern)
	}

	var merged StackConfig
	for _, p := range paths {
		cfg, err := ReadConfig(p)
		if err != nil {
			return StackConfig{}, err
		}
		zap.L().Debug("read stack config", zap.String("path", p), zap.String("format", cfg.Format))
		if err := merged.Merge(cfg); err != nil {
			return StackConfig{}, fmt.Errorf("could not merge %s: %w", p, err)
		}
	}
	return merged, nil
}

// Merge adds the definitions of `other` to the config.
func (cfg *StackConfig) Merge(other StackConfig) error {
	if cfg.Name == "" {
		cfg.Name = other.Name
	}
	if cfg.Description == "" {
		cfg.Description = other.Description
	}
	if cfg.Format == "" {
		cfg.Format = other.Format
	}

	for _, tg := range other.TargetGroups {
		if cfg.targetGroup(tg.Name) != nil {
			return fmt.Errorf("target group %s is defined more than once", tg.Name)
		}
		cfg.TargetGroups = append(cfg.TargetGroups, tg)
	}
	for _, svc := range other.Services {
		if cfg.service(svc.Name) != nil {
			return fmt.Errorf("service %s is defined more than once", svc.Name)
		}
		cfg.Services = append(cfg.Services, svc)
	}
	for _, n := range other.ServiceNetworks {
		for _, existing := range cfg.ServiceNetworks {
			if existing.Name == n.Name {
				return fmt.Errorf("service network %s is defined more than once", n.Name)
			}
		}
		cfg.ServiceNetworks = append(cfg.ServiceNetworks, n)
	}
	return nil
}

func (cfg *StackConfig) targetGroup(name string) *TargetGroup {
	for i := range cfg.TargetGroups {
		if cfg.TargetGroups[i].Name == name {
			return &cfg.TargetGroups[i]
		}
	}
	return nil
}

func (cfg *StackConfig) service(name string) *Service {
	for i := range cfg.Services {
		if cfg.Services[i].Name == name {
			return &cfg.Services[i]
		}
	}
	return nil
}

// glob returns the files matching `pattern`, sorted. Only the directory before the first wildcard is walked.
func glob(pattern string) ([]string, error) {
	pattern = filepath.ToSlash(filepath.Clean(pattern))
	base := "."
	if segments := strings.Split(pattern, "/"); len(segments) > 1 {
		var fixed []string
		for _, seg := range segments[:len(segments)-1] {
			if strings.ContainsAny(seg, "*?[{") {
				break
			}
			fixed = append(fixed, seg)
		}
		if len(fixed) > 0 {
			base = strings.Join(fixed, "/")
			if base == "" {
				base = "/"
			}
		}
	}

	var matches []string
	err := filepath.WalkDir(filepath.FromSlash(base), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ok, err := doublestar.PathMatch(filepath.FromSlash(pattern), p)
		if err != nil {
			return err
		}
		if ok {
			matches = append(matches, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not expand %s: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}
