package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(dedent.Dedent(content)), 0o644))
	return p
}

func ptr[T any](v T) *T {
	return &v
}

func TestReadConfig(t *testing.T) {
	expected := StackConfig{
		Name: "test",
		TargetGroups: []TargetGroup{{
			Name:    "fn",
			Type:    "lambda",
			Targets: []string{"arn:aws:lambda:us-east-1:123456789012:function:fn"},
		}},
		Services: []Service{{
			Name: "api",
			Listeners: []Listener{{
				Name:     "http",
				Protocol: "http",
				Rules: []Rule{{
					Name:     "get",
					Priority: ptr(10),
					Method:   "get",
					Action:   Action{Forward: []Forward{{TargetGroup: "fn"}}},
				}},
			}},
		}},
	}

	tests := []struct {
		name    string
		file    string
		content string
		format  string
	}{
		{
			name:   "yaml",
			file:   "stack.yaml",
			format: "yaml",
			content: `
				name: test
				target_groups:
				  - name: fn
				    type: lambda
				    targets: ["arn:aws:lambda:us-east-1:123456789012:function:fn"]
				services:
				  - name: api
				    listeners:
				      - name: http
				        protocol: http
				        rules:
				          - name: get
				            priority: 10
				            method: get
				            action:
				              forward:
				                - target_group: fn
				`,
		},
		{
			name:   "json",
			file:   "stack.json",
			format: "json",
			content: `
				{
				  "name": "test",
				  "target_groups": [{"name": "fn", "type": "lambda", "targets": ["arn:aws:lambda:us-east-1:123456789012:function:fn"]}],
				  "services": [{
				    "name": "api",
				    "listeners": [{
				      "name": "http",
				      "protocol": "http",
				      "rules": [{"name": "get", "priority": 10, "method": "get", "action": {"forward": [{"target_group": "fn"}]}}]
				    }]
				  }]
				}
				`,
		},
		{
			name:   "jsonc",
			file:   "stack.jsonc",
			format: "jsonc",
			content: `
				{
				  // the stack name
				  "name": "test",
				  "target_groups": [{"name": "fn", "type": "lambda", "targets": ["arn:aws:lambda:us-east-1:123456789012:function:fn"]},],
				  "services": [{
				    "name": "api",
				    "listeners": [{
				      "name": "http",
				      "protocol": "http",
				      /* rules are evaluated by priority */
				      "rules": [{"name": "get", "priority": 10, "method": "get", "action": {"forward": [{"target_group": "fn"}]}}]
				    }]
				  }]
				}
				`,
		},
		{
			name:   "toml",
			file:   "stack.toml",
			format: "toml",
			content: `
				name = "test"

				[[target_groups]]
				name = "fn"
				type = "lambda"
				targets = ["arn:aws:lambda:us-east-1:123456789012:function:fn"]

				[[services]]
				name = "api"

				[[services.listeners]]
				name = "http"
				protocol = "http"

				[[services.listeners.rules]]
				name = "get"
				priority = 10
				method = "get"

				[[services.listeners.rules.action.forward]]
				target_group = "fn"
				`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, t.TempDir(), tt.file, tt.content)

			cfg, err := ReadConfig(p)
			require.NoError(t, err)

			want := expected
			want.Format = tt.format
			assert.Equal(t, want, cfg)
		})
	}
}

func TestReadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{
			name:    "unsupported extension",
			file:    "stack.ini",
			content: "name=test",
			wantErr: `unsupported config file extension ".ini"`,
		},
		{
			name:    "unknown yaml field",
			file:    "stack.yaml",
			content: "name: test\nservice: api\n",
			wantErr: "could not decode",
		},
		{
			name:    "malformed json",
			file:    "stack.json",
			content: `{"name": `,
			wantErr: "could not decode",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, t.TempDir(), tt.file, tt.content)

			_, err := ReadConfig(p)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestReadConfigs(t *testing.T) {
	t.Run("merges matching files", func(t *testing.T) {
		assert := assert.New(t)
		dir := t.TempDir()
		writeFile(t, dir, "a.yaml", `
			name: test
			target_groups:
			  - name: fn
			    type: lambda
			    targets: ["arn:aws:lambda:us-east-1:123456789012:function:fn"]
			`)
		writeFile(t, dir, "nested/b.yaml", `
			name: ignored
			description: the api stack
			services:
			  - name: api
			`)
		writeFile(t, dir, "nested/c.json", `{"name": "not matched"}`)

		cfg, err := ReadConfigs(filepath.Join(dir, "**", "*.yaml"))
		require.NoError(t, err)
		assert.Equal("test", cfg.Name)
		assert.Equal("the api stack", cfg.Description)
		assert.Equal("yaml", cfg.Format)
		if assert.Len(cfg.TargetGroups, 1) {
			assert.Equal("fn", cfg.TargetGroups[0].Name)
		}
		if assert.Len(cfg.Services, 1) {
			assert.Equal("api", cfg.Services[0].Name)
		}
	})

	t.Run("duplicate definition", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.yaml", "services:\n  - name: api\n")
		writeFile(t, dir, "b.yaml", "services:\n  - name: api\n")

		_, err := ReadConfigs(filepath.Join(dir, "*.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "service api is defined more than once")
	})

	t.Run("no matches", func(t *testing.T) {
		dir := t.TempDir()
		_, err := ReadConfigs(filepath.Join(dir, "*.yaml"))
		assert.EqualError(t, err, "no config files match "+filepath.Join(dir, "*.yaml"))
	})
}

func TestStackConfig_Merge(t *testing.T) {
	tests := []struct {
		name    string
		base    StackConfig
		other   StackConfig
		wantErr string
	}{
		{
			name:  "disjoint",
			base:  StackConfig{Services: []Service{{Name: "a"}}},
			other: StackConfig{Services: []Service{{Name: "b"}}},
		},
		{
			name:    "duplicate target group",
			base:    StackConfig{TargetGroups: []TargetGroup{{Name: "fn"}}},
			other:   StackConfig{TargetGroups: []TargetGroup{{Name: "fn"}}},
			wantErr: "target group fn is defined more than once",
		},
		{
			name:    "duplicate service network",
			base:    StackConfig{ServiceNetworks: []ServiceNetwork{{Name: "net"}}},
			other:   StackConfig{ServiceNetworks: []ServiceNetwork{{Name: "net"}}},
			wantErr: "service network net is defined more than once",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.base.Merge(tt.other)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
