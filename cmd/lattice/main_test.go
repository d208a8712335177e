package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStack = `
name: orders
target_groups:
  - name: orders-fn
    type: lambda
    targets: ["arn:aws:lambda:us-east-1:123456789012:function:orders"]
services:
  - name: orders
    listeners:
      - name: http
        protocol: http
        rules:
          - name: get
            priority: 10
            method: get
            access: org_only
            principals: ["123456789012"]
            action:
              forward:
                - target_group: orders-fn
          - name: drained
            priority: 20
            path: /legacy
            access: no_statement
            action:
              forward:
                - target_group: orders-fn
                  weight: 0
`

func writeStack(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "lattice.yaml")
	require.NoError(t, os.WriteFile(p, []byte(dedent.Dedent(testStack)), 0644))
	return p
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(append(args, "--color", "never"))
	err := root.Execute()
	return out.String(), err
}

func TestSynth(t *testing.T) {
	assert := assert.New(t)
	outDir := t.TempDir()

	_, err := execute(t, "synth", "-c", writeStack(t), "-o", outDir)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(outDir, "orders.template.json"))
	require.NoError(t, err)
	assert.Contains(string(content), `"AWS::VpcLattice::Service"`)
	assert.Contains(string(content), `"AWS::VpcLattice::AuthPolicy"`)
	assert.Contains(string(content), `"LookupServiceToken"`)
}

func TestSynth_UnknownFormat(t *testing.T) {
	_, err := execute(t, "synth", "-c", writeStack(t), "-o", t.TempDir(), "--format", "xml")
	assert.EqualError(t, err, `unknown format "xml", must be json or yaml`)
}

func TestValidate_Strict(t *testing.T) {
	// the drained rule forwards with weight 0, which logs a warning
	_, err := execute(t, "validate", "-c", writeStack(t), "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--strict is set")
}

func TestValidate_Fingerprint(t *testing.T) {
	assert := assert.New(t)
	config := writeStack(t)

	first, err := execute(t, "validate", "-c", config)
	require.NoError(t, err)
	assert.Regexp(`^[0-9a-f]{64}\n$`, first)

	second, err := execute(t, "validate", "-c", config)
	require.NoError(t, err)
	assert.Equal(first, second)
}

func TestGraph(t *testing.T) {
	out, err := execute(t, "graph", "-c", writeStack(t))
	require.NoError(t, err)
	assert.Contains(t, out, "orders/http/get-Rule")
}
