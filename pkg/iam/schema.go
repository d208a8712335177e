package iam

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/klothoplatform/lattice/pkg/construct"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed policy_schema.json
var policySchema []byte

var policySchemaLoader = gojsonschema.NewBytesLoader(policySchema)

// tokenPlaceholder stands in for deploy-time values when checking the document's structure.
const tokenPlaceholder = "${Token}"

// ValidateSchema checks the rendered document against the IAM policy grammar. Deploy-time tokens are treated as
// opaque strings.
func (d *PolicyDocument) ValidateSchema() error {
	doc := replaceTokens(d.Render())
	result, err := gojsonschema.Validate(policySchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("could not validate policy schema: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var errs error
	for _, e := range result.Errors() {
		errs = errors.Join(errs, errors.New(e.String()))
	}
	return fmt.Errorf("%w: %w", ErrInvalidPolicy, errs)
}

func replaceTokens(v any) any {
	switch v := v.(type) {
	case construct.PropertyRef, *construct.PropertyRef:
		return tokenPlaceholder
	case map[string]any:
		if isIntrinsic(v) {
			return tokenPlaceholder
		}
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = replaceTokens(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = replaceTokens(e)
		}
		return out
	case []string:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = e
		}
		return out
	}
	return v
}

func isIntrinsic(m map[string]any) bool {
	if len(m) != 1 {
		return false
	}
	for k := range m {
		return k == "Ref" || strings.HasPrefix(k, "Fn::")
	}
	return false
}
