package iam

import (
	"encoding/json"
	"fmt"
)

const Version = "2012-10-17"

// PolicyDocument accumulates statements until it is rendered. It is not safe for concurrent use.
type PolicyDocument struct {
	Version   string
	Statement []*Statement
}

func NewPolicyDocument(statements ...*Statement) *PolicyDocument {
	return &PolicyDocument{
		Version:   Version,
		Statement: statements,
	}
}

func (d *PolicyDocument) AddStatements(statements ...*Statement) {
	d.Statement = append(d.Statement, statements...)
}

func (d *PolicyDocument) IsEmpty() bool {
	return len(d.Statement) == 0
}

// Render converts the document to a JSON-compatible tree. Deploy-time tokens are left in place for the
// template renderer.
func (d *PolicyDocument) Render() map[string]any {
	statements := make([]any, len(d.Statement))
	for i, s := range d.Statement {
		statements[i] = s.Render()
	}
	version := d.Version
	if version == "" {
		version = Version
	}
	return map[string]any{
		"Version":   version,
		"Statement": statements,
	}
}

func (d *PolicyDocument) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Render())
}

// Deduplicate removes statements whose rendered form is identical to an earlier statement.
func (d *PolicyDocument) Deduplicate() {
	keys := make(map[string]struct{}, len(d.Statement))
	var unique []*Statement
	for _, stmt := range d.Statement {
		b, err := json.Marshal(stmt.Render())
		if err != nil {
			// values without a JSON form are never treated as duplicates
			b = []byte(fmt.Sprintf("%p", stmt))
		}
		if _, ok := keys[string(b)]; ok {
			continue
		}
		keys[string(b)] = struct{}{}
		unique = append(unique, stmt)
	}
	d.Statement = unique
}
