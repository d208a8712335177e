package iam

import (
	"errors"
	"fmt"
)

var ErrInvalidPolicy = errors.New("invalid policy document")

// ValidateForAnyPolicy checks the rules every policy must satisfy: each statement has an effect and at least
// one action.
func (d *PolicyDocument) ValidateForAnyPolicy() error {
	var errs error
	for i, s := range d.Statement {
		errs = errors.Join(errs, s.validateForAnyPolicy(i))
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPolicy, errs)
	}
	return nil
}

// ValidateForResourcePolicy checks [PolicyDocument.ValidateForAnyPolicy] and additionally that each statement
// names at least one principal, as resource-based policies require.
func (d *PolicyDocument) ValidateForResourcePolicy() error {
	var errs error
	for i, s := range d.Statement {
		errs = errors.Join(errs, s.validateForAnyPolicy(i))
		if !s.HasPrincipal() {
			errs = errors.Join(errs, fmt.Errorf("statement %d: a statement used in a resource-based policy must specify at least one IAM principal", i))
		}
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPolicy, errs)
	}
	return nil
}

func (s *Statement) validateForAnyPolicy(i int) error {
	var errs error
	if s.Effect != EffectAllow && s.Effect != EffectDeny {
		errs = errors.Join(errs, fmt.Errorf("statement %d: effect must be Allow or Deny, got %q", i, s.Effect))
	}
	if len(s.Actions) == 0 {
		errs = errors.Join(errs, fmt.Errorf("statement %d: a statement must specify at least one action", i))
	}
	return errs
}
