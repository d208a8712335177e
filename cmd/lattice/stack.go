package main

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/klothoplatform/lattice/pkg/config"
	"github.com/klothoplatform/lattice/pkg/lattice"
	"github.com/klothoplatform/lattice/pkg/lookup/awslookup"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const defaultStackName = "lattice"

type stackFlags struct {
	configs string
	lookup  string
	region  string
	profile string
	strict  bool
}

func (f *stackFlags) register(flags *pflag.FlagSet) {
	flags.StringVarP(&f.configs, "config", "c", "lattice.yaml", "Stack definition file(s), may be a glob such as 'stacks/**/*.yaml'")
	flags.StringVar(&f.lookup, "lookup", "deferred", "How values outside the stack are resolved: deferred (at deploy time) or aws (now, with the current credentials)")
	flags.StringVar(&f.region, "region", "", "AWS region for aws lookups")
	flags.StringVar(&f.profile, "profile", "", "AWS shared config profile for aws lookups")
	flags.BoolVar(&f.strict, "strict", false, "Fail if any warnings were logged")
}

func (f *stackFlags) lookups(ctx context.Context) (lattice.Lookups, error) {
	switch f.lookup {
	case "deferred":
		return lattice.DeferredLookups(), nil

	case "aws":
		var opts []func(*awsconfig.LoadOptions) error
		if f.region != "" {
			opts = append(opts, awsconfig.WithRegion(f.region))
		}
		if f.profile != "" {
			opts = append(opts, awsconfig.WithSharedConfigProfile(f.profile))
		}
		client, err := awslookup.New(ctx, opts...)
		if err != nil {
			return lattice.Lookups{}, errors.Wrap(err, "failed to set up aws lookups")
		}
		return client.Lookups(), nil

	default:
		return lattice.Lookups{}, errors.Errorf("unknown lookup mode %q, must be deferred or aws", f.lookup)
	}
}

// buildStack reads the stack definition and builds its constructs.
func (f *stackFlags) buildStack(ctx context.Context) (*lattice.Stack, error) {
	stackCfg, err := config.ReadConfigs(f.configs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read stack definition")
	}
	lookups, err := f.lookups(ctx)
	if err != nil {
		return nil, err
	}

	name := stackCfg.Name
	if name == "" {
		name = defaultStackName
	}
	stack := lattice.NewStack(ctx, name, lookups)
	stack.Description = stackCfg.Description

	if err := config.Build(stack, stackCfg); err != nil {
		return nil, errors.Wrapf(err, "failed to build stack %s", name)
	}
	if f.strict && commonCfg.Counts.HadWarnings() {
		return nil, errors.Errorf("%d warning(s) were logged and --strict is set", commonCfg.Counts.Warnings())
	}
	zap.S().Debugf("built stack %s from %s", name, f.configs)
	return stack, nil
}
