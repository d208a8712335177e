package clicommon

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"

	"github.com/klothoplatform/lattice/pkg/closenicely"
	"github.com/klothoplatform/lattice/pkg/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type CommonConfig struct {
	Verbosity LevelledFlag
	JsonLog   bool
	Color     string
	ProfileTo string

	// Counts tallies the warnings and errors logged by the command.
	Counts logging.Counts
}

func setupProfiling(commonCfg *CommonConfig) (func(), error) {
	if commonCfg.ProfileTo == "" {
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(commonCfg.ProfileTo), 0755); err != nil {
		return nil, fmt.Errorf("failed to create profile directory: %w", err)
	}
	profileF, err := os.OpenFile(commonCfg.ProfileTo, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile file: %w", err)
	}
	if err := pprof.StartCPUProfile(profileF); err != nil {
		closenicely.OrDebug(profileF)
		return nil, fmt.Errorf("failed to start profile: %w", err)
	}
	return func() {
		pprof.StopCPUProfile()
		closenicely.OrDebug(profileF)
	}, nil
}

// SetupRoot adds the logging and profiling flags to `root` and installs the global logger before any
// subcommand runs.
func SetupRoot(root *cobra.Command, commonCfg *CommonConfig) {
	flags := root.PersistentFlags()
	flags.VarP(&commonCfg.Verbosity, "verbose", "v", "Enable verbose logging")
	flags.Lookup("verbose").NoOptDefVal = "true"
	flags.BoolVar(&commonCfg.JsonLog, "json-log", false, "Enable JSON logging")
	flags.StringVar(&commonCfg.Color, "color", "auto", "Colorize logs: auto, always or never")
	flags.StringVar(&commonCfg.ProfileTo, "profiling", "", "Profile to file")

	profileClose := func() {}

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logOpts := logging.LogOpts{
			Verbose: commonCfg.Verbosity > 0,
			Color:   commonCfg.Color,
			DefaultLevels: map[string]zapcore.Level{
				"lookup": zap.InfoLevel,
			},
			Counts: &commonCfg.Counts,
		}
		if commonCfg.JsonLog {
			logOpts.Encoding = "json"
		}
		logger, err := logOpts.NewLogger()
		if err != nil {
			return err
		}
		zap.ReplaceGlobals(logger)

		profileClose, err = setupProfiling(commonCfg)
		return err
	}

	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		closenicely.FuncOrDebug(zap.L().Sync)
		profileClose()
	}
}
