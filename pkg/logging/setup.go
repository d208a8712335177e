package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

type LogOpts struct {
	Verbose bool
	// Color is auto (the default), always or never.
	Color string
	// Encoding is console (the default) or json.
	Encoding      string
	DefaultLevels map[string]zapcore.Level
	// Counts, when set, records the number of warnings and errors logged.
	Counts *Counts
}

func (opts LogOpts) useColor() bool {
	switch opts.Color {
	case "always", "on":
		return true
	case "never", "off":
		return false
	default:
		return term.IsTerminal(int(os.Stderr.Fd()))
	}
}

func (opts LogOpts) Encoder() (zapcore.Encoder, error) {
	switch opts.Encoding {
	case "json":
		if opts.Verbose {
			return zapcore.NewJSONEncoder(zap.NewDevelopmentEncoderConfig()), nil
		}
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), nil

	case "console", "":
		color := opts.useColor()
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = TimeOffsetFormatter(time.Now(), color)
		if color {
			cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		if !opts.Verbose {
			cfg.CallerKey = zapcore.OmitKey
		}
		return zapcore.NewConsoleEncoder(cfg), nil

	default:
		return nil, fmt.Errorf("unknown encoding %q", opts.Encoding)
	}
}

// Levels returns the per-logger levels: DefaultLevels, replaced by LOG_LEVEL (`name=level,...`) when set.
func (opts LogOpts) Levels() map[string]zapcore.Level {
	levelEnv, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		return opts.DefaultLevels
	}
	values := strings.Split(levelEnv, ",")
	levels := make(map[string]zapcore.Level, len(values))
	for _, v := range values {
		name, lvl, ok := strings.Cut(v, "=")
		if !ok {
			continue
		}
		level, err := zapcore.ParseLevel(strings.TrimSpace(lvl))
		if err != nil {
			continue
		}
		levels[strings.TrimSpace(name)] = level
	}
	return levels
}

func (opts LogOpts) NewCore(w zapcore.WriteSyncer) (zapcore.Core, error) {
	enc, err := opts.Encoder()
	if err != nil {
		return nil, err
	}

	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if opts.Verbose {
		level.SetLevel(zap.DebugLevel)
	}

	core := zapcore.NewCore(enc, w, level)
	if levels := opts.Levels(); len(levels) > 0 {
		core = NewEntryLeveller(core, levels)
	}
	if opts.Counts != nil {
		core = NewCountingCore(core, opts.Counts)
	}
	return core, nil
}

func (opts LogOpts) NewLogger() (*zap.Logger, error) {
	core, err := opts.NewCore(zapcore.Lock(os.Stderr))
	if err != nil {
		return nil, err
	}
	logger := zap.New(core)
	if opts.Verbose {
		logger = logger.WithOptions(zap.AddCaller())
	}
	return logger, nil
}

// TimeOffsetFormatter returns a time encoder that formats the time as an offset from the start time.
// This is mostly useful for CLI logging not long-standing services as times beyond a few minutes will
// be less readable.
func TimeOffsetFormatter(start time.Time, color bool) zapcore.TimeEncoder {
	var colStart = "\x1b[90m"
	var colEnd = "\x1b[0m"
	if !color {
		colStart = ""
		colEnd = ""
	}
	return func(t time.Time, e zapcore.PrimitiveArrayEncoder) {
		diff := t.Sub(start)
		switch {
		case diff < time.Second:
			e.AppendString(fmt.Sprintf(" %s%3dms%s", colStart, diff.Milliseconds(), colEnd))
		case diff < 5*time.Minute:
			e.AppendString(fmt.Sprintf("%s%5.1fs%s", colStart, diff.Seconds(), colEnd))
		default:
			e.AppendString(fmt.Sprintf("%s%5.1fm%s", colStart, diff.Minutes(), colEnd))
		}
	}
}
