package logging

import (
	"go.uber.org/atomic"
	"go.uber.org/zap/zapcore"
)

// Counts tallies the warnings and errors written through a logger. It is safe for concurrent use.
type Counts struct {
	warnings atomic.Int64
	errors   atomic.Int64
}

func (c *Counts) Warnings() int64 { return c.warnings.Load() }
func (c *Counts) Errors() int64   { return c.errors.Load() }

func (c *Counts) HadWarnings() bool { return c.Warnings() > 0 }
func (c *Counts) HadErrors() bool   { return c.Errors() > 0 }

func (c *Counts) record(level zapcore.Level) {
	switch {
	case level >= zapcore.ErrorLevel:
		c.errors.Inc()
	case level == zapcore.WarnLevel:
		c.warnings.Inc()
	}
}

// countingCore records every entry its wrapped core writes. Entries filtered out by level are not counted.
type countingCore struct {
	zapcore.Core
	counts *Counts
}

func NewCountingCore(core zapcore.Core, counts *Counts) zapcore.Core {
	return &countingCore{Core: core, counts: counts}
}

func (c *countingCore) With(fields []zapcore.Field) zapcore.Core {
	return &countingCore{Core: c.Core.With(fields), counts: c.counts}
}

func (c *countingCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	// the wrapped core decides, it may filter by logger name as well as level
	if c.Core.Check(e, nil) == nil {
		return ce
	}
	return ce.AddCore(e, c)
}

func (c *countingCore) Write(e zapcore.Entry, fields []zapcore.Field) error {
	c.counts.record(e.Level)
	return c.Core.Write(e, fields)
}
