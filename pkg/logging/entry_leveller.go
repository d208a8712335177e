package logging

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

// EntryLeveller is a zapcore.Core that sets the minimum level per logger name, similar to Log4j or python's
// logging module. A level set for `lattice` applies to `lattice.rule` unless `lattice.rule` has its own. The
// empty name sets the level of every logger without a more specific entry.
type EntryLeveller struct {
	zapcore.Core

	levels map[string]zapcore.Level
}

func NewEntryLeveller(core zapcore.Core, levels map[string]zapcore.Level) *EntryLeveller {
	el := &EntryLeveller{Core: core, levels: make(map[string]zapcore.Level, len(levels))}
	for k, v := range levels {
		el.levels[k] = v
	}
	return el
}

func (el *EntryLeveller) With(f []zapcore.Field) zapcore.Core {
	return &EntryLeveller{Core: el.Core.With(f), levels: el.levels}
}

// level returns the most specific level configured for `name`.
func (el *EntryLeveller) level(name string) (zapcore.Level, bool) {
	for name != "" {
		if lvl, ok := el.levels[name]; ok {
			return lvl, true
		}
		i := strings.LastIndex(name, ".")
		if i < 0 {
			break
		}
		name = name[:i]
	}
	lvl, ok := el.levels[""]
	return lvl, ok
}

func (el *EntryLeveller) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	lvl, ok := el.level(e.LoggerName)
	if !ok {
		return el.Core.Check(e, ce)
	}
	if e.Level < lvl {
		return ce
	}
	return ce.AddCore(e, el)
}
