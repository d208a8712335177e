package closenicely

import (
	"io"

	"go.uber.org/zap"
)

// OrDebug closes `closer`, logging (at debug) instead of returning a failure.
func OrDebug(closer io.Closer) {
	FuncOrDebug(closer.Close)
}

// FuncOrDebug is [OrDebug] for close functions such as [zap.Logger.Sync].
func FuncOrDebug(closer func() error) {
	if err := closer(); err != nil {
		zap.L().Debug("Failed to close resource", zap.Error(err))
	}
}
