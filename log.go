package esis

import (
	"io"
	"sync"

	"github.com/go-kit/log"
)

var (
	loggerMu sync.RWMutex
	logger   = log.NewNopLogger()
)

// NewLogger returns a logfmt logger writing to w, tagged with the given component.
func NewLogger(w io.Writer, component string) log.Logger {
	l := log.NewLogfmtLogger(log.NewSyncWriter(w))
	return log.With(l, "ts", log.DefaultTimestampUTC, "component", component)
}

// SetLogger installs the logger used by this package. A nil logger disables logging.
func SetLogger(l log.Logger) {
	if l == nil {
		l = log.NewNopLogger()
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

func pkgLogger() log.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}
