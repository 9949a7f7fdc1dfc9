package kvstore

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/fystack/kvcache/pkg/logger"
)

// quietBadgerLogger forwards badger's errors and warnings to the package logger
// and drops its chatty INFO/DEBUG lines.
type quietBadgerLogger struct{}

var _ badger.Logger = (*quietBadgerLogger)(nil)

func newQuietBadgerLogger() badger.Logger {
	return &quietBadgerLogger{}
}

func (ql *quietBadgerLogger) Errorf(format string, args ...interface{}) {
	logger.Error("[BADGER] ERROR", nil, "message", fmt.Sprintf(format, args...))
}

func (ql *quietBadgerLogger) Warningf(format string, args ...interface{}) {
	logger.Warn("[BADGER] WARN", "message", fmt.Sprintf(format, args...))
}

func (ql *quietBadgerLogger) Infof(string, ...interface{}) {}

func (ql *quietBadgerLogger) Debugf(string, ...interface{}) {}
