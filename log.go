package jwt

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var pkgLogger atomic.Pointer[logrus.Entry]

func init() {
	SetLogger(logrus.StandardLogger())
}

// SetLogger replaces the logger used for diagnostics.
// Configuration faults are logged at error level and token rejections at
// debug level. Logging never changes the outcome of an operation.
// A nil logger restores the logrus standard logger.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	pkgLogger.Store(l.WithField("module", "jwt"))
}

func logger() *logrus.Entry {
	return pkgLogger.Load()
}
