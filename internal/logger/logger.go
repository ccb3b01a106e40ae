// Package logger provides a lightweight, centralized logging facility
// with configurable verbosity levels.
//
// Verbosity levels (in increasing order):
//
//	Error < Info < Debug < Trace
//
// Messages are written through a zap SugaredLogger to standard error, so
// they never mix with the pricing output printed on standard output.
//
// Example usage:
//
//	logger.SetVerbosity(2) // Debug
//	logger.Infof("pricing session started")
//	logger.Debugf("spot=%f vol=%f", spot, vol)
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/contactkeval/option-pricer/internal/pricing"
)

// Level represents a logging verbosity level.
// Higher values mean more verbose logging.
type Level int

const (
	Error Level = iota // Error logs only critical failures.
	Info               // Info logs high-level application progress.
	Debug              // Debug logs detailed diagnostic information.
	Trace              // Trace logs very fine-grained execution details.
)

// callerSkip accounts for the exported helper and logf.
const callerSkip = 2

var (
	mu sync.RWMutex

	// current holds the active verbosity level.
	// Only messages with level <= current are logged.
	current = Info

	sugar = newDefault()
)

// newDefault builds a console logger on stderr. Level filtering is done by
// verbosity, so zap itself accepts everything down to debug.
func newDefault() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05")

	l, err := cfg.Build(zap.AddCallerSkip(callerSkip))
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

// SetVerbosity sets the global logging verbosity.
// Typically called once during application startup
// (e.g. after parsing CLI flags).
func SetVerbosity(v int) {
	mu.Lock()
	defer mu.Unlock()
	current = Level(v)
}

// Verbosity returns the active level.
func Verbosity() Level {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetLogger replaces the zap backend, e.g. with an observer core in tests.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	sugar = l.WithOptions(zap.AddCallerSkip(callerSkip)).Sugar()
}

// Sync flushes buffered entries.
func Sync() {
	mu.RLock()
	s := sugar
	mu.RUnlock()
	_ = s.Sync()
}

// logf checks verbosity and delegates formatting/output to zap.
func logf(l Level, format string, args ...any) {
	mu.RLock()
	lvl, s := current, sugar
	mu.RUnlock()

	if lvl < l {
		return
	}
	switch l {
	case Error:
		s.Errorf(format, args...)
	case Info:
		s.Infof(format, args...)
	case Debug:
		s.Debugf(format, args...)
	default:
		s.Debugf("[TRACE] "+format, args...)
	}
}

// Errorf logs an error-level message.
// Use this for failures that require attention.
func Errorf(format string, args ...any) {
	logf(Error, format, args...)
}

// Infof logs an informational message.
// Use this for major lifecycle events.
func Infof(format string, args ...any) {
	logf(Info, format, args...)
}

// Debugf logs debugging information.
func Debugf(format string, args ...any) {
	logf(Debug, format, args...)
}

// Tracef logs very detailed execution traces.
// Use this sparingly: grid sweeps emit one line per cell.
func Tracef(format string, args ...any) {
	logf(Trace, format, args...)
}

// PricingObserver reports engine evaluations: failures at Error, successes
// at Trace.
func PricingObserver() pricing.Observer {
	return pricing.ObserverFunc(func(p pricing.Parameters, res *pricing.Result, err error) {
		if err != nil {
			Errorf("pricing failed S=%g K=%g r=%g sigma=%g T=%g: %v",
				p.Spot, p.Strike, p.RiskFreeRate, p.Volatility, p.TimeToMaturity, err)
			return
		}
		Tracef("priced S=%g K=%g r=%g sigma=%g T=%g call=%.6f put=%.6f",
			p.Spot, p.Strike, p.RiskFreeRate, p.Volatility, p.TimeToMaturity, res.CallPrice, res.PutPrice)
	})
}
