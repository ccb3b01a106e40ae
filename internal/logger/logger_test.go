package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/contactkeval/option-pricer/internal/pricing"
)

func capture(t *testing.T, verbosity Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)

	prevLevel := Verbosity()
	mu.RLock()
	prevSugar := sugar
	mu.RUnlock()
	t.Cleanup(func() {
		SetVerbosity(int(prevLevel))
		mu.Lock()
		sugar = prevSugar
		mu.Unlock()
	})

	SetLogger(zap.New(core))
	SetVerbosity(int(verbosity))
	return logs
}

func TestVerbosityGating(t *testing.T) {
	logs := capture(t, Info)

	Errorf("boom %d", 1)
	Infof("hello")
	Debugf("hidden")
	Tracef("hidden too")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "boom 1", entries[0].Message)
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		assert.Equal(t, "hello", entries[1].Message)
	}
}

func TestTraceLevel(t *testing.T) {
	logs := capture(t, Trace)

	Tracef("cell %d", 7)
	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "[TRACE] cell 7", entries[0].Message)
		assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	}
}

func TestPricingObserver(t *testing.T) {
	logs := capture(t, Trace)

	p := pricing.Parameters{Spot: 100, Strike: 100, RiskFreeRate: 0.05, Volatility: 0.2, TimeToMaturity: 1}
	_, err := pricing.Price(p, pricing.WithObserver(PricingObserver()))
	assert.NoError(t, err)

	bad := p
	bad.RiskFreeRate = -1000
	_, err = pricing.Price(bad, pricing.WithObserver(PricingObserver()))
	assert.ErrorIs(t, err, pricing.ErrNumerical)

	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.DebugLevel).Len())
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}
