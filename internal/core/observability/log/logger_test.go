package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("ERROR"))
	assert.Equal(t, LevelSilent, ParseLevel("off"))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
}

func TestNopLoggerAcceptsEverything(t *testing.T) {
	l := NewNop()
	l.Debug("debug", String("k", "v"), Int("n", 1))
	l.With(Float64("x", 1.5)).Named("child").Info("info", Strings("roles", []string{"water"}))
	l.Log(LevelError, "error", Error(assert.AnError))
}

func TestSetLevelRoundTrip(t *testing.T) {
	l := NewNop()
	l.SetLevel(LevelWarn)
	assert.Equal(t, LevelWarn, l.GetLevel())
	assert.NotNil(t, OrNop(nil))
}
