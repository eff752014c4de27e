package utils

import (
	"errors"
	"sync"
	"testing"
	"time"

	"stock-news-aggregator/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGoSafe_LogsPanic(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{Logger: zap.New(core)}

	var wg sync.WaitGroup
	wg.Add(1)
	GoSafe(log, func() {
		defer wg.Done()
		panic("boom")
	})
	wg.Wait()

	require.Eventually(t, func() bool { return logs.Len() == 1 }, time.Second, 5*time.Millisecond)
	entry := logs.All()[0]
	require.Equal(t, zapcore.ErrorLevel, entry.Level)
	require.Equal(t, "Recovered from panic in goroutine", entry.Message)
	require.Equal(t, "boom", entry.ContextMap()["panic"])
	require.NotEmpty(t, entry.ContextMap()["stack"])
}

func TestSafeCall(t *testing.T) {
	require.NoError(t, SafeCall(func() error { return nil }))

	want := errors.New("failed")
	require.ErrorIs(t, SafeCall(func() error { return want }), want)

	err := SafeCall(func() error { panic("boom") })
	require.EqualError(t, err, "panic: boom")
}
