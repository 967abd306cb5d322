package logging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, GetLevel("debug"))
	assert.Equal(t, logrus.InfoLevel, GetLevel("INFO"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warning"))
	assert.Equal(t, logrus.ErrorLevel, GetLevel("error"))
	assert.Equal(t, logrus.TraceLevel, GetLevel(""))
	assert.Equal(t, logrus.TraceLevel, GetLevel("nonsense"))
}

func TestSentryLevel(t *testing.T) {
	assert.Equal(t, sentry.LevelFatal, sentryLevel(logrus.PanicLevel))
	assert.Equal(t, sentry.LevelError, sentryLevel(logrus.ErrorLevel))
	assert.Equal(t, sentry.LevelWarning, sentryLevel(logrus.WarnLevel))
	assert.Equal(t, sentry.LevelDebug, sentryLevel(logrus.TraceLevel))
}

type captureTransport struct {
	events []*sentry.Event
}

func (c *captureTransport) Flush(time.Duration) bool { return true }

func (c *captureTransport) FlushWithContext(context.Context) bool { return true }

func (c *captureTransport) Configure(sentry.ClientOptions) {}

func (c *captureTransport) SendEvent(event *sentry.Event) {
	c.events = append(c.events, event)
}

func (c *captureTransport) Close() {}

func TestSentryHook_Fire(t *testing.T) {
	transport := &captureTransport{}
	client, err := sentry.NewClient(sentry.ClientOptions{Transport: transport})
	require.NoError(t, err)

	hook := NewSentryHook([]logrus.Level{logrus.ErrorLevel})
	hook.hub = sentry.NewHub(client, sentry.NewScope())
	assert.Equal(t, []logrus.Level{logrus.ErrorLevel}, hook.Levels())

	entry := &logrus.Entry{
		Level:   logrus.ErrorLevel,
		Message: "reload failed",
		Time:    time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC),
		Data: logrus.Fields{
			"collection":    "weights",
			logrus.ErrorKey: errors.New("connection refused"),
		},
	}
	require.NoError(t, hook.Fire(entry))

	require.Len(t, transport.events, 1)
	event := transport.events[0]
	assert.Equal(t, "reload failed", event.Message)
	assert.Equal(t, sentry.LevelError, event.Level)
	assert.Equal(t, "weights", event.Extra["collection"])
	require.Len(t, event.Exception, 1)
	assert.Equal(t, "connection refused", event.Exception[0].Value)
}
