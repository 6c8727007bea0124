package logging

import (
	"context"

	"github.com/getsentry/sentry-go"
)

type LogEntry struct {
	Key   string
	Value interface{}
}

func Entry(k string, v interface{}) LogEntry {
	return LogEntry{Key: k, Value: v}
}

type Logger interface {
	Debug(ctx context.Context, msg string, entries ...LogEntry)
	Info(ctx context.Context, msg string, entries ...LogEntry)
	Warning(ctx context.Context, msg string, entries ...LogEntry)
	Error(ctx context.Context, msg string, entries ...LogEntry)
}

// Error logs err and reports it to Sentry. Reporting is a no-op
// unless Sentry has been initialized.
func Error(ctx context.Context, log Logger, err error, entries ...LogEntry) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)

	entries = append(entries, Entry("err", err))
	log.Error(ctx, err.Error(), entries...)
}
