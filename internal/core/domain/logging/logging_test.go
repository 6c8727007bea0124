package logging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorLogsWithErrEntry(t *testing.T) {
	log := NewFakeLogger()
	err := errors.New("boom")

	Error(context.Background(), log, err, Entry("email", "a@x.com"))

	require.Equal(t, 1, log.CountByLevel(ERROR))
	record := log.Logged[0]
	require.Equal(t, "boom", record.Msg)
	require.Equal(t, []LogEntry{Entry("email", "a@x.com"), Entry("err", err)}, record.Entries)
}

func TestFakeLoggerKeepsLevels(t *testing.T) {
	log := NewFakeLogger()
	ctx := context.Background()

	log.Debug(ctx, "d")
	log.Info(ctx, "i")
	log.Warning(ctx, "w")
	log.Info(ctx, "i2")

	require.Equal(t, 1, log.CountByLevel(DEBUG))
	require.Equal(t, 2, log.CountByLevel(INFO))
	require.Equal(t, 1, log.CountByLevel(WARNING))
	require.Equal(t, 0, log.CountByLevel(ERROR))
}
