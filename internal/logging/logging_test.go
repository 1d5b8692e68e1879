package logging

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := SetupLogging("debug")
	logger.Out = io.Discard
	return logger
}

// -- SetupLogging tests --

func TestSetupLogging_ParsesLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, SetupLogging("debug").Level)
	assert.Equal(t, logrus.WarnLevel, SetupLogging("warn").Level)
}

func TestSetupLogging_UnknownLevelFallsBackToInfo(t *testing.T) {
	assert.Equal(t, logrus.InfoLevel, SetupLogging("shouting").Level)
	assert.Equal(t, logrus.InfoLevel, SetupLogging("").Level)
}

// -- LogData tests --

func TestLogData_CollectsFieldsAndTimings(t *testing.T) {
	logData := NewLogData(quietLogger())
	logData.AddData("run_id", "abc")
	logData.AddTiming("LoadLedger")()

	entry := logData.Log()

	assert.Equal(t, "abc", entry.Data["run_id"])
	assert.Contains(t, entry.Data, "LoadLedger")
}

// -- Stage tests --

func TestStage_RunsFnAndRecordsTiming(t *testing.T) {
	logData := NewLogData(quietLogger())
	ran := false

	err := Stage("Build", logData, func() error {
		ran = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran)
	assert.Contains(t, logData.Log().Data, "Build")
}

func TestStage_ReturnsFnError(t *testing.T) {
	logData := NewLogData(quietLogger())
	boom := errors.New("boom")

	err := Stage("Build", logData, func() error { return boom })

	assert.ErrorIs(t, err, boom)
}

func TestStage_StartLineCarriesRunFields(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()
	logData := NewLogData(logger)
	logData.AddData("run_id", "abc")

	require.NoError(t, Stage("Build", logData, func() error { return nil }))

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Stage.Build.Start", entries[0].Message)
	assert.Equal(t, "abc", entries[0].Data["run_id"])
	assert.Equal(t, "Stage.Build.Complete", entries[1].Message)
	assert.Equal(t, "abc", entries[1].Data["run_id"])
}
