// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoggerFallsBackToGlobal(t *testing.T) {
	entry := G(context.Background())
	assert.Equal(t, L.Logger, entry.Logger)
}

func TestWithLogger(t *testing.T) {
	custom := logrus.NewEntry(logrus.New()).WithField("path", "a/SKILL.md")
	ctx := WithLogger(context.Background(), custom)

	got := G(ctx)
	assert.Equal(t, "a/SKILL.md", got.Data["path"])
	assert.NotEqual(t, L.Logger, got.Logger)
}

func TestSetLogLevel(t *testing.T) {
	orig := L.Logger.GetLevel()
	t.Cleanup(func() { L.Logger.SetLevel(orig) })

	require.NoError(t, SetLogLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())

	assert.Error(t, SetLogLevel("loud"))
	assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())
}

func TestSetLogFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	origOut := L.Logger.Out
	origFmt := L.Logger.Formatter
	origLevel := L.Logger.GetLevel()
	t.Cleanup(func() {
		L.Logger.SetOutput(origOut)
		L.Logger.Formatter = origFmt
		L.Logger.SetLevel(origLevel)
	})

	SetLogOutput(&buf)
	SetLogFormat("json")
	require.NoError(t, SetLogLevel("info"))

	L.WithField("score", 8.5).Info("scored")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "scored", line["msg"])
	assert.Equal(t, 8.5, line["score"])
	assert.Equal(t, "info", line["level"])
}
