package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tasktracker/internal/model"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tasktracker.log")

	log, closer, err := New(model.LogConfig{Level: "warn", File: path})
	require.NoError(t, err)

	log.Info("hidden")
	log.WithField("task_id", "t_1").Warn("shown")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
	assert.Contains(t, string(data), "task_id=t_1")
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, _, err := New(model.LogConfig{Level: "chatty", File: filepath.Join(t.TempDir(), "x.log")})
	assert.ErrorContains(t, err, "parsing log level")
}
