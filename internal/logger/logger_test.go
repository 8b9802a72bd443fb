package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesRotatedFile(t *testing.T) {
	dir := t.TempDir()

	log, err := New("debug", dir, false)
	require.NoError(t, err)

	log.Info("settlement finished")
	_ = log.Sync()

	data, err := os.ReadFile(filepath.Join(dir, fileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "settlement finished")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("loud", "", true)
	assert.Error(t, err)
}
