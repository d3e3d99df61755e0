package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_Writes_To_File_At_Level(t *testing.T) {
	req := require.New(t)
	file := filepath.Join(t.TempDir(), "logs", "jamroom.log")

	logger, closer, err := New("warn", file)
	req.NoError(err)

	logger.Info("hidden")
	logger.Warn("shown", "pitch", "C4")
	req.NoError(closer.Close())

	data, err := os.ReadFile(file)
	req.NoError(err)
	req.NotContains(string(data), "hidden")
	req.Contains(string(data), "msg=shown pitch=C4")
}

func TestNew_Off_Discards(t *testing.T) {
	req := require.New(t)
	file := filepath.Join(t.TempDir(), "jamroom.log")

	logger, closer, err := New("off", file)
	req.NoError(err)
	logger.Error("nothing")
	req.NoError(closer.Close())

	_, err = os.Stat(file)
	req.ErrorIs(err, os.ErrNotExist)
}

func TestNew_Rejects_Unknown_Level(t *testing.T) {
	_, _, err := New("loud", filepath.Join(t.TempDir(), "x.log"))
	require.Error(t, err)
}
