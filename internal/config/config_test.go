package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/saravenpi/jamroom/internal/audio"
	"github.com/saravenpi/jamroom/internal/models"
	"github.com/saravenpi/jamroom/internal/session"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Missing_File_Uses_Defaults(t *testing.T) {
	req := require.New(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

	req.NoError(err)
	req.Equal(Default(), cfg)

	opts, err := cfg.SessionOptions()
	req.NoError(err)
	req.Equal(models.SelectionMulti, opts.Mode)
	req.Equal(session.DefaultRoster, opts.Roster)
	req.Equal(session.DefaultTrackName, opts.TrackName)
}

func TestLoad_Ignores_Unprefixed_Environment(t *testing.T) {
	req := require.New(t)

	// Given variables that only match the bare field names
	t.Setenv("LEVEL", "debug")
	t.Setenv("BPM", "300")
	t.Setenv("SELECTION_MODE", "single")
	t.Setenv("COMMAND", "rm,-rf")
	t.Setenv("TRACK_NAME", "Stray")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

	// Then none of them reach the config
	req.NoError(err)
	req.Equal(Default(), cfg)
	req.Equal("info", cfg.Log.Level)
}

func TestLoad_Prefixed_Multi_Word_Keys(t *testing.T) {
	req := require.New(t)
	t.Setenv("JAMROOM_SELECTION_MODE", "single")
	t.Setenv("JAMROOM_TRACK_NAME", "Night Drive")
	t.Setenv("JAMROOM_LOG_LEVEL", "debug")
	t.Setenv("JAMROOM_AUDIO_BPM", "90")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

	req.NoError(err)
	req.Equal("single", cfg.SelectionMode)
	req.Equal("Night Drive", cfg.TrackName)
	req.Equal("debug", cfg.Log.Level)
	req.Equal(90.0, cfg.Audio.BPM)
}

func TestLoad_File_Then_Environment(t *testing.T) {
	req := require.New(t)

	// Given a config file choosing single selection and a custom roster
	path := writeConfig(t, `
selection_mode: single
roster: [Dana, " Eli "]
audio:
  backend: log
  bpm: 90
`)
	// And an environment override for the backend
	t.Setenv("JAMROOM_AUDIO_BACKEND", "OFF")

	cfg, err := Load(path)

	req.NoError(err)
	req.Equal("single", cfg.SelectionMode)
	req.Equal([]string{"Dana", "Eli"}, cfg.Roster)
	req.Equal(audio.Options{Backend: audio.BackendOff, BPM: 90}, cfg.AudioOptions())
	req.Equal(session.DefaultTrackName, cfg.TrackName)

	opts, err := cfg.SessionOptions()
	req.NoError(err)
	req.Equal(models.SelectionSingle, opts.Mode)
}

func TestLoad_Rejects_Invalid_Values(t *testing.T) {
	cases := map[string]string{
		"mode":    "selection_mode: many\n",
		"backend": "audio:\n  backend: midi\n",
		"bpm":     "audio:\n  bpm: -1\n",
		"roster":  "roster: [Ann, \"\"]\n",
		"level":   "log:\n  level: loud\n",
		"yaml":    "roster: [unclosed\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
		})
	}
}

func TestSaveDefault_Round_Trips(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yml")

	written, err := SaveDefault(path)
	req.NoError(err)
	req.Equal(path, written)

	cfg, err := Load(path)
	req.NoError(err)
	req.Equal(Default().Roster, cfg.Roster)
	req.Equal(audio.DefaultCommand, cfg.Audio.Command)

	// And a second save refuses to overwrite
	_, err = SaveDefault(path)
	req.ErrorIs(err, ErrConfigExists)
}
