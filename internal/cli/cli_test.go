package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/saravenpi/jamroom/internal/config"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	req := require.New(t)

	out, err := execute(t, "version")

	req.NoError(err)
	req.Equal("Jamroom v"+version+"\n", out)
}

func TestNotesCommand_Lists_Cues(t *testing.T) {
	req := require.New(t)

	out, err := execute(t, "notes")

	req.NoError(err)
	req.Contains(out, "create:")
	req.Contains(out, "261.63 Hz")
	req.Contains(out, "329.63 Hz")
	req.Contains(out, "392.00 Hz")
	req.Contains(out, "loop interval: 4n (500ms)")
}

func TestInitCommand_Refuses_To_Overwrite(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "config.yml")

	// When init runs the first time the file is written
	out, err := execute(t, "init", "--config", path)
	req.NoError(err)
	req.Contains(out, "Wrote "+path)

	// And a second run leaves it alone
	_, err = execute(t, "init", "--config", path)
	req.ErrorIs(err, config.ErrConfigExists)
}

func TestLoadConfig_Flags_Override_File(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "missing.yml")

	cfg, err := loadConfig(rootFlags{configPath: path, mode: "single", backend: "off", logLevel: "debug"})

	req.NoError(err)
	req.Equal("single", cfg.SelectionMode)
	req.Equal("off", cfg.Audio.Backend)
	req.Equal("debug", cfg.Log.Level)
}

func TestLoadConfig_Rejects_Bad_Flag(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "missing.yml")

	_, err := loadConfig(rootFlags{configPath: path, mode: "several"})

	req.Error(err)
}
