package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/saravenpi/jamroom/internal/audio"
	"github.com/saravenpi/jamroom/internal/config"
	"github.com/saravenpi/jamroom/internal/logging"
	"github.com/saravenpi/jamroom/internal/session"
	"github.com/saravenpi/jamroom/internal/ui"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

type rootFlags struct {
	configPath string
	mode       string
	backend    string
	logLevel   string
}

// NewRootCommand builds the jamroom command tree.
func NewRootCommand() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "jamroom",
		Short: "Jamroom - a terminal music collaboration room",
		Long: `Jamroom is a terminal room for sketching beats with friends.

Create mock music files, play and loop notes, and chat with the users you
select. Settings are read from ~/.jamroom/config.yml, a .env file and
JAMROOM_* environment variables; flags win over all of them.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "config file (default ~/.jamroom/config.yml)")
	cmd.Flags().StringVarP(&flags.mode, "mode", "m", "", "user selection mode: single or multi")
	cmd.Flags().StringVar(&flags.backend, "audio", "", "audio backend: bell, command, log or off")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error or off")

	cmd.AddCommand(newVersionCommand(), newInitCommand(&flags), newNotesCommand())
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the layered config and applies flag overrides on top.
func loadConfig(flags rootFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if flags.mode != "" {
		cfg.SelectionMode = strings.ToLower(flags.mode)
	}
	if flags.backend != "" {
		cfg.Audio.Backend = strings.ToLower(flags.backend)
	}
	if flags.logLevel != "" {
		cfg.Log.Level = strings.ToLower(flags.logLevel)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(flags rootFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer closer.Close()

	opts, err := cfg.SessionOptions()
	if err != nil {
		return err
	}

	clk := clock.New()
	sess := session.New(opts, clk, logger)
	synth, err := audio.New(cfg.AudioOptions(), clk, logger, os.Stderr)
	if err != nil {
		return err
	}
	defer synth.StopLoop()

	logger.Info("starting jamroom", "session_id", sess.ID, "mode", opts.Mode, "backend", cfg.Audio.Backend)

	p := tea.NewProgram(ui.NewAppModel(sess, synth, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui failed: %w", err)
	}
	return nil
}
