package cli

import (
	"fmt"

	"github.com/saravenpi/jamroom/internal/audio"
	"github.com/saravenpi/jamroom/internal/config"
	"github.com/saravenpi/jamroom/internal/models"
	"github.com/saravenpi/jamroom/internal/session"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of Jamroom",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Jamroom v%s\n", version)
		},
	}
}

func newInitCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.SaveDefault(flags.configPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
}

func newNotesCommand() *cobra.Command {
	var bpm float64

	cmd := &cobra.Command{
		Use:   "notes",
		Short: "List the notes jamroom plays",
		RunE: func(cmd *cobra.Command, args []string) error {
			cues := []struct {
				name  string
				notes []models.Note
			}{
				{"create", session.CreationCue},
				{"play", session.PlayCue},
				{"loop", []models.Note{session.LoopNote}},
			}

			out := cmd.OutOrStdout()
			for _, cue := range cues {
				fmt.Fprintf(out, "%s:\n", cue.name)
				for _, n := range cue.notes {
					freq, err := audio.Frequency(n.Pitch)
					if err != nil {
						return err
					}
					length, err := audio.NoteValue(n.Duration, bpm)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "  %-3s %7.2f Hz  %-3s %v at +%v\n", n.Pitch, freq, n.Duration, length, n.Offset)
				}
			}

			interval, err := audio.NoteValue(session.LoopInterval, bpm)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "loop interval: %s (%v)\n", session.LoopInterval, interval)
			return nil
		},
	}

	cmd.Flags().Float64Var(&bpm, "bpm", audio.DefaultBPM, "tempo used to size note values")
	return cmd
}
