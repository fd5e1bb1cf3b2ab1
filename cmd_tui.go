package main

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wormle/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Solve in a full-screen terminal UI",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	list, err := loadWords(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	// info lines on stderr would tear the alternate screen
	if zerolog.GlobalLevel() < zerolog.WarnLevel {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	err = tui.Run(cmd.Context(), newSession(cfg, list))
	if errors.Is(err, tea.ErrProgramKilled) && cmd.Context().Err() != nil {
		return nil
	}
	return err
}
