package main

import (
	"github.com/spf13/cobra"

	"github.com/robalobadob/wormle/internal/prompt"
)

var (
	solveShow    int
	solveExplain bool
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve interactively from a line prompt",
	Long:  "Read the word you played and the colours you got, one round at a time, and print what is left.",
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().IntVar(&solveShow, "show", 60, "Max remaining words printed per round (0 = all)")
	solveCmd.Flags().BoolVar(&solveExplain, "explain", false, "Describe what every colour removed")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, _ []string) error {
	list, err := loadWords(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	sess := newSession(cfg, list)
	return prompt.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), sess, prompt.Options{
		ShowLimit: solveShow,
		Explain:   solveExplain,
	})
}
