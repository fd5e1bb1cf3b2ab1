package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wormle/internal/config"
	"github.com/robalobadob/wormle/internal/solver"
	"github.com/robalobadob/wormle/internal/words"
)

var (
	simSecrets   []string
	simMaxRounds int
	simLimit     int
	simSeed      uint64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play the solver against known secrets",
	Long: "Score the suggested word against each secret and feed the colours back until the word is found.\n" +
		"With --secret the rounds are printed; without it every word in the list is played and a summary is printed.",
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.StringSliceVar(&simSecrets, "secret", nil, "Secret word(s) to play against (default: every word in the list)")
	f.IntVar(&simMaxRounds, "max-rounds", 20, "Give up after this many rounds")
	f.IntVar(&simLimit, "limit", 0, "Only play the first N secrets of the list (0 = all)")
	f.Uint64Var(&simSeed, "seed", 1, "Random seed for suggestions and shuffling")
	rootCmd.AddCommand(simulateCmd)
}

// simResult is the outcome of one simulated game.
type simResult struct {
	Secret  string
	Status  solver.Status
	Rounds  int
	History []solver.Guess
}

// simulate plays one game per secret. Every game gets its own random source
// derived from seed so results do not depend on the order of secrets.
func simulate(c *config.Config, list words.List, secrets []string, maxRounds int, seed uint64) []simResult {
	out := make([]simResult, 0, len(secrets))
	for i, secret := range secrets {
		rng := rand.New(rand.NewPCG(seed, uint64(i)))
		sess := newSession(c, list, solver.WithRand(rng))
		status, err := solver.Autoplay(sess, secret, maxRounds)
		if err != nil {
			log.Warn().Err(err).Str("secret", secret).Msg("simulation stopped")
		}
		out = append(out, simResult{Secret: secret, Status: status, Rounds: sess.Round(), History: sess.History})
	}
	return out
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	list, err := loadWords(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	secrets := lo.Map(simSecrets, func(s string, _ int) string { return strings.ToLower(strings.TrimSpace(s)) })
	verbose := len(secrets) > 0
	if !verbose {
		secrets = list
		if simLimit > 0 && simLimit < len(secrets) {
			secrets = secrets[:simLimit]
		}
	}

	results := simulate(cfg, list, secrets, simMaxRounds, simSeed)
	w := cmd.OutOrStdout()
	if verbose {
		for _, r := range results {
			printGame(w, r)
		}
		return nil
	}
	printSummary(w, results)
	return nil
}

func printGame(w io.Writer, r simResult) {
	fmt.Fprintf(w, "secret %s\n", r.Secret)
	for i, g := range r.History {
		fmt.Fprintf(w, "  %d. %s %s\n", i+1, g.Word, g.Feedback)
	}
	fmt.Fprintf(w, "  %s after %d rounds\n", r.Status, r.Rounds)
}

func printSummary(w io.Writer, results []simResult) {
	solved := lo.Filter(results, func(r simResult, _ int) bool { return r.Status == solver.StatusSolved })
	rounds := lo.Map(solved, func(r simResult, _ int) int { return r.Rounds })
	inSix := lo.CountBy(rounds, func(n int) bool { return n <= 6 })

	fmt.Fprintf(w, "games:    %d\n", len(results))
	fmt.Fprintf(w, "solved:   %d\n", len(solved))
	if len(rounds) == 0 {
		return
	}
	fmt.Fprintf(w, "in six:   %d (%.1f%%)\n", inSix, 100*float64(inSix)/float64(len(results)))
	fmt.Fprintf(w, "average:  %.2f rounds\n", float64(lo.Sum(rounds))/float64(len(rounds)))
	fmt.Fprintf(w, "worst:    %d rounds\n", lo.Max(rounds))

	dist := lo.CountValues(rounds)
	keys := lo.Keys(dist)
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %2d: %s %d\n", k, strings.Repeat("#", barLen(dist[k], len(rounds))), dist[k])
	}

	if failed := lo.Without(lo.Map(results, func(r simResult, _ int) string { return r.Secret }),
		lo.Map(solved, func(r simResult, _ int) string { return r.Secret })...); len(failed) > 0 {
		fmt.Fprintf(w, "unsolved: %s\n", strings.Join(failed, " "))
	}
}

// barLen scales n of total to at most 40 columns, never below one.
func barLen(n, total int) int {
	l := n * 40 / total
	if l < 1 {
		l = 1
	}
	return l
}
