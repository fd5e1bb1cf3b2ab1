// Package main is the wormle command: a Wordle elimination assistant with a
// line prompt, a terminal UI, an HTTP API, a simulator and a dictionary importer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wormle/internal/config"
	"github.com/robalobadob/wormle/internal/solver"
	"github.com/robalobadob/wormle/internal/store"
	"github.com/robalobadob/wormle/internal/words"
)

var (
	configPath string
	wordLength int
	wordsFile  string
	wordsDB    string
	shuffle    bool

	// cfg is resolved once per invocation in PersistentPreRunE.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "wormle",
	Short:         "Wordle elimination assistant",
	Long:          "wormle narrows a word list down from the colours a Wordle game gives back and suggests what to play next.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("length") {
			c.WordLength = wordLength
		}
		if flags.Changed("words-file") {
			c.WordsFile = wordsFile
		}
		if flags.Changed("words-db") {
			c.WordsDB = wordsDB
		}
		if flags.Changed("shuffle") {
			c.Shuffle = shuffle
		}
		if err := c.Validate(); err != nil {
			return err
		}
		setupLogging(c)
		cfg = c
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file")
	pf.IntVar(&wordLength, "length", 5, "Word length (overrides WORD_LENGTH)")
	pf.StringVar(&wordsFile, "words-file", "", "Word list file, one word per line or JSON (overrides WORDS_FILE)")
	pf.StringVar(&wordsDB, "words-db", "", "sqlite dictionary (overrides WORDS_DB)")
	pf.BoolVar(&shuffle, "shuffle", false, "Shuffle the word list on every start (overrides SHUFFLE)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging applies LOG_LEVEL and LOG_PRETTY to the global zerolog logger.
func setupLogging(c *config.Config) {
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if c.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// loadWords reads the configured word source.
func loadWords(ctx context.Context, c *config.Config) (words.List, error) {
	return words.Load(ctx, words.Options{DB: c.WordsDB, File: c.WordsFile, Length: c.WordLength})
}

// newSession seeds a session from list with the configured length and shuffle flag.
func newSession(c *config.Config, list words.List, opts ...solver.Option) *solver.Session {
	opts = append([]solver.Option{solver.WithShuffle(c.Shuffle)}, opts...)
	sess, dropped := solver.NewSession(store.NewID(), list, c.WordLength, opts...)
	if len(dropped) > 0 {
		log.Warn().Int("dropped", len(dropped)).Err(dropped[0]).Msg("word list entries ignored")
	}
	return sess
}
