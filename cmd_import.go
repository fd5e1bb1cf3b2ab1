package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wormle/internal/words"
)

const defaultDictionary = "./data/words.db"

var (
	importFrom string
	importDB   string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a word list into the sqlite dictionary",
	Long: "Read a word file (one word per line, or JSON) and add every word to the sqlite dictionary,\n" +
		"whatever its length. Words already present are skipped, so the command can be re-run safely.",
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFrom, "from", "", "Word file to import (required)")
	importCmd.Flags().StringVar(&importDB, "db", "", "Dictionary path (default: WORDS_DB, then "+defaultDictionary+")")
	if err := importCmd.MarkFlagRequired("from"); err != nil {
		panic(fmt.Sprintf("failed to mark from flag as required: %v", err))
	}
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	dbPath := importDB
	if dbPath == "" {
		dbPath = cfg.WordsDB
	}
	if dbPath == "" {
		dbPath = defaultDictionary
	}

	list, err := words.ReadFile(importFrom, 0)
	if err != nil {
		return err
	}

	db, err := words.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("open dictionary: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if err := words.Migrate(ctx, db); err != nil {
		return err
	}
	added, err := words.Import(ctx, db, list)
	if err != nil {
		return err
	}

	log.Info().Str("db", dbPath).Str("from", importFrom).Int("read", len(list)).Int("added", added).Msg("import finished")
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d new words (%d read) into %s\n", added, len(list), dbPath)
	return nil
}
