// internal/words/words.go
//
// Word sources for the solver.
//
// Responsibilities:
//   - Load the initial candidate list from a sqlite dictionary, a word file, or the
//     bundled default list.
//   - Normalise entries (trim, lowercase) and pre-filter by length and letters.
//
// Sources (Load):
//  1. If Options.DB is set, read words of the requested length from the sqlite
//     dictionary (see sqlite.go).
//  2. Else if Options.File is set, read it: *.json files hold {"words": [...]}
//     (a bare JSON array is accepted too), anything else is one word per line.
//  3. Else fall back to the embedded assets/wordlist.json.
//
// Environment variables (through internal/config):
//
//	WORDS_DB=/path/to/words.db
//	WORDS_FILE=/path/to/words.txt
package words

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/wormle/assets"
)

// ErrEmpty is returned when a source yields no usable words.
var ErrEmpty = errors.New("words: list is empty")

// List is an in-memory word source. It satisfies solver.WordSource.
type List []string

// Words returns the list itself.
func (l List) Words() []string { return l }

// Options selects where Load reads words from.
type Options struct {
	DB     string // sqlite dictionary path
	File   string // newline or JSON word file
	Length int    // word length to keep
}

// Load reads the configured source and returns the normalised list.
func Load(ctx context.Context, opts Options) (List, error) {
	var (
		list List
		err  error
		from string
	)
	switch {
	case opts.DB != "":
		from = opts.DB
		list, err = loadDB(ctx, opts.DB, opts.Length)
	case opts.File != "":
		from = opts.File
		list, err = ReadFile(opts.File, opts.Length)
	default:
		from = "embedded"
		list, err = Embedded(opts.Length)
	}
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w (source %s, length %d)", ErrEmpty, from, opts.Length)
	}
	log.Info().Str("source", from).Int("words", len(list)).Int("length", opts.Length).Msg("word list loaded")
	return list, nil
}

// loadDB opens the sqlite dictionary just long enough to read it.
func loadDB(ctx context.Context, path string, length int) (List, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	if err := Migrate(ctx, db); err != nil {
		return nil, err
	}
	return FromDB(ctx, db, length)
}

// ReadFile loads a word file, picking the format from the extension.
func ReadFile(path string, length int) (List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word file %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(data, length)
	}
	return ParseLines(bytes.NewReader(data), length)
}

// ParseLines reads one word per line. Blank lines and lines starting with # are skipped.
func ParseLines(r io.Reader, length int) (List, error) {
	var raw []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		raw = append(raw, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return normalize(raw, length), nil
}

// ParseJSON reads {"words": [...]} or a bare array of strings.
func ParseJSON(data []byte, length int) (List, error) {
	var wrapped struct {
		Words []string `json:"words"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil {
		return normalize(wrapped.Words, length), nil
	}
	var bare []string
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("parse word list JSON: %w", err)
	}
	return normalize(bare, length), nil
}

// Embedded returns the bundled default list filtered to length.
func Embedded(length int) (List, error) {
	data, err := assets.WordList()
	if err != nil {
		return nil, err
	}
	return ParseJSON(data, length)
}

// normalize trims and lowercases entries, drops comments, wrong lengths and
// non-letters, and removes duplicates keeping the first occurrence.
func normalize(raw []string, length int) List {
	skipped := 0
	out := lo.FilterMap(raw, func(s string, _ int) (string, bool) {
		w := strings.ToLower(strings.TrimSpace(s))
		if w == "" || strings.HasPrefix(w, "#") {
			return "", false
		}
		if (length > 0 && len(w) != length) || !isAlpha(w) {
			skipped++
			return "", false
		}
		return w, true
	})
	if skipped > 0 {
		log.Debug().Int("skipped", skipped).Int("length", length).Msg("dropped words not matching length or letters")
	}
	return List(lo.Uniq(out))
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Stats returns the number of words and how many have no repeated letters.
func Stats(l List) (total int, distinct int) {
	distinct = lo.CountBy(l, func(w string) bool {
		return len(lo.Uniq([]rune(w))) == len(w)
	})
	return len(l), distinct
}
