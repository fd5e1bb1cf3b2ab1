package solver

import (
	"math/rand/v2"
	"strings"

	"github.com/samber/lo"
)

// openerRounds is how many rounds prefer words without repeated letters.
const openerRounds = 2

// Suggest picks the next word to present from candidates. round is the number
// of guesses already made in the session. It only ever returns a member of
// candidates, or "" when candidates is empty.
//
// The first round favours words with e, a, r and one of i/o/t and no repeated
// letters; the first two rounds avoid repeated letters when possible; later
// rounds take the first candidate.
func Suggest(candidates []string, round int, rng *rand.Rand) string {
	if len(candidates) == 0 {
		return ""
	}
	if round >= openerRounds {
		return candidates[0]
	}

	distinct := lo.Filter(candidates, func(w string, _ int) bool { return !hasRepeats(w) })
	if round == 0 {
		if openers := lo.Filter(distinct, func(w string, _ int) bool { return isOpener(w) }); len(openers) > 0 {
			return pick(openers, rng)
		}
	}
	if len(distinct) > 0 {
		return pick(distinct, rng)
	}
	return candidates[0]
}

// isOpener reports whether w covers the common letters e, a, r and one of i/o/t.
func isOpener(w string) bool {
	return strings.ContainsRune(w, 'e') &&
		strings.ContainsRune(w, 'a') &&
		strings.ContainsRune(w, 'r') &&
		strings.ContainsAny(w, "iot")
}

func pick(words []string, rng *rand.Rand) string {
	if rng == nil {
		return words[rand.IntN(len(words))]
	}
	return words[rng.IntN(len(words))]
}
