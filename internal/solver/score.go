// internal/solver/score.go
//
// Score produces the feedback a Wordle host would give for guess against secret.
// It is not used by the filter itself; presenters use it to simulate a host and
// tests use it to check that a secret survives its own feedback.

package solver

// Score implements the standard two-pass Wordle evaluation.
//
// Pass 1:
//   - Mark exact matches as correct.
//   - Count remaining (non-correct) secret letters.
//
// Pass 2:
//   - For each non-correct guess letter: if a remaining count exists, mark present
//     and decrement; otherwise mark absent.
//
// Both words must be lowercase a-z of equal length; otherwise all-absent is returned.
func Score(secret, guess string) Feedback {
	n := len(guess)
	res := AllAbsent(n)
	if len(secret) != n || !isAlpha(secret) || !isAlpha(guess) {
		return res
	}

	var counts [26]int
	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			res[i] = MarkCorrect
		} else {
			counts[secret[i]-'a']++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkCorrect {
			continue
		}
		j := guess[i] - 'a'
		if counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		}
	}
	return res
}
