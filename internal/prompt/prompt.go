// internal/prompt/prompt.go
//
// Line-oriented solver loop for terminals and pipes.
//
// Each round prints how many candidates remain and the suggested word, then reads:
//  1. the word actually played (blank = suggestion, "reset", "quit"),
//  2. the colours the game showed ("gybbb", or "ignore" to skip the round).
//
// Surviving candidates are printed after every round. When the session is
// solved or runs out of words the user is offered a fresh start.

package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wormle/internal/solver"
)

// Options tunes the loop output.
type Options struct {
	ShowLimit int  // max candidates printed per round, 0 = all
	Explain   bool // print what each mark did to the list
}

type loop struct {
	sc   *bufio.Scanner
	out  io.Writer
	sess *solver.Session
	opts Options
}

// Run drives sess from in/out until the user quits, input ends, or ctx is done.
func Run(ctx context.Context, in io.Reader, out io.Writer, sess *solver.Session, opts Options) error {
	l := &loop{sc: bufio.NewScanner(in), out: out, sess: sess, opts: opts}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if sess.Status.Finished() {
			again, ok := l.ask("start over? [y/N] ")
			if !ok || !isYes(again) {
				return l.sc.Err()
			}
			l.reset()
			continue
		}

		l.printf("%d words left, try: %s\n", len(sess.Candidates), strings.ToUpper(sess.Current))
		word, ok := l.ask(fmt.Sprintf("word [%s]: ", sess.Current))
		if !ok {
			return l.sc.Err()
		}
		switch strings.ToLower(word) {
		case "quit", "exit", "q":
			return nil
		case "reset":
			l.reset()
			continue
		case "":
			word = sess.Current
		}

		marks, ok := l.ask("colours? [g]reen/[y]ellow/[b]lack or ignore: ")
		if !ok {
			return l.sc.Err()
		}
		if strings.EqualFold(marks, "ignore") {
			continue
		}
		fb, err := solver.ParseFeedback(marks)
		if err != nil {
			l.printf("could not read colours: %v\n", err)
			continue
		}

		g := solver.Guess{Word: word, Feedback: fb}
		status, err := sess.Submit(g)
		if err != nil {
			l.printf("rejected: %v\n", err)
			continue
		}
		log.Debug().Str("session", sess.ID).Str("word", word).Str("feedback", fb.String()).
			Int("remaining", len(sess.Candidates)).Msg("guess applied")

		if l.opts.Explain {
			for _, line := range Explain(g) {
				l.printf("  %s\n", line)
			}
		}
		switch status {
		case solver.StatusSolved:
			l.printf("the word was %s!!!\n", sess.Current)
		case solver.StatusExhausted:
			l.printf("no remaining candidates :(\n")
		default:
			l.printList()
		}
	}
}

// Explain describes what every mark of g did to the candidate list.
func Explain(g solver.Guess) []string {
	word := strings.ToLower(strings.TrimSpace(g.Word))
	lines := make([]string, 0, len(g.Feedback))
	for i, m := range g.Feedback {
		if i >= len(word) {
			break
		}
		c := word[i]
		switch m {
		case solver.MarkCorrect:
			lines = append(lines, fmt.Sprintf("keep %c in position %d", c, i+1))
		case solver.MarkPresent:
			lines = append(lines, fmt.Sprintf("keep words with %c, but not in position %d", c, i+1))
		default:
			lines = append(lines, fmt.Sprintf("drop %c from position %d (and everywhere else unless it scored)", c, i+1))
		}
	}
	return lines
}

func (l *loop) reset() {
	if dropped := l.sess.Reset(); len(dropped) > 0 {
		log.Debug().Int("dropped", len(dropped)).Msg("source words rejected on reset")
	}
	l.printf("starting over with %d words\n", len(l.sess.Candidates))
}

func (l *loop) printList() {
	words := l.sess.Candidates
	more := 0
	if n := l.opts.ShowLimit; n > 0 && len(words) > n {
		more = len(words) - n
		words = words[:n]
	}
	l.printf("%s\n", strings.Join(words, " "))
	if more > 0 {
		l.printf("... and %d more\n", more)
	}
}

// ask prints label and returns the next trimmed input line; false at end of input.
func (l *loop) ask(label string) (string, bool) {
	l.printf("%s", label)
	if !l.sc.Scan() {
		l.printf("\n")
		return "", false
	}
	return strings.TrimSpace(l.sc.Text()), true
}

func (l *loop) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(l.out, format, args...)
}

func isYes(s string) bool {
	switch strings.ToLower(s) {
	case "y", "yes":
		return true
	}
	return false
}
