package solver

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	tests := []struct {
		name       string
		candidates []string
		round      int
		want       string
	}{
		{"empty", nil, 0, ""},
		{"opener preferred on first round", []string{"eerie", "spoon", "crate"}, 0, "crate"},
		{"distinct letters before openers", []string{"eerie", "spoon", "shout"}, 0, "shout"},
		{"distinct letters on second round", []string{"eerie", "crate", "spoon"}, 1, "crate"},
		{"all repeated falls back to first", []string{"eerie", "spoon"}, 1, "eerie"},
		{"later rounds take first", []string{"spoon", "crate"}, 2, "spoon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.candidates, tt.round, rng))
		})
	}
}

func TestSuggest_AlwaysFromCandidates(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for round := 0; round < 4; round++ {
		for i := 0; i < 50; i++ {
			assert.Contains(t, sampleWords, Suggest(sampleWords, round, rng))
		}
	}
	assert.Contains(t, sampleWords, Suggest(sampleWords, 0, nil))
}
