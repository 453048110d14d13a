package ensemble

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestLexicographicCompare(t *testing.T) {
	expect.EQ(t, Lexicographic.Compare("chr1", "chr2"), -1)
	expect.EQ(t, Lexicographic.Compare("chr10", "chr2"), -1)
	expect.EQ(t, Lexicographic.Compare("chr2", "chr2"), 0)
	expect.EQ(t, Lexicographic.Compare("chrX", "chr9"), 1)
}

func TestNaturalCompare(t *testing.T) {
	for _, tt := range []struct {
		a, b string
		want int
	}{
		{"chr2", "chr10", -1},
		{"chr10", "chr2", 1},
		{"chr10", "chr10", 0},
		{"chr9", "chrX", -1},  // numeric run sorts before alphabetic run
		{"chrM", "chr22", 1},  // ditto, reversed
		{"chr", "chr1", -1},   // run prefix, shorter first
		{"chr7", "chr07", -1}, // equal value, fewer leading zeros first
		{"chr07", "chr007", -1},
		{"1", "10", -1},
		{"chr1_random", "chr1", 1},
		{"chr2_random", "chr10_random", -1},
		{"alpha", "beta", -1},
	} {
		expect.EQ(t, naturalCompare(tt.a, tt.b), tt.want, "%s vs %s", tt.a, tt.b)
	}
}

func TestSchemeString(t *testing.T) {
	expect.EQ(t, Lexicographic.String(), "lexicographic")
	expect.EQ(t, Natural.String(), "natural")
}
