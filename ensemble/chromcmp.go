// Package ensemble implements ensemble SNV consensus calling: it aligns
// variant records across sorted VCF streams produced by independent calling
// algorithms and reports the calls supported by enough of them, following
// the voting scheme recommended by Ewing et al. (doi:10.1038/nmeth.3407).
//
// The core of the package is the order-validation machinery (ParseOrder,
// CompareOrders) and the Walker, a k-way lock-step merge over sorted record
// streams that groups records describing the same variant into aligned
// tuples.
package ensemble

import "strings"

// Scheme selects the chromosome ordering relation used for order validation
// and for aligned tuple emission.
type Scheme int

const (
	// Lexicographic compares chromosome labels bytewise, so "chr10" sorts
	// before "chr2".
	Lexicographic Scheme = iota
	// Natural splits labels into alphabetic and numeric runs and compares
	// numeric runs as integers, so "chr2" sorts before "chr10".
	Natural
)

func (s Scheme) String() string {
	if s == Natural {
		return "natural"
	}
	return "lexicographic"
}

// Compare compares two chromosome labels under the scheme, returning -1, 0
// or 1.
func (s Scheme) Compare(a, b string) int {
	if s == Natural {
		return naturalCompare(a, b)
	}
	return strings.Compare(a, b)
}

// naturalCompare compares two labels run by run, where a run is a maximal
// stretch of either digits or non-digits. Numeric runs compare by integer
// value. When a numeric run meets an alphabetic run at the same offset, the
// numeric run sorts first; when one label is a prefix of the other in runs,
// the shorter sorts first.
func naturalCompare(a, b string) int {
	var i, j int
	for i < len(a) && j < len(b) {
		ra, ni := nextRun(a, i)
		rb, nj := nextRun(b, j)
		aNum, bNum := isDigit(a[i]), isDigit(b[j])
		switch {
		case aNum && bNum:
			if c := compareNumeric(ra, rb); c != 0 {
				return c
			}
		case aNum:
			return -1
		case bNum:
			return 1
		default:
			if c := strings.Compare(ra, rb); c != 0 {
				return c
			}
		}
		i, j = ni, nj
	}
	switch {
	case i < len(a):
		return 1
	case j < len(b):
		return -1
	}
	return 0
}

// compareNumeric compares two digit runs by integer value without parsing,
// so arbitrarily long runs are fine. Equal values with different numbers of
// leading zeros tie-break on string length, shorter first, to keep the order
// total.
func compareNumeric(a, b string) int {
	ta := strings.TrimLeft(a, "0")
	tb := strings.TrimLeft(b, "0")
	if len(ta) != len(tb) {
		if len(ta) < len(tb) {
			return -1
		}
		return 1
	}
	if c := strings.Compare(ta, tb); c != 0 {
		return c
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// nextRun returns the run starting at s[i] and the offset just past it.
func nextRun(s string, i int) (string, int) {
	j := i + 1
	for j < len(s) && isDigit(s[j]) == isDigit(s[i]) {
		j++
	}
	return s[i:j], j
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
