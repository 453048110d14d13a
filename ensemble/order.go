package ensemble

import (
	"fmt"

	"github.com/grailbio/base/errors"

	"github.com/morinlab/ensemble-caller/encoding/vcf"
)

// NotSortedError reports a sort-order violation inside a single input
// stream: either a chromosome appearing in more than one contiguous block,
// or positions regressing within a block. Pos is zero for the block case.
type NotSortedError struct {
	Chrom string
	Pos   int
}

func (e *NotSortedError) Error() string {
	if e.Pos > 0 {
		return fmt.Sprintf("unsorted positions within chromosome %s around position %d", e.Chrom, e.Pos)
	}
	return fmt.Sprintf("more than one contiguous block for chromosome %s", e.Chrom)
}

// ParseOrder consumes r and returns its chromosome labels in first-seen
// order, with no duplicates. It fails with a *NotSortedError when a
// chromosome reappears after its block has been closed out, or when
// positions regress within a block. ParseOrder fully consumes the stream;
// the caller must Reset it before reading records again.
func ParseOrder(r *vcf.Reader) ([]string, error) {
	var (
		order     []string
		seen      = make(map[string]bool)
		cur       string
		watermark int
	)
	for r.Scan() {
		rec := r.Record()
		if rec.Chrom != cur {
			if seen[rec.Chrom] {
				return nil, &NotSortedError{Chrom: rec.Chrom}
			}
			seen[rec.Chrom] = true
			order = append(order, rec.Chrom)
			cur = rec.Chrom
		} else if rec.Pos < watermark {
			return nil, &NotSortedError{Chrom: rec.Chrom, Pos: rec.Pos}
		}
		watermark = rec.Pos
	}
	return order, r.Err()
}

// CompareOrders reports whether the per-stream chromosome orders describe
// one mutually consistent ordering, tolerating streams that omit
// chromosomes, and which scheme validated them. A scheme validates the
// orders when every order is itself ascending under it and a merged walk
// over all of them never revisits a label; natural is tried first, since a
// tie (orders sorted both ways) must resolve to the relation the walker
// will use between chromosomes the orders never rank against each other.
// Zero or one order is vacuously consistent.
//
// When neither scheme sorts every order the verdict is advisory only: the
// merged walk still detects genuine disagreement between the orders, so
// identical lists remain consistent whatever their internal ordering, but
// no scheme can be vouched for and the walker falls back to natural.
func CompareOrders(orders [][]string) (Scheme, bool) {
	for _, scheme := range []Scheme{Natural, Lexicographic} {
		if sortedUnderAll(orders, scheme) && mergeConsistent(orders, scheme) {
			return scheme, true
		}
	}
	ok := mergeConsistent(orders, Natural) || mergeConsistent(orders, Lexicographic)
	return Natural, ok
}

// sortedUnderAll reports whether every order is strictly ascending under
// the scheme. Orders never hold duplicates (ParseOrder rejects them), so
// any non-ascending pair means the scheme contradicts the file.
func sortedUnderAll(orders [][]string, scheme Scheme) bool {
	for _, order := range orders {
		for i := 1; i < len(order); i++ {
			if scheme.Compare(order[i-1], order[i]) >= 0 {
				return false
			}
		}
	}
	return true
}

// mergeConsistent walks the orders like a k-way merge: repeatedly pick the
// minimum front label under the scheme and pop it from every order whose
// front matches. A label selected twice means two orders disagree on its
// placement.
func mergeConsistent(orders [][]string, scheme Scheme) bool {
	heads := make([]int, len(orders))
	emitted := make(map[string]bool)
	for {
		var min string
		found := false
		for i, order := range orders {
			if heads[i] == len(order) {
				continue
			}
			if front := order[heads[i]]; !found || scheme.Compare(front, min) < 0 {
				min, found = front, true
			}
		}
		if !found {
			return true
		}
		if emitted[min] {
			return false
		}
		emitted[min] = true
		for i, order := range orders {
			if heads[i] < len(order) && order[heads[i]] == min {
				heads[i]++
			}
		}
	}
}

// AreOrdered runs the intra-stream sort check on every reader and then the
// cross-stream consistency check, returning the scheme that validated the
// orders. Intra-stream violations are returned as an error; cross-stream
// divergence only clears the boolean, leaving the policy to the caller.
// AreOrdered fully consumes the readers; the caller must Reset each one
// before walking them.
func AreOrdered(readers []*vcf.Reader) (Scheme, bool, error) {
	orders := make([][]string, 0, len(readers))
	for i, r := range readers {
		order, err := ParseOrder(r)
		if err != nil {
			return Lexicographic, false, errors.E(err, fmt.Sprintf("input %d", i+1))
		}
		orders = append(orders, order)
	}
	scheme, ok := CompareOrders(orders)
	return scheme, ok, nil
}
