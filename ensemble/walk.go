package ensemble

import "github.com/morinlab/ensemble-caller/encoding/vcf"

// Walker merges N sorted VCF streams into a lazy sequence of aligned
// tuples, one per distinct alignment key across all streams, in ascending
// key order. Slot i of a tuple holds the record from stream i matching the
// tuple's key, or nil when stream i has no call at that key. Every input
// record appears in exactly one tuple slot.
//
// Walker assumes its inputs are sorted under the scheme it is given; run
// AreOrdered first (or skip it deliberately). It buffers one record per
// stream and pulls a new one only when the buffered record is consumed, so
// memory use is independent of stream length. Walkers are single-pass and
// must not share readers with another Walker.
type Walker struct {
	readers []*vcf.Reader
	scheme  Scheme
	heads   []*vcf.Record // lookahead, nil = exhausted
	tuple   []*vcf.Record
	primed  bool
	err     error
}

// NewWalker constructs a Walker over readers, comparing chromosome labels
// under scheme. The readers must be positioned at their first data record.
func NewWalker(readers []*vcf.Reader, scheme Scheme) *Walker {
	return &Walker{
		readers: readers,
		scheme:  scheme,
		heads:   make([]*vcf.Record, len(readers)),
	}
}

func (w *Walker) advance(i int) {
	if w.readers[i].Scan() {
		w.heads[i] = w.readers[i].Record()
		return
	}
	w.heads[i] = nil
	if err := w.readers[i].Err(); err != nil && w.err == nil {
		w.err = err
	}
}

// Scan produces the next aligned tuple, returning a boolean indicating
// whether one was produced. Scan returns false when every stream is
// exhausted or a read fails; check Err afterwards.
func (w *Walker) Scan() bool {
	if w.err != nil {
		return false
	}
	if !w.primed {
		for i := range w.readers {
			w.advance(i)
		}
		w.primed = true
		if w.err != nil {
			return false
		}
	}
	var min *vcf.Record
	for _, h := range w.heads {
		if h == nil {
			continue
		}
		if min == nil || vcf.CompareKeys(h, min, w.scheme.Compare) < 0 {
			min = h
		}
	}
	if min == nil {
		return false
	}
	tuple := make([]*vcf.Record, len(w.heads))
	for i, h := range w.heads {
		if h != nil && vcf.CompareKeys(h, min, w.scheme.Compare) == 0 {
			tuple[i] = h
			w.advance(i)
		}
	}
	w.tuple = tuple
	return true
}

// Tuple returns the aligned tuple produced by the last successful Scan. The
// caller owns it; the Walker does not retain it.
func (w *Walker) Tuple() []*vcf.Record {
	return w.tuple
}

// Err returns the first error encountered while reading any stream, if any.
func (w *Walker) Err() error {
	return w.err
}
