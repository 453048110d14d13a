package ensemble

import (
	"fmt"
	"strings"

	"github.com/morinlab/ensemble-caller/encoding/vcf"
)

// Opts configures consensus calling.
type Opts struct {
	// MinSupport is the number of callers that must report a variant for
	// it to be emitted. Zero means a strict majority of the input streams.
	MinSupport int
}

// DefaultOpts is the default consensus calling configuration.
var DefaultOpts = Opts{}

// Stats summarizes one Call run.
type Stats struct {
	// Seen is the number of distinct aligned sites walked.
	Seen int
	// Called is the number of consensus calls emitted.
	Called int
}

// Vote counts the populated slots of an aligned tuple and returns the
// representative record, which is the record from the first stream that
// made the call.
func Vote(tuple []*vcf.Record) (int, *vcf.Record) {
	var (
		support int
		rec     *vcf.Record
	)
	for _, r := range tuple {
		if r == nil {
			continue
		}
		support++
		if rec == nil {
			rec = r
		}
	}
	return support, rec
}

// ConsensusMeta builds the output header for a consensus run over the named
// callers.
func ConsensusMeta(names []string) *vcf.Meta {
	return vcf.NewMeta([]string{
		"##fileformat=VCFv4.2",
		"##source=ensemble-caller",
		fmt.Sprintf("##ensemble_callers=%s", strings.Join(names, ",")),
		`##INFO=<ID=CALLERS,Number=.,Type=String,Description="Callers supporting this variant">`,
		`##INFO=<ID=NCALLERS,Number=1,Type=Integer,Description="Number of callers supporting this variant">`,
	})
}

// Call walks the aligned tuples across readers and writes every variant
// supported by at least opts.MinSupport callers (a strict majority when
// zero) to w as a consensus record. The record is the representative call
// with its INFO column extended by CALLERS and NCALLERS annotations; the
// genotype columns are dropped, since their layout is caller-specific.
// Names must parallel readers (see Names). The readers must be positioned
// at their first data record and sorted under scheme.
func Call(readers []*vcf.Reader, names []string, w *vcf.Writer, scheme Scheme, opts Opts) (Stats, error) {
	minSupport := opts.MinSupport
	if minSupport <= 0 {
		minSupport = len(readers)/2 + 1
	}
	var stats Stats
	walker := NewWalker(readers, scheme)
	for walker.Scan() {
		tuple := walker.Tuple()
		stats.Seen++
		support, rec := Vote(tuple)
		if support < minSupport {
			continue
		}
		out := *rec
		out.Info = annotateInfo(rec.Info, supporters(tuple, names), support)
		out.Format = ""
		out.Samples = nil
		if err := w.Write(&out); err != nil {
			return stats, err
		}
		stats.Called++
	}
	return stats, walker.Err()
}

// supporters comma-joins the names of the callers with a populated slot.
func supporters(tuple []*vcf.Record, names []string) string {
	parts := make([]string, 0, len(tuple))
	for i, r := range tuple {
		if r != nil {
			parts = append(parts, names[i])
		}
	}
	return strings.Join(parts, ",")
}

func annotateInfo(info, callers string, support int) string {
	tag := fmt.Sprintf("CALLERS=%s;NCALLERS=%d", callers, support)
	if info == "" || info == "." {
		return tag
	}
	return info + ";" + tag
}
