package ensemble_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/grailbio/testutil/assert"

	"github.com/morinlab/ensemble-caller/encoding/vcf"
)

// vcfText assembles a minimal VCF file body. Rows are preformatted data
// lines, usually built with row().
func vcfText(source string, rows ...string) string {
	var b strings.Builder
	b.WriteString("##fileformat=VCFv4.2\n")
	if source != "" {
		fmt.Fprintf(&b, "##source=%s\n", source)
	}
	b.WriteString("#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n")
	for _, r := range rows {
		b.WriteString(r)
		b.WriteByte('\n')
	}
	return b.String()
}

func row(chrom string, pos int, ref, alt string) string {
	return fmt.Sprintf("%s\t%d\t.\t%s\t%s\t.\tPASS\t.", chrom, pos, ref, alt)
}

func newReader(t *testing.T, source string, rows ...string) *vcf.Reader {
	r, err := vcf.NewReader(strings.NewReader(vcfText(source, rows...)))
	assert.NoError(t, err)
	return r
}
