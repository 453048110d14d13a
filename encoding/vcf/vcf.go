// Package vcf contains a streaming reader and writer for VCF
// (Variant Call Format) files.  See
// https://samtools.github.io/hts-specs/VCFv4.2.pdf.  Briefly, a VCF file
// starts with a meta-information section of "##key=value" lines, followed by
// a "#CHROM ..." column header line, followed by one tab-separated data line
// per variant call:
//
// ##fileformat=VCFv4.2
// ##source=strelka
// #CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO
// chr1	14370	rs6054257	G	A	29	PASS	DP=14
//
// The reader is single-pass but restartable: Reset rewinds the data cursor
// to the first record without re-parsing the meta-information section.
package vcf

import "strings"

// Record is one data line of a VCF file. POS is 1-based, as in the text
// format. Records are freshly allocated by the reader and never reused, so
// callers may retain them.
type Record struct {
	Chrom  string
	Pos    int
	ID     string
	Ref    string
	Alt    []string
	Qual   string
	Filter string
	Info   string
	// Genotype columns, present only when the file declares samples.
	Format  string
	Samples []string
}

// AltString returns the ALT column as written in the file: comma-joined
// alternate alleles, or "." when there are none.
func (r *Record) AltString() string {
	if len(r.Alt) == 0 {
		return "."
	}
	return strings.Join(r.Alt, ",")
}

// CompareKeys compares two records by their alignment key: chromosome, then
// position, then reference allele, then alternate alleles. Chromosome labels
// are compared with chromCmp so that callers can choose between lexicographic
// and natural ordering; the remaining fields always compare the same way.
func CompareKeys(a, b *Record, chromCmp func(a, b string) int) int {
	if c := chromCmp(a.Chrom, b.Chrom); c != 0 {
		return c
	}
	if a.Pos != b.Pos {
		if a.Pos < b.Pos {
			return -1
		}
		return 1
	}
	if c := strings.Compare(a.Ref, b.Ref); c != 0 {
		return c
	}
	return strings.Compare(a.AltString(), b.AltString())
}

// SameKey reports whether two records describe the same variant, i.e. their
// alignment keys are equal. Key equality does not depend on the chromosome
// ordering scheme.
func SameKey(a, b *Record) bool {
	return a.Chrom == b.Chrom && a.Pos == b.Pos && a.Ref == b.Ref &&
		a.AltString() == b.AltString()
}
