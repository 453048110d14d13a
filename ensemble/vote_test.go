package ensemble_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"

	"github.com/morinlab/ensemble-caller/encoding/vcf"
	"github.com/morinlab/ensemble-caller/ensemble"
)

func TestVote(t *testing.T) {
	a := &vcf.Record{Chrom: "chr1", Pos: 100, Ref: "A", Alt: []string{"T"}}
	b := &vcf.Record{Chrom: "chr1", Pos: 100, Ref: "A", Alt: []string{"T"}}

	support, rep := ensemble.Vote([]*vcf.Record{a, b, nil})
	expect.EQ(t, support, 2)
	expect.EQ(t, rep, a)

	support, rep = ensemble.Vote([]*vcf.Record{nil, b, nil})
	expect.EQ(t, support, 1)
	expect.EQ(t, rep, b)

	support, rep = ensemble.Vote([]*vcf.Record{nil, nil})
	expect.EQ(t, support, 0)
	expect.Nil(t, rep)
}

func TestConsensusMeta(t *testing.T) {
	m := ensemble.ConsensusMeta([]string{"strelka", "museq"})
	expect.EQ(t, m.FileFormat, "VCFv4.2")
	expect.EQ(t, m.Source(), "ensemble-caller")
	expect.EQ(t, m.Get("ensemble_callers"), "strelka,museq")
}

func callerReaders(t *testing.T) []*vcf.Reader {
	return []*vcf.Reader{
		newReader(t, "strelka",
			row("chr1", 100, "A", "T"),
			row("chr1", 200, "C", "G"),
			row("chr2", 10, "G", "A"),
		),
		newReader(t, "museq",
			row("chr1", 100, "A", "T"),
			row("chr2", 10, "G", "A"),
		),
		newReader(t, "mutect",
			row("chr1", 100, "A", "T"),
			row("chr2", 10, "G", "A"),
			row("chr2", 99, "T", "C"),
		),
	}
}

func TestCallMajority(t *testing.T) {
	readers := callerReaders(t)
	names := ensemble.Names(readers)
	b := new(bytes.Buffer)
	w := vcf.NewWriter(b)
	assert.NoError(t, w.WriteMeta(ensemble.ConsensusMeta(names)))

	stats, err := ensemble.Call(readers, names, w, ensemble.Natural, ensemble.DefaultOpts)
	assert.NoError(t, err)
	assert.NoError(t, w.Flush())
	expect.EQ(t, stats.Seen, 4)
	expect.EQ(t, stats.Called, 2)

	var calls []string
	for _, line := range strings.Split(strings.TrimRight(b.String(), "\n"), "\n") {
		if !strings.HasPrefix(line, "#") {
			calls = append(calls, line)
		}
	}
	assert.EQ(t, len(calls), 2)
	expect.EQ(t, calls[0], "chr1\t100\t.\tA\tT\t.\tPASS\tCALLERS=strelka,museq,mutect;NCALLERS=3")
	expect.EQ(t, calls[1], "chr2\t10\t.\tG\tA\t.\tPASS\tCALLERS=strelka,museq,mutect;NCALLERS=3")
}

func TestCallMinSupport(t *testing.T) {
	run := func(minSupport int) ensemble.Stats {
		readers := callerReaders(t)
		names := ensemble.Names(readers)
		w := vcf.NewWriter(new(bytes.Buffer))
		stats, err := ensemble.Call(readers, names, w, ensemble.Natural,
			ensemble.Opts{MinSupport: minSupport})
		assert.NoError(t, err)
		return stats
	}
	expect.EQ(t, run(1).Called, 4) // every aligned site survives
	expect.EQ(t, run(2).Called, 2)
	expect.EQ(t, run(3).Called, 2)
	expect.EQ(t, run(4).Called, 0) // threshold above stream count
}

func TestCallInfoAnnotation(t *testing.T) {
	readers := []*vcf.Reader{
		newReader(t, "strelka", "chr1\t100\t.\tA\tT\t.\tPASS\tDP=14"),
		newReader(t, "museq", row("chr1", 100, "A", "T")),
	}
	names := []string{"one", "two"}
	b := new(bytes.Buffer)
	w := vcf.NewWriter(b)
	stats, err := ensemble.Call(readers, names, w, ensemble.Natural, ensemble.DefaultOpts)
	assert.NoError(t, err)
	assert.NoError(t, w.Flush())
	expect.EQ(t, stats.Called, 1)
	// Existing INFO is preserved, the "." placeholder is not.
	assert.HasSubstr(t, b.String(), "DP=14;CALLERS=one,two;NCALLERS=2")
}
