package main

/*
ensemble-caller performs ensemble SNV calling over VCF files produced by
multiple variant-calling algorithms: it aligns matching variant records
across the inputs and emits the calls supported by a majority of them.
*/

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/morinlab/ensemble-caller/encoding/vcf"
	"github.com/morinlab/ensemble-caller/ensemble"
)

var (
	skipSortCheck = flag.Bool("skip-sort-check", false, "Skip the input sort checks")
	strict        = flag.Bool("strict", false, "Treat cross-input chromosome order divergence as fatal instead of a warning")
	names         = flag.String("names", "", "Comma-separated caller names overriding the ##source headers; the count must match the number of inputs")
	outPath       = flag.String("out", "", "Output VCF path, bgzf-compressed when it ends in .gz; parent directories are created. Defaults to stdout")
	minSupport    = flag.Int("min-support", ensemble.DefaultOpts.MinSupport, "Minimum number of supporting callers per emitted variant; 0 means a strict majority")
)

func ensembleCallerUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] caller1.vcf caller2.vcf [caller3.vcf ...]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = ensembleCallerUsage
	shutdown := grail.Init()
	defer shutdown()

	paths := flag.Args()
	if len(paths) < 2 {
		log.Fatalf("At least two input VCFs required, got %d; please check flag syntax: '%s'", len(paths), strings.Join(paths, " "))
	}
	ctx := vcontext.Background()

	readers := make([]*vcf.Reader, len(paths))
	for i, path := range paths {
		r, in, err := vcf.Open(ctx, path)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer in.Close(ctx) // nolint: errcheck
		readers[i] = r
	}

	// When validation is skipped there is nothing to infer the comparison
	// scheme from; natural order is what position-sorted genomics output
	// overwhelmingly uses.
	scheme := ensemble.Natural
	if !*skipSortCheck {
		s, ok, err := ensemble.AreOrdered(readers)
		if err != nil {
			log.Fatalf("sort check: %v", err)
		}
		if !ok {
			if *strict {
				log.Fatalf("chromosome orders disagree across inputs")
			}
			log.Error.Printf("chromosome orders disagree across inputs; alignment may mispair variants")
		} else {
			scheme = s
		}
		for i, r := range readers {
			if err := r.Reset(); err != nil {
				log.Fatalf("%s: %v", paths[i], err)
			}
		}
	}

	callerNames := ensemble.Names(readers)
	if *names != "" {
		override := strings.Split(*names, ",")
		if len(override) != len(readers) {
			log.Fatalf("-names lists %d names for %d inputs", len(override), len(readers))
		}
		callerNames = override
	}

	var (
		w        *vcf.Writer
		closeOut func() error
	)
	if *outPath == "" || *outPath == "-" {
		w = vcf.NewWriter(os.Stdout)
		closeOut = w.Flush
	} else {
		if dir := filepath.Dir(*outPath); dir != "." {
			if err := os.MkdirAll(dir, 0777); err != nil {
				log.Fatalf("%s: %v", dir, err)
			}
		}
		var err error
		if w, closeOut, err = vcf.Create(ctx, *outPath); err != nil {
			log.Fatalf("%v", err)
		}
	}
	if err := w.WriteMeta(ensemble.ConsensusMeta(callerNames)); err != nil {
		log.Fatalf("%v", err)
	}
	opts := ensemble.Opts{MinSupport: *minSupport}
	stats, err := ensemble.Call(readers, callerNames, w, scheme, opts)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := closeOut(); err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("emitted %d of %d aligned sites from %d callers", stats.Called, stats.Seen, len(readers))
}
