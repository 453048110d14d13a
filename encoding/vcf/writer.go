package vcf

import (
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/hts/bgzf"
	"github.com/pkg/errors"
)

var columnHeader = []string{"#CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO"}

// Writer writes a VCF header and records to an underlying writer. Writes
// after an error are no-ops; the first error is sticky and returned by every
// subsequent call and by Flush.
type Writer struct {
	w   *tsv.Writer
	err error
}

// NewWriter constructs a Writer that emits VCF text to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: tsv.NewWriter(w)}
}

func (w *Writer) setErr(err error) {
	if err != nil && w.err == nil {
		w.err = err
	}
}

// WriteMeta writes the meta-information lines of m followed by the #CHROM
// column header. It must be called once, before the first Write.
func (w *Writer) WriteMeta(m *Meta) error {
	if w.err != nil {
		return w.err
	}
	for _, line := range m.Lines {
		w.w.WriteString(line)
		w.setErr(w.w.EndLine())
	}
	for _, col := range columnHeader {
		w.w.WriteString(col)
	}
	if len(m.Samples) > 0 {
		w.w.WriteString("FORMAT")
		for _, s := range m.Samples {
			w.w.WriteString(s)
		}
	}
	w.setErr(w.w.EndLine())
	return w.err
}

// Write writes one record as a VCF data line. Empty ID, QUAL and FILTER
// columns are written as ".".
func (w *Writer) Write(r *Record) error {
	if w.err != nil {
		return w.err
	}
	w.w.WriteString(r.Chrom)
	w.w.WriteInt64(int64(r.Pos))
	w.w.WriteString(orDot(r.ID))
	w.w.WriteString(r.Ref)
	w.w.WriteString(r.AltString())
	w.w.WriteString(orDot(r.Qual))
	w.w.WriteString(orDot(r.Filter))
	w.w.WriteString(orDot(r.Info))
	if r.Format != "" {
		w.w.WriteString(r.Format)
		for _, s := range r.Samples {
			w.w.WriteString(s)
		}
	}
	w.setErr(w.w.EndLine())
	return w.err
}

// Flush flushes buffered output to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}

func orDot(s string) string {
	if s == "" {
		return "."
	}
	return s
}

// Create creates a Writer on a new file at path, block-gzip (bgzf)
// compressing the output when the path ends in ".gz". The returned close
// function flushes and closes everything and must be called exactly once.
func Create(ctx context.Context, path string) (*Writer, func() error, error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return nil, nil, errors.Wrap(err, path)
	}
	if !strings.HasSuffix(path, ".gz") {
		w := NewWriter(out.Writer(ctx))
		closer := func() error {
			err := w.Flush()
			if cerr := out.Close(ctx); err == nil {
				err = cerr
			}
			return err
		}
		return w, closer, nil
	}
	bw := bgzf.NewWriter(out.Writer(ctx), 1)
	w := NewWriter(bw)
	closer := func() error {
		err := w.Flush()
		if cerr := bw.Close(); err == nil {
			err = cerr
		}
		if cerr := out.Close(ctx); err == nil {
			err = cerr
		}
		return err
	}
	return w, closer, nil
}
