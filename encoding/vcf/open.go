package vcf

import (
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Open opens the VCF file at path and parses its header. Paths ending in
// ".gz" are decompressed transparently; gzip (including bgzf) framing is
// accepted. The returned file must be closed by the caller after the Reader
// is no longer needed.
//
// Compressed sources cannot seek to the first record directly, so Reset on
// such a Reader rewinds the underlying file and restarts decompression,
// skipping the already-parsed header lines.
func Open(ctx context.Context, path string) (*Reader, file.File, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, nil, errors.Wrap(err, path)
	}
	src := in.Reader(ctx)
	if !strings.HasSuffix(path, ".gz") {
		r, err := NewReader(src)
		if err != nil {
			in.Close(ctx) // nolint: errcheck
			return nil, nil, errors.Wrap(err, path)
		}
		return r, in, nil
	}
	gz, err := gzip.NewReader(src)
	if err != nil {
		in.Close(ctx) // nolint: errcheck
		return nil, nil, errors.Wrap(err, path)
	}
	r, err := NewReader(gz)
	if err != nil {
		in.Close(ctx) // nolint: errcheck
		return nil, nil, errors.Wrap(err, path)
	}
	r.rewind = func() error {
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return errors.Wrap(err, "vcf: reset")
		}
		if err := gz.Reset(src); err != nil {
			return errors.Wrap(err, "vcf: reset")
		}
		return r.restart(gz)
	}
	return r, in, nil
}
