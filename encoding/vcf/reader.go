package vcf

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotSeekable is returned by Reset when the underlying source cannot be
// rewound (e.g. a pipe).
var ErrNotSeekable = errors.New("vcf: underlying source is not seekable")

var errEOF = errors.New("eof")

// Meta holds the parsed meta-information section of a VCF file: the raw
// "##" lines in order, plus convenience accessors for common fields.
type Meta struct {
	// FileFormat is the value of the ##fileformat line, e.g. "VCFv4.2".
	FileFormat string
	// Lines are the raw meta lines (leading "##" included), in file order.
	Lines []string
	// Samples are the sample column names from the #CHROM header line, if
	// any.
	Samples []string

	fields map[string]string
}

// NewMeta builds a Meta from raw "##key=value" lines. It is used to
// construct headers for output files.
func NewMeta(lines []string) *Meta {
	m := &Meta{fields: make(map[string]string)}
	for _, line := range lines {
		m.add(line)
	}
	return m
}

func (m *Meta) add(line string) {
	m.Lines = append(m.Lines, line)
	body := strings.TrimPrefix(line, "##")
	kv := strings.SplitN(body, "=", 2)
	if len(kv) != 2 {
		return
	}
	if _, ok := m.fields[kv[0]]; !ok { // first occurrence wins
		m.fields[kv[0]] = kv[1]
	}
	if kv[0] == "fileformat" {
		m.FileFormat = kv[1]
	}
}

// Get returns the value of the first "##key=value" meta line for key, or ""
// if the file declares none.
func (m *Meta) Get(key string) string {
	return m.fields[key]
}

// Source returns the declared ##source value, i.e. the name of the program
// that produced the file. Empty if undeclared.
func (m *Meta) Source() string {
	return m.Get("source")
}

// Reader reads VCF records from an io.Reader. The meta-information section
// is parsed eagerly by NewReader; records are then read one at a time with
// Scan. Readers are not threadsafe.
type Reader struct {
	br *bufio.Reader
	rs io.ReadSeeker // nil when the source cannot seek

	meta        *Meta
	headerLines int   // line count of the header section
	dataOff     int64 // source offset of the first data record

	rewind func() error // overrides seek-based Reset (compressed sources)

	line int
	rec  *Record
	err  error
}

// NewReader constructs a Reader and parses the meta-information section up
// to and including the #CHROM column header. The next Scan yields the first
// data record. If r is an io.ReadSeeker it must be positioned at the start
// of the VCF data.
func NewReader(r io.Reader) (*Reader, error) {
	rd := &Reader{br: bufio.NewReader(r)}
	if rs, ok := r.(io.ReadSeeker); ok {
		rd.rs = rs
		off, err := rs.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, errors.Wrap(err, "vcf")
		}
		rd.dataOff = off
	}
	if err := rd.readMeta(); err != nil {
		return nil, err
	}
	return rd, nil
}

// readMeta consumes the header section. Every header line starts with '#',
// so the first unconsumed byte decides when to stop without touching the
// first data record.
func (r *Reader) readMeta() error {
	m := &Meta{fields: make(map[string]string)}
	sawColumns := false
	for {
		b, err := r.br.Peek(1)
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "vcf: reading header")
		}
		if b[0] != '#' {
			break
		}
		raw, err := r.br.ReadString('\n')
		if err != nil && err != io.EOF {
			return errors.Wrap(err, "vcf: reading header")
		}
		r.dataOff += int64(len(raw))
		r.line++
		line := strings.TrimRight(raw, "\r\n")
		if strings.HasPrefix(line, "##") {
			m.add(line)
			continue
		}
		cols := strings.Split(line, "\t")
		if cols[0] != "#CHROM" || len(cols) < 8 {
			return errors.Errorf("vcf: line %d: malformed column header %q", r.line, line)
		}
		if len(cols) > 9 {
			m.Samples = cols[9:]
		}
		sawColumns = true
	}
	if !sawColumns {
		return errors.New("vcf: missing #CHROM column header line")
	}
	r.meta = m
	r.headerLines = r.line
	return nil
}

// Meta returns the parsed meta-information section. The returned value is
// shared with the Reader and must not be modified.
func (r *Reader) Meta() *Meta {
	return r.meta
}

// Scan reads the next record, returning a boolean indicating whether the
// read succeeded. Once Scan returns false, it never returns true again.
// Blank lines are skipped. Upon completion, the caller should check Err to
// distinguish end-of-stream from a read or parse error.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for {
		raw, err := r.br.ReadString('\n')
		if len(raw) == 0 {
			if err == io.EOF {
				r.err = errEOF
			} else {
				r.err = err
			}
			return false
		}
		if err != nil && err != io.EOF {
			r.err = err
			return false
		}
		r.line++
		line := strings.TrimRight(raw, "\r\n")
		if line == "" {
			continue
		}
		rec, perr := parseRecord(line)
		if perr != nil {
			r.err = errors.Wrapf(perr, "vcf: line %d", r.line)
			return false
		}
		r.rec = rec
		return true
	}
}

// Record returns the record read by the last successful Scan. The record is
// freshly allocated and remains valid after subsequent Scans.
func (r *Reader) Record() *Record {
	return r.rec
}

// Err returns the first error encountered by Scan, if any. End of stream is
// not an error.
func (r *Reader) Err() error {
	if r.err == errEOF {
		return nil
	}
	return r.err
}

// Reset rewinds the data cursor so that the next Scan yields the first data
// record again. The already-parsed meta-information is preserved and not
// re-parsed. Reset fails with ErrNotSeekable when the underlying source
// cannot seek.
func (r *Reader) Reset() error {
	switch {
	case r.rewind != nil:
		if err := r.rewind(); err != nil {
			return err
		}
	case r.rs != nil:
		if _, err := r.rs.Seek(r.dataOff, io.SeekStart); err != nil {
			return errors.Wrap(err, "vcf: reset")
		}
		r.br.Reset(r.rs)
	default:
		return ErrNotSeekable
	}
	r.rec = nil
	r.err = nil
	r.line = r.headerLines
	return nil
}

// restart points the Reader at a freshly rewound copy of its source and
// skips the header lines already parsed by NewReader. Used by Open to reset
// compressed streams, which cannot seek directly to the first record.
func (r *Reader) restart(src io.Reader) error {
	r.br.Reset(src)
	for i := 0; i < r.headerLines; i++ {
		if _, err := r.br.ReadString('\n'); err != nil {
			return errors.Wrap(err, "vcf: reset")
		}
	}
	return nil
}

func parseRecord(line string) (*Record, error) {
	cols := strings.Split(line, "\t")
	if len(cols) < 8 {
		return nil, errors.Errorf("expected at least 8 columns, got %d", len(cols))
	}
	pos, err := strconv.Atoi(cols[1])
	if err != nil {
		return nil, errors.Errorf("malformed POS %q", cols[1])
	}
	rec := &Record{
		Chrom:  cols[0],
		Pos:    pos,
		ID:     cols[2],
		Ref:    cols[3],
		Qual:   cols[5],
		Filter: cols[6],
		Info:   cols[7],
	}
	if cols[4] != "." && cols[4] != "" {
		rec.Alt = strings.Split(cols[4], ",")
	}
	if len(cols) > 8 {
		rec.Format = cols[8]
		rec.Samples = cols[9:]
	}
	return rec, nil
}
