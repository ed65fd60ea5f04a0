// Package reader parses line-oriented chat transcripts into classified
// core.Events. Plain and gzip-compressed files are supported; lines that are
// not valid UTF-8 are decoded as Windows-1252.
package reader

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"github.com/sonnes/irclog/core"
	"golang.org/x/text/encoding/charmap"
)

// DefaultMaxLineSize bounds a single transcript line (1 MB). Pasted blobs can
// exceed the default 64 KB bufio.Scanner buffer.
const DefaultMaxLineSize = 1 << 20

// Config controls how raw lines are read.
type Config struct {
	// Dircproxy strips the leading '+' or '-' dircproxy writes after the
	// timestamp of every message.
	Dircproxy bool
	// MaxLineSize overrides DefaultMaxLineSize when positive.
	MaxLineSize int
}

// Reader reads transcripts into events.
type Reader struct {
	cfg Config
}

// New creates a Reader from the given config.
func New(cfg Config) *Reader {
	return &Reader{cfg: cfg}
}

// ReadFile opens and parses a transcript. Files ending in .gz are
// decompressed on the fly.
func (r *Reader) ReadFile(path string) ([]core.Event, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	events, err := r.Read(rc)
	if err != nil {
		return nil, &core.FileError{Op: "read", Path: path, Err: err}
	}
	return events, nil
}

// Read parses every non-blank line of src.
func (r *Reader) Read(src io.Reader) ([]core.Event, error) {
	var events []core.Event
	err := r.scan(src, func(line string) {
		events = append(events, r.classify(line))
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Transcode copies src to dst decoded to UTF-8 line by line (see Decode).
// Every line is kept as written, blank lines and terminators included.
func Transcode(dst io.Writer, src io.Reader) error {
	br := bufio.NewReader(src)
	bw := bufio.NewWriter(dst)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			body := bytes.TrimRight(line, "\r\n")
			if _, werr := bw.WriteString(Decode(body)); werr != nil {
				return werr
			}
			if _, werr := bw.Write(line[len(body):]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return bw.Flush()
		}
		if err != nil {
			return fmt.Errorf("transcode: %w", err)
		}
	}
}

func (r *Reader) scan(src io.Reader, fn func(line string)) error {
	maxLine := r.cfg.MaxLineSize
	if maxLine <= 0 {
		maxLine = DefaultMaxLineSize
	}

	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, min(64*1024, maxLine)), maxLine)
	for sc.Scan() {
		raw := bytes.TrimRight(sc.Bytes(), "\r\n")
		if len(raw) == 0 {
			continue
		}
		fn(Decode(raw))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("scan transcript: %w", err)
	}
	return nil
}

func (r *Reader) classify(line string) core.Event {
	t, rest := splitTime(line)
	if r.cfg.Dircproxy && rest != "" && (rest[0] == '+' || rest[0] == '-') {
		rest = rest[1:]
	}
	return classify(t, rest)
}

// Decode converts one raw line to a string: UTF-8 when valid, Windows-1252
// otherwise (the usual encoding of older IRC clients).
func Decode(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	s, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "�")
	}
	return string(s)
}

// Open opens a transcript for reading, transparently decompressing .gz files.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &core.FileError{Op: "open", Path: path, Err: err}
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, &core.FileError{Op: "decompress", Path: path, Err: err}
	}
	return &gzipFile{Reader: zr, f: f}, nil
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	zerr := g.Reader.Close()
	if err := g.f.Close(); err != nil {
		return err
	}
	return zerr
}
