package sandbox

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DefaultEncoding is the text encoding assumed when callers do not specify one.
const DefaultEncoding = "utf-8"

// FileContent is the decoded text body of a file.
type FileContent struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// BinaryHint describes a file whose content did not decode as text. It is an
// expected, recoverable outcome of ReadText, not an error: the caller should
// switch to the binary download variant.
type BinaryHint struct {
	MimeType string `json:"mime_type"`
	Charset  string `json:"charset,omitempty"`
	Size     int64  `json:"size"`
}

// ReadText reads a file and attempts a UTF-8 decode of the full content.
// When the bytes are not valid UTF-8 it returns a BinaryHint instead, with a
// mime-type guess and the detected charset.
func (s *Service) ReadText(rawPath string) (*FileContent, *BinaryHint, error) {
	loc, err := s.fileLocation(rawPath)
	if err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(loc.Abs())
	if err != nil {
		return nil, nil, ioFailure(rawPath, err)
	}

	if utf8.Valid(data) {
		return &FileContent{Content: string(data), Encoding: DefaultEncoding}, nil, nil
	}

	hint := &BinaryHint{
		MimeType: mimetype.Detect(data).String(),
		Charset:  detectCharset(data),
		Size:     int64(len(data)),
	}
	return nil, hint, nil
}

// OpenFile verifies that rawPath names a regular file and returns its
// location and descriptor, for raw byte serving by the caller.
func (s *Service) OpenFile(rawPath string) (Location, Entry, error) {
	loc, err := s.fileLocation(rawPath)
	if err != nil {
		return Location{}, Entry{}, err
	}
	entry, err := describe(loc)
	if err != nil {
		return Location{}, Entry{}, err
	}
	return loc, entry, nil
}

// WriteText writes text content to a file using the named encoding
// (default utf-8), creating any missing parent directories. Existing content
// is overwritten unconditionally. Returns the number of bytes written.
func (s *Service) WriteText(rawPath, content, encoding string) (int, error) {
	loc, err := s.resolver.Resolve(rawPath)
	if err != nil {
		return 0, err
	}

	data, err := encodeText(content, encoding)
	if err != nil {
		return 0, ioFailure(rawPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(loc.Abs()), 0o755); err != nil {
		return 0, ioFailure(rawPath, err)
	}
	if err := os.WriteFile(loc.Abs(), data, 0o644); err != nil {
		return 0, ioFailure(rawPath, err)
	}
	return len(data), nil
}

// Write stores an opaque byte stream at rawPath, creating any missing parent
// directories and overwriting existing content. Returns the resulting size.
func (s *Service) Write(rawPath string, r io.Reader) (int64, error) {
	loc, err := s.resolver.Resolve(rawPath)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(loc.Abs()), 0o755); err != nil {
		return 0, ioFailure(rawPath, err)
	}

	f, err := os.OpenFile(loc.Abs(), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, ioFailure(rawPath, err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, ioFailure(rawPath, err)
	}
	return n, nil
}

// fileLocation resolves rawPath and verifies it names an existing regular file.
func (s *Service) fileLocation(rawPath string) (Location, error) {
	loc, err := s.resolver.Resolve(rawPath)
	if err != nil {
		return Location{}, err
	}
	info, err := os.Stat(loc.Abs())
	if err != nil {
		if os.IsNotExist(err) {
			return Location{}, notFound(rawPath)
		}
		return Location{}, notAccessible(rawPath, err)
	}
	if info.IsDir() {
		return Location{}, notAFile(rawPath)
	}
	return loc, nil
}

// encodeText converts content to bytes in the named encoding. UTF-8 is the
// fast path; other labels are looked up in the WHATWG encoding index.
func encodeText(content, label string) ([]byte, error) {
	switch strings.ToLower(label) {
	case "", "utf-8", "utf8":
		return []byte(content), nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, err
	}
	out, _, err := transform.String(enc.NewEncoder(), content)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// detectCharset returns the best-guess charset for data, defaulting to utf-8
// when detection is inconclusive.
func detectCharset(data []byte) string {
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil {
		return DefaultEncoding
	}
	return strings.ToLower(result.Charset)
}
