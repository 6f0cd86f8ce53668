// Package filestore owns the flat download directory that produced media lands in
// and that is served read-only under /files/.
package filestore

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/renameio/v2"
)

// RoutePrefix is where the store is mounted on the HTTP boundary.
const RoutePrefix = "/files"

const maxStemBytes = 200

type Store struct {
	dir     string
	baseURL string
	locks   *keyedMutex
}

// New prepares dir (creating it if needed) and returns a Store whose
// download links are rooted at publicBaseURL.
func New(dir, publicBaseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create downloads dir: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve downloads dir: %w", err)
	}

	return &Store{
		dir:     abs,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
		locks:   newKeyedMutex(),
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Sanitize turns a media title into a safe file stem: path separators become
// underscores, control characters are dropped and the result never escapes the
// store directory.
func Sanitize(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r == '/' || r == '\\':
			b.WriteRune('_')
		case r == utf8.RuneError, unicode.IsControl(r):
			continue
		default:
			b.WriteRune(r)
		}
	}

	stem := strings.TrimSpace(b.String())
	for len(stem) > maxStemBytes {
		_, size := utf8.DecodeLastRuneInString(stem)
		stem = stem[:len(stem)-size]
	}

	if stem == "" || stem == "." || stem == ".." {
		return "untitled"
	}
	return stem
}

// FileName is the derived filename for a title and extension.
func FileName(title, ext string) string {
	return Sanitize(title) + "." + ext
}

// Stem strips the extension from a derived filename.
func Stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Path returns the absolute location of name inside the store.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// Exists reports whether name is present as a regular file.
func (s *Store) Exists(name string) bool {
	info, err := os.Stat(s.Path(name))
	return err == nil && info.Mode().IsRegular()
}

// URL is the public retrieval link for name.
func (s *Store) URL(name string) string {
	return s.baseURL + RoutePrefix + "/" + url.PathEscape(filepath.Base(name))
}

// WriteFrom atomically replaces name with the contents of r. Readers of the
// static mount see either the old file or the complete new one.
func (s *Store) WriteFrom(name string, r io.Reader) (int64, error) {
	pendingFile, err := renameio.NewPendingFile(s.Path(name), renameio.WithPermissions(0o644))
	if err != nil {
		return 0, fmt.Errorf("create pending file: %w", err)
	}
	defer pendingFile.Cleanup()

	n, err := io.Copy(pendingFile, r)
	if err != nil {
		return n, fmt.Errorf("write %s: %w", name, err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return n, fmt.Errorf("atomically replace %s: %w", name, err)
	}
	return n, nil
}

// Lock serializes producers of the same derived filename. The returned
// function releases the lock.
func (s *Store) Lock(name string) func() {
	return s.locks.lock(filepath.Base(name))
}
