package storage

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store saves uploaded property images under a single directory and serves
// them back through a fixed URL prefix.
type Store struct {
	dir       string
	urlPrefix string
}

// NewStore ensures the upload directory exists and returns a store over it.
func NewStore(dir, urlPrefix string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

// Save writes one multipart file to disk under a collision-resistant name
// and returns the public URL path for it.
func (s *Store) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := s.filename(file.Filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return s.urlPrefix + "/" + name, nil
}

// filename builds "<unix-millis>-<random><ext>" so concurrent uploads of the
// same original name never collide.
func (s *Store) filename(original string) string {
	ext := filepath.Ext(original)
	return fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.Int63n(1_000_000_000), ext)
}

// Remove deletes the file behind a stored image URL. A file that is already
// gone is not an error; anything else is logged and swallowed so callers
// never fail a request over stale disk state.
func (s *Store) Remove(imageURL string) {
	name := filepath.Base(strings.TrimPrefix(imageURL, s.urlPrefix+"/"))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		log.Printf("Storage: Failed to remove %s: %v", name, err)
	}
}

// Dir returns the directory uploads are written to.
func (s *Store) Dir() string {
	return s.dir
}

// URLPrefix returns the public path prefix under which uploads are served.
func (s *Store) URLPrefix() string {
	return s.urlPrefix
}
