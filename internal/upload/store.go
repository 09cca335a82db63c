// Package upload stores user-submitted chat images on local disk.
package upload

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Predefined upload errors.
var (
	ErrNotAnImage = errors.New("file is not a supported image type")
	ErrTooLarge   = errors.New("file exceeds the upload size limit")
)

// extensions maps detected content types to file extensions.
var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Store writes uploaded images to a directory and maps them to public URLs.
type Store struct {
	dir      string
	maxBytes int64
}

// NewStore creates an upload store rooted at dir, creating it if needed.
func NewStore(dir string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &Store{dir: dir, maxBytes: maxBytes}, nil
}

// Dir returns the directory uploads are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Save stores one uploaded image and returns its public URL path. The
// content type is sniffed from the file's leading bytes; the client-supplied
// filename and content type are not trusted.
func (s *Store) Save(r io.Reader) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	head = head[:n]

	ext, ok := extensions[http.DetectContentType(head)]
	if !ok {
		return "", ErrNotAnImage
	}

	name := uuid.New().String() + ext
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer f.Close()

	// The head was already consumed from the reader; write it first, then
	// copy the remainder up to the size limit.
	if _, err := f.Write(head); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}

	written, err := io.Copy(f, io.LimitReader(r, s.maxBytes))
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("writing upload: %w", err)
	}
	if int64(len(head))+written > s.maxBytes {
		_ = os.Remove(path)
		return "", ErrTooLarge
	}

	return "/uploads/" + name, nil
}
