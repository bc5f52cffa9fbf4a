// Package fs implements the blob store on the local filesystem: one
// subdirectory per category, generated collision-resistant filenames,
// MIME allow-lists, and a hard size ceiling.
package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talentgate/applicant-registry/internal/core/domain"
	"github.com/talentgate/applicant-registry/internal/core/ports"
)

const DefaultMaxBytes = 10 << 20 // 10 MiB

// categories is the declarative table driving storage: subdirectory and
// MIME allow-list per blob category.
var categories = map[domain.BlobCategory]struct {
	dir          string
	allowedMimes map[string]bool
}{
	domain.CategoryPhoto: {
		dir: "photos",
		allowedMimes: map[string]bool{
			"image/jpeg": true,
			"image/jpg":  true,
			"image/png":  true,
		},
	},
	domain.CategoryCV: {
		dir: "cvs",
		allowedMimes: map[string]bool{
			"application/pdf":    true,
			"application/msword": true,
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
		},
	},
}

// BlobStore stores blobs under root/<category-dir>/<generated-name>.
type BlobStore struct {
	root     string
	maxBytes int64
}

// NewBlobStore creates the category directories under root if needed.
func NewBlobStore(root string, maxBytes int64) (*BlobStore, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	for _, cat := range categories {
		if err := os.MkdirAll(filepath.Join(root, cat.dir), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &BlobStore{root: root, maxBytes: maxBytes}, nil
}

// Store validates and persists one upload, returning the generated
// filename it is addressable by. The partially written file is removed
// when the content turns out to exceed the ceiling mid-copy.
func (s *BlobStore) Store(ctx context.Context, category domain.BlobCategory, upload ports.BlobUpload) (string, error) {
	cat, ok := categories[category]
	if !ok {
		return "", fmt.Errorf("unknown blob category %q", category)
	}

	mime := normalizeMime(upload.ContentType)
	if !cat.allowedMimes[mime] {
		return "", fmt.Errorf("%w: %s not allowed for %s", domain.ErrUnsupportedMediaType, mime, category)
	}
	if upload.Size > s.maxBytes {
		return "", domain.ErrPayloadTooLarge
	}

	handle := generateHandle(category, upload.Filename)
	path := filepath.Join(s.root, cat.dir, handle)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}

	// Copy one byte past the ceiling so an undeclared oversize body is
	// still caught.
	written, err := io.Copy(f, io.LimitReader(upload.Content, s.maxBytes+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write blob: %w", err)
	}
	if written > s.maxBytes {
		_ = os.Remove(path)
		return "", domain.ErrPayloadTooLarge
	}

	return handle, nil
}

// Retrieve opens a stored blob for reading.
func (s *BlobStore) Retrieve(ctx context.Context, category domain.BlobCategory, handle string) (io.ReadCloser, error) {
	path, err := s.blobPath(category, handle)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrBlobNotFound
		}
		return nil, fmt.Errorf("open blob: %w", err)
	}
	return f, nil
}

// Delete removes a stored blob. Deleting an absent handle is not an error.
func (s *BlobStore) Delete(ctx context.Context, category domain.BlobCategory, handle string) error {
	path, err := s.blobPath(category, handle)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

// Dir returns the absolute directory a category is stored under, for
// static route registration.
func (s *BlobStore) Dir(category domain.BlobCategory) string {
	return filepath.Join(s.root, categories[category].dir)
}

// blobPath resolves a handle to its on-disk path, rejecting handles that
// would escape the category directory.
func (s *BlobStore) blobPath(category domain.BlobCategory, handle string) (string, error) {
	cat, ok := categories[category]
	if !ok {
		return "", fmt.Errorf("unknown blob category %q", category)
	}
	if handle == "" || handle != filepath.Base(handle) {
		return "", domain.ErrBlobNotFound
	}
	return filepath.Join(s.root, cat.dir, handle), nil
}

// generateHandle builds "<category>-<unix-millis>-<random><ext>": a
// time-based prefix plus random suffix keeps names unique under
// concurrent submissions.
func generateHandle(category domain.BlobCategory, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s-%d-%s%s", category, time.Now().UnixMilli(), uuid.NewString(), ext)
}

// normalizeMime strips any parameters (e.g. "; charset=...") from a
// declared content type.
func normalizeMime(contentType string) string {
	mime, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mime))
}
