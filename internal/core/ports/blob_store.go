package ports

import (
	"context"
	"io"

	"github.com/talentgate/applicant-registry/internal/core/domain"
)

// BlobUpload carries one uploaded file into the blob store. Size is the
// declared length from the multipart part; the store still enforces its
// own ceiling while copying.
type BlobUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// BlobStore persists uploaded binaries under a category and hands back a
// stable reference name.
type BlobStore interface {
	// Store validates the declared MIME type against the category
	// allow-list and the size against the configured ceiling, then
	// persists the content. The returned handle is the generated
	// filename the blob can later be retrieved or deleted by.
	Store(ctx context.Context, category domain.BlobCategory, upload BlobUpload) (string, error)
	// Retrieve opens the blob for reading. Returns domain.ErrBlobNotFound
	// when no such handle exists.
	Retrieve(ctx context.Context, category domain.BlobCategory, handle string) (io.ReadCloser, error)
	// Delete removes the blob. Idempotent: deleting an absent handle is
	// not an error. Used only for rollback after a failed submission.
	Delete(ctx context.Context, category domain.BlobCategory, handle string) error
}
