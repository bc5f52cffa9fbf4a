package ports

import (
	"context"
	"io"

	"github.com/talentgate/applicant-registry/internal/core/domain"
)

// CVDownload is the result of a CV retrieval: the raw byte stream plus
// the filename the client should save it as ("<name>-CV<ext>").
type CVDownload struct {
	Content  io.ReadCloser
	Filename string
}

// QueryService defines the read-side operations over applicant records.
type QueryService interface {
	// Search returns all records matching query (case-insensitive
	// substring on name or mobile number). An empty result is not an
	// error; an empty or whitespace-only query is a ValidationError.
	Search(ctx context.Context, query string) ([]*domain.Applicant, error)
	GetByID(ctx context.Context, id string) (*domain.Applicant, error)
	// GetCV streams the record's CV. The caller owns the returned
	// stream and must close it.
	GetCV(ctx context.Context, id string) (*CVDownload, error)
}
