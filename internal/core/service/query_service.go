package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/talentgate/applicant-registry/internal/core/domain"
	"github.com/talentgate/applicant-registry/internal/core/ports"
)

// QueryService implements the read side: search, detail, CV download.
type QueryService struct {
	repo   ports.ApplicantRepository
	blobs  ports.BlobStore
	logger zerolog.Logger
}

func NewQueryService(repo ports.ApplicantRepository, blobs ports.BlobStore, logger zerolog.Logger) *QueryService {
	return &QueryService{repo: repo, blobs: blobs, logger: logger}
}

// Search returns every record whose name or mobile number contains query
// as a case-insensitive substring. No matches yields an empty slice.
func (s *QueryService) Search(ctx context.Context, query string) ([]*domain.Applicant, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.NewValidationError("q")
	}

	results, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search applicants: %w", err)
	}
	if results == nil {
		results = []*domain.Applicant{}
	}
	return results, nil
}

func (s *QueryService) GetByID(ctx context.Context, id string) (*domain.Applicant, error) {
	return s.repo.FindByID(ctx, id)
}

// GetCV opens the record's CV blob and derives the download filename
// "<name>-CV<ext>" from the applicant name and the stored extension.
func (s *QueryService) GetCV(ctx context.Context, id string) (*ports.CVDownload, error) {
	applicant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	content, err := s.blobs.Retrieve(ctx, domain.CategoryCV, applicant.CVRef)
	if err != nil {
		s.logger.Warn().Str("id", id).Str("handle", applicant.CVRef).Msg("cv blob missing for committed record")
		return nil, err
	}

	return &ports.CVDownload{
		Content:  content,
		Filename: applicant.Name + "-CV" + filepath.Ext(applicant.CVRef),
	}, nil
}
