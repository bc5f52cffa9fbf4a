package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentgate/applicant-registry/internal/core/domain"
	"github.com/talentgate/applicant-registry/internal/core/ports"
)

// IntakeService implements the applicant submission pipeline: field
// validation, file acceptance, uniqueness enforcement, and commit, with
// compensating blob cleanup on every failure path.
type IntakeService struct {
	repo   ports.ApplicantRepository
	blobs  ports.BlobStore
	logger zerolog.Logger
}

func NewIntakeService(repo ports.ApplicantRepository, blobs ports.BlobStore, logger zerolog.Logger) *IntakeService {
	return &IntakeService{repo: repo, blobs: blobs, logger: logger}
}

// Submit runs the intake pipeline. On success the returned record
// references both stored blobs; on any error no record is committed and
// every blob stored during this call has been deleted on a best-effort
// basis: a failed delete is logged, never propagated, so the caller
// always sees the original error.
func (s *IntakeService) Submit(ctx context.Context, input ports.SubmitInput) (*domain.Applicant, error) {
	if missing := missingFields(input); len(missing) > 0 {
		return nil, domain.NewValidationError(missing...)
	}

	photoRef, err := s.blobs.Store(ctx, domain.CategoryPhoto, *input.Photo)
	if err != nil {
		return nil, fmt.Errorf("store photo: %w", err)
	}

	cvRef, err := s.blobs.Store(ctx, domain.CategoryCV, *input.CV)
	if err != nil {
		s.cleanup(ctx, photoRef, "")
		return nil, fmt.Errorf("store cv: %w", err)
	}

	// Advisory fast path; the unique index on passport_number remains
	// the final arbiter for concurrent submissions.
	if _, err := s.repo.FindByPassportNumber(ctx, input.PassportNumber); err == nil {
		s.cleanup(ctx, photoRef, cvRef)
		return nil, domain.ErrDuplicatePassport
	} else if !errors.Is(err, domain.ErrApplicantNotFound) {
		s.cleanup(ctx, photoRef, cvRef)
		return nil, fmt.Errorf("duplicate check: %w", err)
	}

	now := time.Now().UTC()
	applicant := &domain.Applicant{
		Name:           strings.TrimSpace(input.Name),
		PassportNumber: strings.TrimSpace(input.PassportNumber),
		DateOfBirth:    input.DateOfBirth,
		Designation:    strings.TrimSpace(input.Designation),
		PPType:         strings.TrimSpace(input.PPType),
		MobileNumber:   strings.TrimSpace(input.MobileNumber),
		Village:        strings.TrimSpace(input.Village),
		Remark:         strings.TrimSpace(input.Remark),
		PhotoRef:       photoRef,
		CVRef:          cvRef,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Insert(ctx, applicant)
	if err != nil {
		// A duplicate-key rejection here means we lost the race to a
		// concurrent submission; same cleanup as the pre-check path.
		s.cleanup(ctx, photoRef, cvRef)
		if errors.Is(err, domain.ErrDuplicatePassport) {
			return nil, domain.ErrDuplicatePassport
		}
		return nil, fmt.Errorf("insert applicant: %w", err)
	}

	s.logger.Info().
		Str("id", created.ID).
		Str("passport_number", created.PassportNumber).
		Msg("applicant registered")

	return created, nil
}

// cleanup deletes the blobs stored during a failed submission. Handles
// may be empty when the corresponding store never happened.
func (s *IntakeService) cleanup(ctx context.Context, photoRef, cvRef string) {
	if photoRef != "" {
		if err := s.blobs.Delete(ctx, domain.CategoryPhoto, photoRef); err != nil {
			s.logger.Warn().Err(err).Str("handle", photoRef).Msg("failed to delete orphaned photo")
		}
	}
	if cvRef != "" {
		if err := s.blobs.Delete(ctx, domain.CategoryCV, cvRef); err != nil {
			s.logger.Warn().Err(err).Str("handle", cvRef).Msg("failed to delete orphaned cv")
		}
	}
}

// missingFields returns the names of required fields that are absent or
// blank, in submission-form order. File presence is part of the same
// check so nothing is persisted before the full field set is known good.
func missingFields(in ports.SubmitInput) []string {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"name", in.Name},
		{"passportNumber", in.PassportNumber},
		{"designation", in.Designation},
		{"ppType", in.PPType},
		{"mobileNumber", in.MobileNumber},
		{"village", in.Village},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if in.DateOfBirth.IsZero() {
		missing = append(missing, "dateOfBirth")
	}
	if in.Photo == nil {
		missing = append(missing, "photo")
	}
	if in.CV == nil {
		missing = append(missing, "cv")
	}
	return missing
}
