package ports

import (
	"context"

	"github.com/talentgate/applicant-registry/internal/core/domain"
)

// ApplicantRepository defines persistence operations for applicant records.
type ApplicantRepository interface {
	// Insert commits a new record. The passport_number unique index is
	// the final arbiter for concurrent duplicates: a duplicate-key
	// rejection from the store is returned as domain.ErrDuplicatePassport.
	Insert(ctx context.Context, a *domain.Applicant) (*domain.Applicant, error)
	// FindByPassportNumber is the advisory fast-path duplicate check.
	// Returns domain.ErrApplicantNotFound when no record matches.
	FindByPassportNumber(ctx context.Context, passportNumber string) (*domain.Applicant, error)
	// FindByID retrieves a record by its store-assigned identifier.
	// A malformed identifier is reported as domain.ErrApplicantNotFound.
	FindByID(ctx context.Context, id string) (*domain.Applicant, error)
	// Search returns all records whose name or mobile number contains
	// query as a case-insensitive substring.
	Search(ctx context.Context, query string) ([]*domain.Applicant, error)
}
