package ports

import (
	"context"
	"time"

	"github.com/talentgate/applicant-registry/internal/core/domain"
)

// SubmitInput carries all data for one applicant submission. Photo and CV
// are nil when the corresponding multipart field was absent.
type SubmitInput struct {
	Name           string
	PassportNumber string
	DateOfBirth    time.Time
	Designation    string
	PPType         string
	MobileNumber   string
	Village        string
	Remark         string

	Photo *BlobUpload
	CV    *BlobUpload
}

// IntakeService validates a submission, stores its files, enforces
// passport-number uniqueness, and commits the record. On any failure it
// deletes every blob it stored for the submission before returning.
type IntakeService interface {
	Submit(ctx context.Context, input SubmitInput) (*domain.Applicant, error)
}
