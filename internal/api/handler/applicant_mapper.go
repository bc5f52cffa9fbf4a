package handler

import (
	"time"

	"github.com/talentgate/applicant-registry/internal/core/domain"
	"github.com/talentgate/applicant-registry/internal/core/ports"
)

// Public path prefixes the stored files are exposed under (read-only).
const (
	photoURLPrefix = "/uploads/photos/"
	cvURLPrefix    = "/uploads/cvs/"
)

// --- Request → Service input ---

func toSubmitInput(req submitFieldsRequest, dob time.Time, photo, cv *ports.BlobUpload) ports.SubmitInput {
	return ports.SubmitInput{
		Name:           req.Name,
		PassportNumber: req.PassportNumber,
		DateOfBirth:    dob,
		Designation:    req.Designation,
		PPType:         req.PPType,
		MobileNumber:   req.MobileNumber,
		Village:        req.Village,
		Remark:         req.Remark,
		Photo:          photo,
		CV:             cv,
	}
}

// --- Domain record → HTTP response ---

func toApplicantResponse(a *domain.Applicant) applicantResponse {
	return applicantResponse{
		ID:             a.ID,
		Name:           a.Name,
		PassportNumber: a.PassportNumber,
		DateOfBirth:    a.DateOfBirth.UTC().Format(dateLayout),
		Designation:    a.Designation,
		PPType:         a.PPType,
		MobileNumber:   a.MobileNumber,
		Village:        a.Village,
		Remark:         a.Remark,
		PhotoURL:       photoURLPrefix + a.PhotoRef,
		CVURL:          cvURLPrefix + a.CVRef,
		CreatedAt:      a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toApplicantListResponse(records []*domain.Applicant) []applicantResponse {
	out := make([]applicantResponse, len(records))
	for i, a := range records {
		out[i] = toApplicantResponse(a)
	}
	return out
}
