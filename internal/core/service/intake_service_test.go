package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentgate/applicant-registry/internal/core/domain"
	"github.com/talentgate/applicant-registry/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubApplicantRepo struct {
	byPassport map[string]*domain.Applicant
	insertErr  error // if set, Insert returns this error
	nextID     int
}

func newStubApplicantRepo() *stubApplicantRepo {
	return &stubApplicantRepo{byPassport: make(map[string]*domain.Applicant)}
}

func (r *stubApplicantRepo) Insert(_ context.Context, a *domain.Applicant) (*domain.Applicant, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	// Mirrors the unique-index arbiter in the real Mongo repo.
	if _, exists := r.byPassport[a.PassportNumber]; exists {
		return nil, domain.ErrDuplicatePassport
	}
	r.nextID++
	clone := *a
	clone.ID = fmt.Sprintf("id-%d", r.nextID)
	r.byPassport[a.PassportNumber] = &clone
	return &clone, nil
}

func (r *stubApplicantRepo) FindByPassportNumber(_ context.Context, passportNumber string) (*domain.Applicant, error) {
	a, ok := r.byPassport[passportNumber]
	if !ok {
		return nil, domain.ErrApplicantNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubApplicantRepo) FindByID(_ context.Context, id string) (*domain.Applicant, error) {
	for _, a := range r.byPassport {
		if a.ID == id {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrApplicantNotFound
}

func (r *stubApplicantRepo) Search(_ context.Context, query string) ([]*domain.Applicant, error) {
	q := strings.ToLower(query)
	var out []*domain.Applicant
	for _, a := range r.byPassport {
		if strings.Contains(strings.ToLower(a.Name), q) || strings.Contains(strings.ToLower(a.MobileNumber), q) {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

// stubBlobStore keeps blob content in memory and records every handle it
// ever issued so tests can verify rollback deleted them all.
type stubBlobStore struct {
	blobs      map[string][]byte // key: category/handle
	stored     []string          // every handle ever issued, in order
	rejectMime bool
	rejectSize bool
	nextID     int
}

func newStubBlobStore() *stubBlobStore {
	return &stubBlobStore{blobs: make(map[string][]byte)}
}

func (s *stubBlobStore) key(cat domain.BlobCategory, handle string) string {
	return string(cat) + "/" + handle
}

func (s *stubBlobStore) Store(_ context.Context, cat domain.BlobCategory, up ports.BlobUpload) (string, error) {
	if s.rejectMime && cat == domain.CategoryCV {
		return "", domain.ErrUnsupportedMediaType
	}
	if s.rejectSize && cat == domain.CategoryCV {
		return "", domain.ErrPayloadTooLarge
	}
	content, err := io.ReadAll(up.Content)
	if err != nil {
		return "", err
	}
	s.nextID++
	handle := fmt.Sprintf("%s-%d.bin", cat, s.nextID)
	s.blobs[s.key(cat, handle)] = content
	s.stored = append(s.stored, s.key(cat, handle))
	return handle, nil
}

func (s *stubBlobStore) Retrieve(_ context.Context, cat domain.BlobCategory, handle string) (io.ReadCloser, error) {
	content, ok := s.blobs[s.key(cat, handle)]
	if !ok {
		return nil, domain.ErrBlobNotFound
	}
	return io.NopCloser(strings.NewReader(string(content))), nil
}

func (s *stubBlobStore) Delete(_ context.Context, cat domain.BlobCategory, handle string) error {
	delete(s.blobs, s.key(cat, handle))
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func upload(name, contentType, content string) *ports.BlobUpload {
	return &ports.BlobUpload{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(content)),
		Content:     strings.NewReader(content),
	}
}

func validInput(passportNumber string) ports.SubmitInput {
	return ports.SubmitInput{
		Name:           "Asha Rao",
		PassportNumber: passportNumber,
		DateOfBirth:    time.Date(1994, 6, 12, 0, 0, 0, 0, time.UTC),
		Designation:    "Engineer",
		PPType:         "Ordinary",
		MobileNumber:   "9876543210",
		Village:        "Kondapur",
		Photo:          upload("valid.jpg", "image/jpeg", "jpeg-bytes"),
		CV:             upload("valid.pdf", "application/pdf", "pdf-bytes"),
	}
}

// ---------------------------------------------------------------------------
// Submit tests
// ---------------------------------------------------------------------------

func TestIntakeService_Submit_Success(t *testing.T) {
	repo := newStubApplicantRepo()
	blobs := newStubBlobStore()
	svc := NewIntakeService(repo, blobs, discardLogger)

	created, err := svc.Submit(context.Background(), validInput("P1234567"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.ID == "" {
		t.Error("expected store-assigned id")
	}
	if created.PassportNumber != "P1234567" {
		t.Errorf("passport number mangled: %s", created.PassportNumber)
	}
	if created.PhotoRef == "" || created.CVRef == "" {
		t.Fatalf("blob refs not assigned: %+v", created)
	}
	// Both referenced blobs must be resolvable.
	for cat, handle := range map[domain.BlobCategory]string{
		domain.CategoryPhoto: created.PhotoRef,
		domain.CategoryCV:    created.CVRef,
	} {
		rc, err := blobs.Retrieve(context.Background(), cat, handle)
		if err != nil {
			t.Errorf("%s blob not resolvable: %v", cat, err)
			continue
		}
		rc.Close()
	}
}

func TestIntakeService_Submit_MissingFields(t *testing.T) {
	repo := newStubApplicantRepo()
	blobs := newStubBlobStore()
	svc := NewIntakeService(repo, blobs, discardLogger)

	input := validInput("P1")
	input.Name = "  "
	input.Village = ""

	_, err := svc.Submit(context.Background(), input)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{"name", "village"}
	if len(ve.Fields) != len(want) || ve.Fields[0] != "name" || ve.Fields[1] != "village" {
		t.Errorf("expected fields %v, got %v", want, ve.Fields)
	}
	if len(blobs.stored) != 0 {
		t.Error("no file may be persisted before field validation passes")
	}
	if len(repo.byPassport) != 0 {
		t.Error("no record may be committed")
	}
}

func TestIntakeService_Submit_MissingFiles(t *testing.T) {
	repo := newStubApplicantRepo()
	blobs := newStubBlobStore()
	svc := NewIntakeService(repo, blobs, discardLogger)

	input := validInput("P2")
	input.CV = nil

	_, err := svc.Submit(context.Background(), input)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields) != 1 || ve.Fields[0] != "cv" {
		t.Errorf("expected [cv], got %v", ve.Fields)
	}
	if len(blobs.stored) != 0 {
		t.Error("nothing may be stored when a file is missing")
	}
}

func TestIntakeService_Submit_CVRejected_PhotoCleanedUp(t *testing.T) {
	repo := newStubApplicantRepo()
	blobs := newStubBlobStore()
	blobs.rejectMime = true
	svc := NewIntakeService(repo, blobs, discardLogger)

	_, err := svc.Submit(context.Background(), validInput("P3"))
	if !errors.Is(err, domain.ErrUnsupportedMediaType) {
		t.Fatalf("expected ErrUnsupportedMediaType, got %v", err)
	}
	if len(blobs.blobs) != 0 {
		t.Errorf("expected zero blobs after rollback, got %d", len(blobs.blobs))
	}
	if len(repo.byPassport) != 0 {
		t.Error("no record may be committed")
	}
}

func TestIntakeService_Submit_CVTooLarge_PhotoCleanedUp(t *testing.T) {
	repo := newStubApplicantRepo()
	blobs := newStubBlobStore()
	blobs.rejectSize = true
	svc := NewIntakeService(repo, blobs, discardLogger)

	_, err := svc.Submit(context.Background(), validInput("P4"))
	if !errors.Is(err, domain.ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
	if len(blobs.blobs) != 0 {
		t.Errorf("expected zero blobs after rollback, got %d", len(blobs.blobs))
	}
}

func TestIntakeService_Submit_DuplicatePrecheck(t *testing.T) {
	repo := newStubApplicantRepo()
	blobs := newStubBlobStore()
	svc := NewIntakeService(repo, blobs, discardLogger)

	if _, err := svc.Submit(context.Background(), validInput("P5")); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	blobCount := len(blobs.blobs)

	_, err := svc.Submit(context.Background(), validInput("P5"))
	if !errors.Is(err, domain.ErrDuplicatePassport) {
		t.Fatalf("expected ErrDuplicatePassport, got %v", err)
	}
	if len(repo.byPassport) != 1 {
		t.Errorf("expected exactly one committed record, got %d", len(repo.byPassport))
	}
	if len(blobs.blobs) != blobCount {
		t.Errorf("second submission leaked blobs: %d -> %d", blobCount, len(blobs.blobs))
	}
}

// The store-level unique index is the final arbiter: a duplicate-key
// rejection at insert time must behave exactly like the pre-check path.
func TestIntakeService_Submit_DuplicateRaceAtInsert(t *testing.T) {
	repo := newStubApplicantRepo()
	blobs := newStubBlobStore()
	svc := NewIntakeService(repo, blobs, discardLogger)

	// First submission commits normally.
	if _, err := svc.Submit(context.Background(), validInput("P6")); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	blobCount := len(blobs.blobs)

	// Simulate losing the race: the pre-check misses but Insert rejects.
	delete(repo.byPassport, "P6")
	repo.insertErr = domain.ErrDuplicatePassport

	_, err := svc.Submit(context.Background(), validInput("P6"))
	if !errors.Is(err, domain.ErrDuplicatePassport) {
		t.Fatalf("expected ErrDuplicatePassport, got %v", err)
	}
	if len(blobs.blobs) != blobCount {
		t.Errorf("lost-race submission leaked blobs: %d -> %d", blobCount, len(blobs.blobs))
	}
}

func TestIntakeService_Submit_InsertError_BlobsCleanedUp(t *testing.T) {
	repo := newStubApplicantRepo()
	repo.insertErr = errors.New("db unavailable")
	blobs := newStubBlobStore()
	svc := NewIntakeService(repo, blobs, discardLogger)

	_, err := svc.Submit(context.Background(), validInput("P7"))
	if err == nil {
		t.Fatal("expected error when insert fails")
	}
	if errors.Is(err, domain.ErrDuplicatePassport) {
		t.Fatalf("store error must not masquerade as duplicate: %v", err)
	}
	if len(blobs.blobs) != 0 {
		t.Errorf("expected zero blobs after rollback, got %d", len(blobs.blobs))
	}
}

func TestIntakeService_Submit_TrimsFields(t *testing.T) {
	repo := newStubApplicantRepo()
	blobs := newStubBlobStore()
	svc := NewIntakeService(repo, blobs, discardLogger)

	input := validInput("  P8  ")
	input.Name = "  Asha Rao  "

	created, err := svc.Submit(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Name != "Asha Rao" {
		t.Errorf("name not trimmed: %q", created.Name)
	}
	if created.PassportNumber != "P8" {
		t.Errorf("passport number not trimmed: %q", created.PassportNumber)
	}
}
