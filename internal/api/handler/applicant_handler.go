package handler

import (
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/talentgate/applicant-registry/internal/api/metrics"
	"github.com/talentgate/applicant-registry/internal/core/domain"
	"github.com/talentgate/applicant-registry/internal/core/ports"
)

// ApplicantHandler handles HTTP requests for applicant intake and lookup.
type ApplicantHandler struct {
	intake ports.IntakeService
	query  ports.QueryService
}

func NewApplicantHandler(intake ports.IntakeService, query ports.QueryService) *ApplicantHandler {
	return &ApplicantHandler{intake: intake, query: query}
}

// Create handles POST /api/users: a multipart submission of text fields
// plus the "photo" and "cv" file parts.
//
// @Summary      Submit an applicant registration
// @Tags         applicants
// @Accept       multipart/form-data
// @Produce      json
// @Param        name            formData  string  true   "Full name"
// @Param        passportNumber  formData  string  true   "Passport number (unique)"
// @Param        dateOfBirth     formData  string  true   "Date of birth (YYYY-MM-DD)"
// @Param        designation     formData  string  true   "Designation"
// @Param        ppType          formData  string  true   "Passport type"
// @Param        mobileNumber    formData  string  true   "Mobile number"
// @Param        village         formData  string  true   "Village"
// @Param        remark          formData  string  false  "Remark"
// @Param        photo           formData  file    true   "Photo (JPEG/PNG)"
// @Param        cv              formData  file    true   "CV (PDF/DOC/DOCX)"
// @Success      201  {object}  createApplicantResponse
// @Failure      400  {object}  map[string]string
// @Router       /api/users [post]
func (h *ApplicantHandler) Create(c echo.Context) error {
	var req submitFieldsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	var dob time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse(dateLayout, req.DateOfBirth)
		if err != nil {
			return domain.NewValidationError("dateOfBirth")
		}
		dob = parsed
	}

	photo, closePhoto, err := formUpload(c, "photo")
	if err != nil {
		return err
	}
	defer closePhoto()

	cv, closeCV, err := formUpload(c, "cv")
	if err != nil {
		return err
	}
	defer closeCV()

	created, err := h.intake.Submit(c.Request().Context(), toSubmitInput(req, dob, photo, cv))
	if err != nil {
		countSubmitFailure(err)
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, createApplicantResponse{
		Message: "User registered successfully",
		User:    toApplicantResponse(created),
	})
}

// Search handles GET /api/users/search?q=.
//
// @Summary      Search applicants by name or mobile number
// @Tags         applicants
// @Produce      json
// @Security     BearerAuth
// @Param        q  query  string  true  "Case-insensitive substring"
// @Success      200  {array}   applicantResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/users/search [get]
func (h *ApplicantHandler) Search(c echo.Context) error {
	results, err := h.query.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}

	metrics.SearchesTotal.Inc()
	return c.JSON(http.StatusOK, toApplicantListResponse(results))
}

// GetByID handles GET /api/users/:id.
//
// @Summary      Get full applicant detail
// @Tags         applicants
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Record identifier"
// @Success      200  {object}  applicantResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id} [get]
func (h *ApplicantHandler) GetByID(c echo.Context) error {
	applicant, err := h.query.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toApplicantResponse(applicant))
}

// DownloadCV handles GET /api/users/:id/cv, streaming the stored CV as
// an attachment named "<name>-CV<ext>".
//
// @Summary      Download an applicant's CV
// @Tags         applicants
// @Produce      application/octet-stream
// @Security     BearerAuth
// @Param        id  path  string  true  "Record identifier"
// @Success      200  {file}    binary
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id}/cv [get]
func (h *ApplicantHandler) DownloadCV(c echo.Context) error {
	download, err := h.query.GetCV(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	defer download.Content.Close()

	contentType := mime.TypeByExtension(filepath.Ext(download.Filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	metrics.CVDownloadsTotal.Inc()
	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": download.Filename}))
	return c.Stream(http.StatusOK, contentType, download.Content)
}

// formUpload opens one multipart file part. A missing part is not an
// error here: the intake pipeline reports it together with the other
// missing fields.
func formUpload(c echo.Context, field string) (*ports.BlobUpload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart payload")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, echo.NewHTTPError(http.StatusBadRequest, "unreadable file upload")
	}

	return &ports.BlobUpload{
		Filename:    fh.Filename,
		ContentType: partContentType(fh),
		Size:        fh.Size,
		Content:     f,
	}, func() { f.Close() }, nil
}

func partContentType(fh *multipart.FileHeader) string {
	return fh.Header.Get("Content-Type")
}

func countSubmitFailure(err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		metrics.RegistrationsTotal.WithLabelValues("validation_error").Inc()
	case errors.Is(err, domain.ErrDuplicatePassport):
		metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
	case errors.Is(err, domain.ErrUnsupportedMediaType):
		metrics.RegistrationsTotal.WithLabelValues("file_rejected").Inc()
		metrics.UploadsRejectedTotal.WithLabelValues("media_type").Inc()
	case errors.Is(err, domain.ErrPayloadTooLarge):
		metrics.RegistrationsTotal.WithLabelValues("file_rejected").Inc()
		metrics.UploadsRejectedTotal.WithLabelValues("too_large").Inc()
	default:
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
	}
}
