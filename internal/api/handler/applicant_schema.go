package handler

// dateLayout is the wire format for dateOfBirth, matching the HTML date
// input the registration form posts.
const dateLayout = "2006-01-02"

// submitFieldsRequest carries the text fields of the multipart
// submission. Files (photo, cv) are extracted separately.
type submitFieldsRequest struct {
	Name           string `form:"name"           validate:"required"`
	PassportNumber string `form:"passportNumber" validate:"required"`
	DateOfBirth    string `form:"dateOfBirth"    validate:"required"`
	Designation    string `form:"designation"    validate:"required"`
	PPType         string `form:"ppType"         validate:"required"`
	MobileNumber   string `form:"mobileNumber"   validate:"required"`
	Village        string `form:"village"        validate:"required"`
	Remark         string `form:"remark"`
}

// applicantResponse is the transport view of a committed record. Blob
// handles are exposed as the public paths the files are served under.
type applicantResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	PassportNumber string `json:"passportNumber"`
	DateOfBirth    string `json:"dateOfBirth"`
	Designation    string `json:"designation"`
	PPType         string `json:"ppType"`
	MobileNumber   string `json:"mobileNumber"`
	Village        string `json:"village"`
	Remark         string `json:"remark"`
	PhotoURL       string `json:"photoUrl"`
	CVURL          string `json:"cvUrl"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

type createApplicantResponse struct {
	Message string            `json:"message"`
	User    applicantResponse `json:"user"`
}
