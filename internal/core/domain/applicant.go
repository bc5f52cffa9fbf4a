package domain

import "time"

// Applicant is the core aggregate: one submitted registration plus the
// handles of its two stored files. Records are created once and never
// updated or deleted through the API.
type Applicant struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	Name           string    `json:"name" bson:"name"`
	PassportNumber string    `json:"passport_number" bson:"passport_number"`
	DateOfBirth    time.Time `json:"date_of_birth" bson:"date_of_birth"`
	Designation    string    `json:"designation" bson:"designation"`
	PPType         string    `json:"pp_type" bson:"pp_type"`
	MobileNumber   string    `json:"mobile_number" bson:"mobile_number"`
	Village        string    `json:"village" bson:"village"`
	Remark         string    `json:"remark" bson:"remark"`
	PhotoRef       string    `json:"photo_ref" bson:"photo_ref"`
	CVRef          string    `json:"cv_ref" bson:"cv_ref"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}
