// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/examvault/internal/validation"
)

// UploadRequest holds the multipart form fields of an upload. The file content itself is
// read separately from the "file" part.
type UploadRequest struct {
	Filename string `json:"file"`
	Password string `json:"password"`
	Subject  string `json:"subject"`
	ExamDate string `json:"exam_date"`
}

// Validate checks if the upload request is valid.
func (r *UploadRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Filename, validation.Required, customValidation.AllowedExtension),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Subject, validation.Length(0, 200)),
		validation.Field(&r.ExamDate, customValidation.ExamDate),
	)
}

// PasswordRequest is the JSON body of the download and verify endpoints.
type PasswordRequest struct {
	Password string `json:"password"`
}

// Validate checks if the password request is valid.
func (r *PasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, validation.Required),
	)
}
