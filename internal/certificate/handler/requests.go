package handler

import (
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
	s "github.com/lucky-arya/CSIxMKITOS/pkg/string"
	"github.com/lucky-arya/CSIxMKITOS/pkg/validation"
)

// VerifyCredentialsRequest identifies a student asking for a certificate.
// Both fields are required; matching against the roster is case and
// whitespace insensitive.
type VerifyCredentialsRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Sanitize trims surrounding whitespace from all fields.
func (r *VerifyCredentialsRequest) Sanitize() {
	if r == nil {
		return
	}
	s.TrimStrings(&r.Name, &r.Email)
}

// Validate checks that the request is well-formed.
func (r *VerifyCredentialsRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}

	// Phase 1: Size validation (fail fast on oversized input)
	if err := validation.CheckStringLength("name", r.Name, validation.MaxNameLength); err != nil {
		return err
	}
	if err := validation.CheckStringLength("email", r.Email, validation.MaxEmailLength); err != nil {
		return err
	}

	// Phase 2: Required fields
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if r.Email == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	return nil
}

// MarkDownloadedRequest records one certificate download.
type MarkDownloadedRequest struct {
	ReferenceID string `json:"reference_id"`
}

// Sanitize trims surrounding whitespace from the reference ID.
func (r *MarkDownloadedRequest) Sanitize() {
	if r == nil {
		return
	}
	s.TrimStrings(&r.ReferenceID)
}

// Validate checks that the request is well-formed. The ID format is not
// checked here; an ID the store does not know comes back as not found.
func (r *MarkDownloadedRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}

	// Phase 1: Size validation (fail fast on oversized input)
	if err := validation.CheckStringLength("reference_id", r.ReferenceID, validation.MaxReferenceIDLength); err != nil {
		return err
	}

	// Phase 2: Required fields
	if r.ReferenceID == "" {
		return dErrors.New(dErrors.CodeValidation, "reference_id is required")
	}
	return nil
}
