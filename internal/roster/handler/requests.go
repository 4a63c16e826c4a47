package handler

import (
	"github.com/lucky-arya/CSIxMKITOS/internal/roster/models"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
	s "github.com/lucky-arya/CSIxMKITOS/pkg/string"
	"github.com/lucky-arya/CSIxMKITOS/pkg/validation"
)

// AddStudentRequest carries one roster entry to append.
type AddStudentRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Eligibility string `json:"eligibility"`
}

// Sanitize trims surrounding whitespace from all fields.
func (r *AddStudentRequest) Sanitize() {
	if r == nil {
		return
	}
	s.TrimStrings(&r.Name, &r.Email, &r.Eligibility)
}

// Validate checks that the request is well-formed.
func (r *AddStudentRequest) Validate() error {
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
	if err := validation.CheckStringLength("eligibility", r.Eligibility, validation.MaxStatusLength); err != nil {
		return err
	}

	// Phase 2: Required fields
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if r.Email == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}

	// Phase 3: Syntax validation
	return validation.CheckEmail("email", r.Email)
}

// ToStudent converts the validated request into a roster entry. The
// eligibility column is stored as given; anything but the two eligible
// statuses leaves the student ineligible.
func (r *AddStudentRequest) ToStudent() models.Student {
	return models.Student{
		Name:        r.Name,
		Email:       r.Email,
		Eligibility: r.Eligibility,
	}
}
