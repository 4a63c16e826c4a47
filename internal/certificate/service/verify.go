package service

import (
	"context"
	"errors"
	"time"

	"github.com/lucky-arya/CSIxMKITOS/internal/audit"
	"github.com/lucky-arya/CSIxMKITOS/internal/certificate/models"
	"github.com/lucky-arya/CSIxMKITOS/internal/sentinel"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

// IssueResult is the outcome of VerifyAndIssue. Existing is false only when
// the reference was minted by this call.
type IssueResult struct {
	Reference models.Reference
	Existing  bool
}

// VerifyAndIssue checks the (name, email) pair against the roster and either
// returns the student's existing reference or mints a new one. Issuance is
// idempotent per normalized student as long as no prior duplicate exists; with
// duplicates present the returned reference is an arbitrary one of them.
//
// An on-roster but ineligible student yields a forbidden error wrapping
// models.IneligibleError, which carries the literal eligibility column value.
func (s *Service) VerifyAndIssue(ctx context.Context, name, email string) (*IssueResult, error) {
	student, err := s.students.FindByKey(ctx, name, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "student not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load student roster")
	}

	if !student.IsEligible() {
		s.logAudit(ctx, string(audit.EventEligibilityDenied), student.Email,
			"denied", student.Eligibility,
			"student_name", student.Name,
		)
		ineligible := &models.IneligibleError{Status: student.Eligibility}
		return nil, dErrors.Wrap(ineligible, dErrors.CodeForbidden, "student is not eligible for a certificate")
	}

	existing, err := s.references.FindByStudent(ctx, student.Name, student.Email)
	if err == nil {
		s.logAudit(ctx, string(audit.EventCertificateReused), student.Email,
			"granted", "",
			"reference_id", existing.ID,
		)
		s.incrementReused()
		return &IssueResult{Reference: *existing, Existing: true}, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load certificate references")
	}

	ref := models.NewReference(*student, time.Now())
	if err := s.references.Save(ctx, ref); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save certificate reference")
	}

	s.logAudit(ctx, string(audit.EventCertificateIssued), student.Email,
		"granted", "",
		"reference_id", ref.ID,
	)
	s.incrementIssued()
	return &IssueResult{Reference: ref, Existing: false}, nil
}
