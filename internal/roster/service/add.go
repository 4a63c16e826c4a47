package service

import (
	"context"
	"errors"

	"github.com/lucky-arya/CSIxMKITOS/internal/audit"
	"github.com/lucky-arya/CSIxMKITOS/internal/roster/models"
	"github.com/lucky-arya/CSIxMKITOS/internal/sentinel"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

// Add appends a student to the roster. Students matching an existing entry on
// the normalized (name, email) key are rejected with a conflict.
func (s *Service) Add(ctx context.Context, student models.Student) error {
	if err := s.roster.Append(ctx, student); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyExists) {
			return dErrors.New(dErrors.CodeConflict, "student already exists")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save student")
	}

	s.logAudit(ctx, string(audit.EventStudentAdded), student.Email,
		"student_name", student.Name,
		"eligibility", student.Eligibility,
	)
	s.incrementStudentsAdded()
	return nil
}
