package handler

import "github.com/lucky-arya/CSIxMKITOS/internal/roster/models"

// StudentListResponse is the GET /students payload.
type StudentListResponse struct {
	Students []models.Student `json:"students"`
	Total    int              `json:"total"`
}

// AddStudentResponse is the POST /students payload on success.
type AddStudentResponse struct {
	Student models.Student `json:"student"`
}
