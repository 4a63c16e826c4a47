package models

import (
	"strings"

	"github.com/lucky-arya/CSIxMKITOS/pkg/validation"
)

// LoginRequest carries the admin credentials for POST /admin/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,notblank,max=128"`
	Password string `json:"password" validate:"required,max=1024"`
}

// Sanitize trims surrounding whitespace from the username. The password is
// left untouched.
func (r *LoginRequest) Sanitize() {
	r.Username = strings.TrimSpace(r.Username)
}

// Validate checks that the request is well-formed.
func (r *LoginRequest) Validate() error {
	return validation.Validate(r)
}
