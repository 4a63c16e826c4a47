// Package models defines the student roster domain types.
package models

import (
	s "github.com/lucky-arya/CSIxMKITOS/pkg/string"
)

// Eligibility status values that unlock certificate issuance. Matching is
// case-insensitive on the trimmed value; any other status is ineligible.
const (
	StatusEligible = "eligible"
	StatusWellDone = "well done"
)

// Student is one roster entry. Name and email together identify the student;
// the eligibility column decides whether a certificate may be issued.
type Student struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Eligibility string `json:"eligibility"`
}

// MatchKey folds a (name, email) pair into the identity key used for lookups
// and duplicate detection. Two students match when both fields fold equal.
func MatchKey(name, email string) string {
	return s.FoldKey(name) + "|" + s.FoldKey(email)
}

// Key returns the student's normalized identity key.
func (st Student) Key() string {
	return MatchKey(st.Name, st.Email)
}

// IsEligible reports whether the student's status entitles them to a
// certificate.
func (st Student) IsEligible() bool {
	switch s.FoldKey(st.Eligibility) {
	case StatusEligible, StatusWellDone:
		return true
	}
	return false
}
