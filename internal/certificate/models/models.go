// Package models defines the certificate reference record and its identifier
// format.
//
// A reference snapshots the roster row that qualified it at issuance time.
// Later roster edits never propagate into an issued reference, so the snapshot
// is embedded by value rather than looked up on read.
package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	rostermodels "github.com/lucky-arya/CSIxMKITOS/internal/roster/models"
)

// ReferenceIDPrefix starts every minted reference ID.
const ReferenceIDPrefix = "CERT-"

// ReferenceIDPattern matches any ID this package can mint: the prefix, a
// base-36 uppercased Unix-seconds timestamp, and a 5-character suffix taken
// from a hex UUID.
var ReferenceIDPattern = regexp.MustCompile(`^CERT-[0-9A-Z]+-[0-9A-F]{5}$`)

// Reference is one issued certificate, keyed by its ID in the persisted map.
type Reference struct {
	ID            string               `json:"id"`
	User          rostermodels.Student `json:"user"`
	Timestamp     time.Time            `json:"timestamp"`
	Downloaded    bool                 `json:"downloaded"`
	DownloadCount int                  `json:"download_count"`
	LastDownload  *time.Time           `json:"last_download,omitempty"`
}

// NewReference mints a reference for the given roster snapshot. The caller
// supplies the clock so tests stay deterministic.
func NewReference(student rostermodels.Student, now time.Time) Reference {
	return Reference{
		ID:        NewReferenceID(now),
		User:      student,
		Timestamp: now.UTC(),
	}
}

// NewReferenceID builds a reference ID from the wall clock and a random
// suffix. Uniqueness is probabilistic: the ID is never checked against
// existing keys, which is an accepted gap at expected volumes.
func NewReferenceID(now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.Unix(), 36))
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:5]
	return ReferenceIDPrefix + ts + "-" + suffix
}

// MatchesStudent reports whether the snapshot inside the reference belongs to
// the given (name, email) pair under roster normalization.
func (r Reference) MatchesStudent(name, email string) bool {
	return r.User.Key() == rostermodels.MatchKey(name, email)
}

// IneligibleError is returned when a student is on the roster but their
// eligibility column does not grant a certificate. It carries the literal
// column value so the response can show the student what was recorded.
type IneligibleError struct {
	Status string
}

func (e *IneligibleError) Error() string {
	return fmt.Sprintf("student is not eligible: status %q", e.Status)
}
