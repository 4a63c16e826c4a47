package audit

import "time"

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Action    string    `json:"action"`
	Decision  string    `json:"decision,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	Device    string    `json:"device,omitempty"`
}

type AuditEvent string

const (
	EventStudentAdded          AuditEvent = "student_added"
	EventCertificateIssued     AuditEvent = "certificate_issued"
	EventCertificateReused     AuditEvent = "certificate_reused"
	EventCertificateDownloaded AuditEvent = "certificate_downloaded"
	EventEligibilityDenied     AuditEvent = "eligibility_denied"
	EventDuplicatesReconciled  AuditEvent = "duplicates_reconciled"
	EventReferencesCleared     AuditEvent = "references_cleared"
	EventSystemReset           AuditEvent = "system_reset"
	EventAdminLogin            AuditEvent = "admin_login"
	EventAdminLogout           AuditEvent = "admin_logout"
	EventAuthFailed            AuditEvent = "auth_failed"
)
