package handler

import (
	rostermodels "github.com/lucky-arya/CSIxMKITOS/internal/roster/models"
)

// VerifyResponse is the outcome of a successful credential check. CreatedDate
// is present only when this call minted the reference.
type VerifyResponse struct {
	ReferenceID string               `json:"reference_id"`
	User        rostermodels.Student `json:"user"`
	Existing    bool                 `json:"existing"`
	CreatedDate string               `json:"created_date,omitempty"`
}

// MarkDownloadedResponse acknowledges one recorded download.
type MarkDownloadedResponse struct {
	Success       bool `json:"success"`
	DownloadCount int  `json:"download_count"`
}

// CleanupResponse reports a duplicate reconciliation pass.
type CleanupResponse struct {
	Removed    int      `json:"removed"`
	Remaining  int      `json:"remaining"`
	RemovedIDs []string `json:"removed_ids"`
}

// ClearResponse acknowledges a reference store wipe.
type ClearResponse struct {
	Cleared bool `json:"cleared"`
}
