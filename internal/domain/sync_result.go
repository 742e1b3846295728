package domain

import (
	"time"
)

// SyncStage identifica em que etapa do pipeline de um post o erro aconteceu
type SyncStage string

const (
	SyncStageFetch    SyncStage = "fetch"
	SyncStageSnapshot SyncStage = "snapshot"
	SyncStageViral    SyncStage = "viral"
	SyncStageCpm      SyncStage = "cpm"
)

type SyncOptions struct {
	AccountIDs []string `json:"accountIds,omitempty"`
}

type SyncError struct {
	PostID string    `json:"postId"`
	URL    string    `json:"url"`
	Error  string    `json:"error"`
	Stage  SyncStage `json:"stage"`
}

type SyncVerification struct {
	AnalyticsInserted int `json:"analyticsInserted"`
	CpmInserted       int `json:"cpmInserted"`
	Failed            int `json:"failed"`
}

type SanityMismatch struct {
	PostID        string `json:"postId"`
	SnapshotViews int64  `json:"snapshotViews"`
	LedgerViews   int64  `json:"ledgerViews"`
}

type SanityChecks struct {
	Passed     int              `json:"passed"`
	Failed     int              `json:"failed"`
	Mismatches []SanityMismatch `json:"mismatches"`
}

// SyncResult é o resumo estruturado devolvido por cada execução
type SyncResult struct {
	RunID        string           `json:"runId"`
	StartedAt    time.Time        `json:"startedAt"`
	FinishedAt   time.Time        `json:"finishedAt"`
	Candidates   int              `json:"candidates"`
	Success      int              `json:"success"`
	Failed       int              `json:"failed"`
	Errors       []SyncError      `json:"errors"`
	Verified     SyncVerification `json:"verified"`
	SanityChecks SanityChecks     `json:"sanityChecks"`
	Aborted      bool             `json:"aborted"`
}

func NewSyncResult(runID string, startedAt time.Time) *SyncResult {
	return &SyncResult{
		RunID:     runID,
		StartedAt: startedAt,
		Errors:    make([]SyncError, 0),
		SanityChecks: SanityChecks{
			Mismatches: make([]SanityMismatch, 0),
		},
	}
}
