package domain

import (
	"time"
)

type Platform string

const (
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
)

func (p Platform) IsValid() bool {
	return p == PlatformTikTok || p == PlatformInstagram
}

type PostStatus string

const (
	PostStatusPending    PostStatus = "pending"
	PostStatusApproved   PostStatus = "approved"
	PostStatusRejected   PostStatus = "rejected"
	PostStatusProcessing PostStatus = "processing"
)

// SyncablePostStatuses são os status elegíveis para coleta de métricas
var SyncablePostStatuses = []PostStatus{PostStatusPending, PostStatusApproved}

// Post é criado fora do motor de sincronização. Aqui só escrevemos os campos do alerta viral.
type Post struct {
	ID          string      `json:"id"`
	URL         string      `json:"url"`
	Platform    Platform    `json:"platform"`
	SubmittedBy string      `json:"submitted_by"`
	CreatedAt   time.Time   `json:"created_at"`
	Status      PostStatus  `json:"status"`
	ViralAlert  *ViralAlert `json:"viral_alert,omitempty"`
}

func (p *Post) IsApproved() bool {
	return p != nil && p.Status == PostStatusApproved
}

// ViralAlert é um slot único: cada novo marco sobrescreve o anterior
type ViralAlert struct {
	Message        string    `json:"message"`
	MilestoneViews int64     `json:"milestone_views"`
	CreatedAt      time.Time `json:"created_at"`
	Acknowledged   bool      `json:"acknowledged"`
}

type PostFilters struct {
	Statuses     []PostStatus
	CreatedAfter time.Time
	AccountIDs   []string
}
