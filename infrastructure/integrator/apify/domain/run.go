package apifydomain

import "time"

type RunStatus string

const (
	RunStatusReady     RunStatus = "READY"
	RunStatusRunning   RunStatus = "RUNNING"
	RunStatusSucceeded RunStatus = "SUCCEEDED"
	RunStatusFailed    RunStatus = "FAILED"
	RunStatusAborting  RunStatus = "ABORTING"
	RunStatusAborted   RunStatus = "ABORTED"
	RunStatusTimingOut RunStatus = "TIMING-OUT"
	RunStatusTimedOut  RunStatus = "TIMED-OUT"
)

func (s RunStatus) IsTerminal() bool {
	switch s {
	case RunStatusSucceeded, RunStatusFailed, RunStatusAborted, RunStatusTimedOut:
		return true
	default:
		return false
	}
}

// Run representa uma execução de actor
type Run struct {
	ID               string     `json:"id"`
	ActID            string     `json:"actId"`
	Status           RunStatus  `json:"status"`
	StatusMessage    string     `json:"statusMessage,omitempty"`
	DefaultDatasetID string     `json:"defaultDatasetId"`
	StartedAt        *time.Time `json:"startedAt,omitempty"`
	FinishedAt       *time.Time `json:"finishedAt,omitempty"`
}

type RunResponse struct {
	Data Run `json:"data"`
}

// TikTokInput é o input do actor de TikTok para um único vídeo
type TikTokInput struct {
	PostURLs             []string `json:"postURLs"`
	ResultsPerPage       int      `json:"resultsPerPage"`
	ShouldDownloadVideos bool     `json:"shouldDownloadVideos"`
	ShouldDownloadCovers bool     `json:"shouldDownloadCovers"`
}

// InstagramInput é o input do actor de Instagram para um único post
type InstagramInput struct {
	DirectURLs   []string `json:"directUrls"`
	ResultsType  string   `json:"resultsType"`
	ResultsLimit int      `json:"resultsLimit"`
}
