package domain

import (
	"time"
)

// CpmSettings são as regras de remuneração injetadas na calculadora
type CpmSettings struct {
	Rate           float64 // valor por 1000 visualizações incrementais
	WindowDays     int     // dias de elegibilidade a partir da publicação
	PostCap        float64 // teto vitalício por post
	UserMonthlyCap float64 // teto por usuário no mês civil
}

// CpmLedgerEntry representa o acúmulo de um post em um dia. Único por (PostID, Date).
type CpmLedgerEntry struct {
	ID                       int64     `json:"id"`
	PostID                   string    `json:"post_id"`
	UserID                   string    `json:"user_id"`
	Date                     time.Time `json:"date"`
	CumulativeViews          int64     `json:"cumulative_views"`
	ViewsDelta               int64     `json:"views_delta"`
	CpmEarned                float64   `json:"cpm_earned"`
	PostAgeDays              int       `json:"post_age_days"`
	CumulativePostCpm        float64   `json:"cumulative_post_cpm"`
	CumulativeUserMonthlyCpm float64   `json:"cumulative_user_monthly_cpm"`
	IsPostCapped             bool      `json:"is_post_capped"`
	IsUserMonthlyCapped      bool      `json:"is_user_monthly_capped"`
	CreatedAt                time.Time `json:"created_at"`
}

// UserMonthlyEarnings é o agregado lido pelo dashboard
type UserMonthlyEarnings struct {
	UserID    string  `json:"user_id"`
	Month     string  `json:"month"`
	Total     float64 `json:"total"`
	Cap       float64 `json:"cap"`
	Remaining float64 `json:"remaining"`
	Capped    bool    `json:"capped"`
}
