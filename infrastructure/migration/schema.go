package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creator-cpm-sync/infrastructure/database/postgres"
)

type step struct {
	name      string
	statement string
}

// As tabelas posts são escritas pelo app de onboarding; aqui só garantimos
// as colunas do alerta viral e os índices usados pela seleção de candidatos.
var steps = []step{
	{
		name: "create posts",
		statement: `CREATE TABLE IF NOT EXISTS posts (
			id           TEXT PRIMARY KEY,
			url          TEXT NOT NULL,
			platform     TEXT NOT NULL CHECK (platform IN ('tiktok', 'instagram')),
			submitted_by TEXT NOT NULL,
			status       TEXT NOT NULL DEFAULT 'pending'
				CHECK (status IN ('pending', 'approved', 'rejected', 'processing')),
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "add viral alert columns",
		statement: `ALTER TABLE posts
			ADD COLUMN IF NOT EXISTS viral_alert_message      TEXT,
			ADD COLUMN IF NOT EXISTS viral_alert_milestone    BIGINT,
			ADD COLUMN IF NOT EXISTS viral_alert_created_at   TIMESTAMPTZ,
			ADD COLUMN IF NOT EXISTS viral_alert_acknowledged BOOLEAN NOT NULL DEFAULT FALSE`,
	},
	{
		name:      "index posts by status and created_at",
		statement: `CREATE INDEX IF NOT EXISTS idx_posts_status_created_at ON posts (status, created_at)`,
	},
	{
		name: "create analytics_snapshots",
		statement: `CREATE TABLE IF NOT EXISTS analytics_snapshots (
			id              BIGSERIAL PRIMARY KEY,
			post_id         TEXT NOT NULL REFERENCES posts (id),
			views           BIGINT NOT NULL DEFAULT 0,
			likes           BIGINT NOT NULL DEFAULT 0,
			comments        BIGINT NOT NULL DEFAULT 0,
			shares          BIGINT NOT NULL DEFAULT 0,
			bookmarks       BIGINT NOT NULL DEFAULT 0,
			downloads       BIGINT NOT NULL DEFAULT 0,
			engagement_rate NUMERIC(8, 2) NOT NULL DEFAULT 0,
			fetched_at      TIMESTAMPTZ NOT NULL,
			source          TEXT NOT NULL
		)`,
	},
	{
		name:      "index snapshots by post and fetched_at",
		statement: `CREATE INDEX IF NOT EXISTS idx_analytics_snapshots_post_fetched ON analytics_snapshots (post_id, fetched_at DESC, id DESC)`,
	},
	{
		name: "create cpm_ledger",
		statement: `CREATE TABLE IF NOT EXISTS cpm_ledger (
			id                          BIGSERIAL PRIMARY KEY,
			post_id                     TEXT NOT NULL REFERENCES posts (id),
			user_id                     TEXT NOT NULL,
			date                        DATE NOT NULL,
			cumulative_views            BIGINT NOT NULL,
			views_delta                 BIGINT NOT NULL CHECK (views_delta >= 0),
			cpm_earned                  NUMERIC(12, 2) NOT NULL CHECK (cpm_earned >= 0),
			post_age_days               INTEGER NOT NULL,
			cumulative_post_cpm         NUMERIC(12, 2) NOT NULL,
			cumulative_user_monthly_cpm NUMERIC(12, 2) NOT NULL,
			is_post_capped              BOOLEAN NOT NULL DEFAULT FALSE,
			is_user_monthly_capped      BOOLEAN NOT NULL DEFAULT FALSE,
			created_at                  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT cpm_ledger_post_date_key UNIQUE (post_id, date)
		)`,
	},
	{
		name:      "index ledger by user and date",
		statement: `CREATE INDEX IF NOT EXISTS idx_cpm_ledger_user_date ON cpm_ledger (user_id, date)`,
	},
}

// Apply executa o schema de forma idempotente dentro de uma transação
func Apply(ctx context.Context, conn postgres.Conn) error {
	startTime := time.Now()

	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, s := range steps {
			if _, err := tx.ExecContext(ctx, s.statement); err != nil {
				return fmt.Errorf("erro na migração %q: %w", s.name, err)
			}
			logrus.WithField("step", s.name).Debug("Migração aplicada")
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"steps":    len(steps),
		"duration": time.Since(startTime).String(),
	}).Info("Schema do banco verificado com sucesso")

	return nil
}
