package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/creator-cpm-sync/infrastructure/database/postgres"
	"github.com/vfg2006/creator-cpm-sync/internal/domain"
)

const (
	ledgerTable     = "cpm_ledger l"
	ledgerTableName = "cpm_ledger"
	ledgerColumns   = "l.id, l.post_id, l.user_id, l.date, l.cumulative_views, l.views_delta, l.cpm_earned, l.post_age_days, " +
		"l.cumulative_post_cpm, l.cumulative_user_monthly_cpm, l.is_post_capped, l.is_user_monthly_capped, l.created_at"
	dateLayout = "2006-01-02"
)

type CpmLedgerRepository interface {
	GetByPostAndDate(ctx context.Context, postID string, date time.Time) (*domain.CpmLedgerEntry, error)
	GetLatestBefore(ctx context.Context, postID string, date time.Time) (*domain.CpmLedgerEntry, error)
	Insert(ctx context.Context, entry *domain.CpmLedgerEntry) (int64, error)
	SumUserEarnings(ctx context.Context, userID string, from, to time.Time) (float64, error)
	ListByPost(ctx context.Context, postID string) ([]*domain.CpmLedgerEntry, error)
}

type cpmLedgerRepository struct {
	conn *postgres.Connection
}

func NewCpmLedgerRepository(conn *postgres.Connection) CpmLedgerRepository {
	return &cpmLedgerRepository{
		conn: conn,
	}
}

func (r *cpmLedgerRepository) GetByPostAndDate(ctx context.Context, postID string, date time.Time) (*domain.CpmLedgerEntry, error) {
	query, args, err := squirrel.
		Select(ledgerColumns).
		From(ledgerTable).
		Where(squirrel.Eq{"l.post_id": postID, "l.date": date.Format(dateLayout)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.getOne(ctx, query, args)
}

// GetLatestBefore busca a linha de maior data estritamente anterior; dias sem coleta são ignorados
func (r *cpmLedgerRepository) GetLatestBefore(ctx context.Context, postID string, date time.Time) (*domain.CpmLedgerEntry, error) {
	query, args, err := squirrel.
		Select(ledgerColumns).
		From(ledgerTable).
		Where(squirrel.Eq{"l.post_id": postID}).
		Where(squirrel.Lt{"l.date": date.Format(dateLayout)}).
		OrderBy("l.date DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.getOne(ctx, query, args)
}

// Insert devolve ErrAlreadyExists quando outra execução já gravou (post_id, date)
func (r *cpmLedgerRepository) Insert(ctx context.Context, entry *domain.CpmLedgerEntry) (int64, error) {
	query, args, err := squirrel.
		Insert(ledgerTableName).
		Columns(
			"post_id", "user_id", "date", "cumulative_views", "views_delta", "cpm_earned", "post_age_days",
			"cumulative_post_cpm", "cumulative_user_monthly_cpm", "is_post_capped", "is_user_monthly_capped",
		).
		Values(
			entry.PostID,
			entry.UserID,
			entry.Date.Format(dateLayout),
			entry.CumulativeViews,
			entry.ViewsDelta,
			decimal.NewFromFloat(entry.CpmEarned).Round(2),
			entry.PostAgeDays,
			decimal.NewFromFloat(entry.CumulativePostCpm).Round(2),
			decimal.NewFromFloat(entry.CumulativeUserMonthlyCpm).Round(2),
			entry.IsPostCapped,
			entry.IsUserMonthlyCapped,
		).
		Suffix("ON CONFLICT (post_id, date) DO NOTHING RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var (
		id        int64
		createdAt time.Time
	)
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&id, &createdAt)
	if err != nil {
		// DO NOTHING não retorna linha quando há conflito
		if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
			return 0, ErrAlreadyExists
		}
		return 0, newPersistenceError("insert", ledgerTableName, err)
	}

	entry.ID = id
	entry.CreatedAt = createdAt.UTC()

	return id, nil
}

// SumUserEarnings soma cpm_earned do usuário entre from e to, ambos inclusivos
func (r *cpmLedgerRepository) SumUserEarnings(ctx context.Context, userID string, from, to time.Time) (float64, error) {
	query, args, err := squirrel.
		Select("COALESCE(SUM(l.cpm_earned), 0)").
		From(ledgerTable).
		Where(squirrel.Eq{"l.user_id": userID}).
		Where(squirrel.GtOrEq{"l.date": from.Format(dateLayout)}).
		Where(squirrel.LtOrEq{"l.date": to.Format(dateLayout)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total decimal.Decimal
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, newPersistenceError("sum", ledgerTableName, err)
	}

	return total.Round(2).InexactFloat64(), nil
}

func (r *cpmLedgerRepository) ListByPost(ctx context.Context, postID string) ([]*domain.CpmLedgerEntry, error) {
	query, args, err := squirrel.
		Select(ledgerColumns).
		From(ledgerTable).
		Where(squirrel.Eq{"l.post_id": postID}).
		OrderBy("l.date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, newPersistenceError("select", ledgerTableName, err)
	}
	defer rows.Close()

	entries := make([]*domain.CpmLedgerEntry, 0)
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear ledger: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}

func (r *cpmLedgerRepository) getOne(ctx context.Context, query string, args []interface{}) (*domain.CpmLedgerEntry, error) {
	entry, err := scanLedgerEntry(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, newPersistenceError("select", ledgerTableName, err)
	}

	return entry, nil
}

func scanLedgerEntry(row rowScanner) (*domain.CpmLedgerEntry, error) {
	entry := &domain.CpmLedgerEntry{}

	var cpmEarned, cumulativePostCpm, cumulativeUserMonthlyCpm decimal.Decimal

	if err := row.Scan(
		&entry.ID,
		&entry.PostID,
		&entry.UserID,
		&entry.Date,
		&entry.CumulativeViews,
		&entry.ViewsDelta,
		&cpmEarned,
		&entry.PostAgeDays,
		&cumulativePostCpm,
		&cumulativeUserMonthlyCpm,
		&entry.IsPostCapped,
		&entry.IsUserMonthlyCapped,
		&entry.CreatedAt,
	); err != nil {
		return nil, err
	}

	entry.Date = time.Date(entry.Date.Year(), entry.Date.Month(), entry.Date.Day(), 0, 0, 0, 0, time.UTC)
	entry.CpmEarned = cpmEarned.InexactFloat64()
	entry.CumulativePostCpm = cumulativePostCpm.InexactFloat64()
	entry.CumulativeUserMonthlyCpm = cumulativeUserMonthlyCpm.InexactFloat64()
	entry.CreatedAt = entry.CreatedAt.UTC()

	return entry, nil
}
