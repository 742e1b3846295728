package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/creator-cpm-sync/infrastructure/database/postgres"
	"github.com/vfg2006/creator-cpm-sync/internal/domain"
)

const (
	snapshotsTable     = "analytics_snapshots s"
	snapshotsTableName = "analytics_snapshots"
	snapshotColumns    = "s.id, s.post_id, s.views, s.likes, s.comments, s.shares, s.bookmarks, s.downloads, s.engagement_rate, s.fetched_at, s.source"
)

// SnapshotRepository é append-only: nunca atualiza nem deduplica
type SnapshotRepository interface {
	Append(ctx context.Context, snapshot *domain.AnalyticsSnapshot) (int64, error)
	LatestFor(ctx context.Context, postID string) (*domain.AnalyticsSnapshot, error)
	GetByID(ctx context.Context, id int64) (*domain.AnalyticsSnapshot, error)
}

type snapshotRepository struct {
	conn *postgres.Connection
}

func NewSnapshotRepository(conn *postgres.Connection) SnapshotRepository {
	return &snapshotRepository{
		conn: conn,
	}
}

func (r *snapshotRepository) Append(ctx context.Context, snapshot *domain.AnalyticsSnapshot) (int64, error) {
	query, args, err := squirrel.
		Insert(snapshotsTableName).
		Columns("post_id", "views", "likes", "comments", "shares", "bookmarks", "downloads", "engagement_rate", "fetched_at", "source").
		Values(
			snapshot.PostID,
			snapshot.Views,
			snapshot.Likes,
			snapshot.Comments,
			snapshot.Shares,
			snapshot.Bookmarks,
			snapshot.Downloads,
			decimal.NewFromFloat(snapshot.EngagementRate).Round(2),
			snapshot.FetchedAt,
			snapshot.Source,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var id int64
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, newPersistenceError("insert", snapshotsTableName, err)
	}

	snapshot.ID = id

	return id, nil
}

// LatestFor retorna nil quando o post ainda não tem coleta
func (r *snapshotRepository) LatestFor(ctx context.Context, postID string) (*domain.AnalyticsSnapshot, error) {
	query, args, err := squirrel.
		Select(snapshotColumns).
		From(snapshotsTable).
		Where(squirrel.Eq{"s.post_id": postID}).
		OrderBy("s.fetched_at DESC", "s.id DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.getOne(ctx, query, args)
}

func (r *snapshotRepository) GetByID(ctx context.Context, id int64) (*domain.AnalyticsSnapshot, error) {
	query, args, err := squirrel.
		Select(snapshotColumns).
		From(snapshotsTable).
		Where(squirrel.Eq{"s.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.getOne(ctx, query, args)
}

func (r *snapshotRepository) getOne(ctx context.Context, query string, args []interface{}) (*domain.AnalyticsSnapshot, error) {
	snapshot := &domain.AnalyticsSnapshot{}
	var engagement decimal.Decimal

	err := r.conn.QueryRowContext(ctx, query, args...).Scan(
		&snapshot.ID,
		&snapshot.PostID,
		&snapshot.Views,
		&snapshot.Likes,
		&snapshot.Comments,
		&snapshot.Shares,
		&snapshot.Bookmarks,
		&snapshot.Downloads,
		&engagement,
		&snapshot.FetchedAt,
		&snapshot.Source,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, newPersistenceError("select", snapshotsTableName, err)
	}

	snapshot.EngagementRate = engagement.InexactFloat64()
	snapshot.FetchedAt = snapshot.FetchedAt.UTC()

	return snapshot, nil
}
