package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/creator-cpm-sync/infrastructure/database/postgres"
	"github.com/vfg2006/creator-cpm-sync/internal/domain"
)

const (
	postsTable     = "posts p"
	postColumns    = "p.id, p.url, p.platform, p.submitted_by, p.created_at, p.status"
	viralColumns   = "p.viral_alert_message, p.viral_alert_milestone, p.viral_alert_created_at, p.viral_alert_acknowledged"
	postsTableName = "posts"
)

type PostRepository interface {
	ListSyncCandidates(ctx context.Context, filters domain.PostFilters) ([]*domain.Post, error)
	GetByID(ctx context.Context, postID string) (*domain.Post, error)
	GetViralAlert(ctx context.Context, postID string) (*domain.ViralAlert, error)
	UpdateViralAlert(ctx context.Context, postID string, alert *domain.ViralAlert) (bool, error)
}

type postRepository struct {
	conn *postgres.Connection
}

func NewPostRepository(conn *postgres.Connection) PostRepository {
	return &postRepository{
		conn: conn,
	}
}

func (r *postRepository) ListSyncCandidates(ctx context.Context, filters domain.PostFilters) ([]*domain.Post, error) {
	queryBuilder := squirrel.
		Select(postColumns+", "+viralColumns).
		From(postsTable).
		OrderBy("p.created_at ASC", "p.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(filters.Statuses) > 0 {
		statuses := make([]string, 0, len(filters.Statuses))
		for _, s := range filters.Statuses {
			statuses = append(statuses, string(s))
		}
		queryBuilder = queryBuilder.Where(squirrel.Eq{"p.status": statuses})
	}

	if !filters.CreatedAfter.IsZero() {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"p.created_at": filters.CreatedAfter})
	}

	if len(filters.AccountIDs) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"p.submitted_by": filters.AccountIDs})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, newPersistenceError("select", postsTableName, err)
	}
	defer rows.Close()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear post: %w", err)
		}
		posts = append(posts, post)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, postID string) (*domain.Post, error) {
	query, args, err := squirrel.
		Select(postColumns + ", " + viralColumns).
		From(postsTable).
		Where(squirrel.Eq{"p.id": postID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	post, err := scanPost(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, newPersistenceError("select", postsTableName, err)
	}

	return post, nil
}

// GetViralAlert retorna nil quando o post ainda não atingiu nenhum marco
func (r *postRepository) GetViralAlert(ctx context.Context, postID string) (*domain.ViralAlert, error) {
	query, args, err := squirrel.
		Select(viralColumns).
		From(postsTable).
		Where(squirrel.Eq{"p.id": postID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var (
		message      sql.NullString
		milestone    sql.NullInt64
		createdAt    sql.NullTime
		acknowledged sql.NullBool
	)

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&message, &milestone, &createdAt, &acknowledged)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, newPersistenceError("select", postsTableName, err)
	}

	return toViralAlert(message, milestone, createdAt, acknowledged), nil
}

// UpdateViralAlert só grava quando o marco é maior que o atual, mesmo com verificações concorrentes
func (r *postRepository) UpdateViralAlert(ctx context.Context, postID string, alert *domain.ViralAlert) (bool, error) {
	query, args, err := squirrel.
		Update(postsTableName).
		Set("viral_alert_message", alert.Message).
		Set("viral_alert_milestone", alert.MilestoneViews).
		Set("viral_alert_created_at", alert.CreatedAt).
		Set("viral_alert_acknowledged", false).
		Where(squirrel.Eq{"id": postID}).
		Where(squirrel.Or{
			squirrel.Eq{"viral_alert_milestone": nil},
			squirrel.Lt{"viral_alert_milestone": alert.MilestoneViews},
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, newPersistenceError("update", postsTableName, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*domain.Post, error) {
	post := &domain.Post{}

	var (
		message      sql.NullString
		milestone    sql.NullInt64
		createdAt    sql.NullTime
		acknowledged sql.NullBool
	)

	if err := row.Scan(
		&post.ID,
		&post.URL,
		&post.Platform,
		&post.SubmittedBy,
		&post.CreatedAt,
		&post.Status,
		&message,
		&milestone,
		&createdAt,
		&acknowledged,
	); err != nil {
		return nil, err
	}

	post.CreatedAt = post.CreatedAt.UTC()
	post.ViralAlert = toViralAlert(message, milestone, createdAt, acknowledged)

	return post, nil
}

func toViralAlert(message sql.NullString, milestone sql.NullInt64, createdAt sql.NullTime, acknowledged sql.NullBool) *domain.ViralAlert {
	if !milestone.Valid {
		return nil
	}

	alert := &domain.ViralAlert{
		Message:        message.String,
		MilestoneViews: milestone.Int64,
		Acknowledged:   acknowledged.Bool,
	}
	if createdAt.Valid {
		alert.CreatedAt = createdAt.Time.In(time.UTC)
	}

	return alert
}
