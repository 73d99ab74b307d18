package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/gitodo/internal/domain"
	"github.com/hitoshi/gitodo/internal/model"
)

// PostgresRepoLabelRepo はPostgreSQLを使用したリポジトリ・ラベル関連のリポジトリ。
type PostgresRepoLabelRepo struct {
	db *sql.DB
}

// NewPostgresRepoLabelRepo はPostgresRepoLabelRepoを生成する。
func NewPostgresRepoLabelRepo(db *sql.DB) *PostgresRepoLabelRepo {
	return &PostgresRepoLabelRepo{db: db}
}

// Attach はリポジトリにラベルを関連付ける。
// 既に関連付け済みかどうかは事前SELECTではなくON CONFLICT DO NOTHINGの
// 1回の条件付き書き込みで判定し、重複はConflictErrorとして返す。
func (r *PostgresRepoLabelRepo) Attach(ctx context.Context, repositoryID, labelID string) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO repository_label (repository_id, label_id, created_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (repository_id, label_id) DO NOTHING`,
		repositoryID, labelID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to attach label to repository: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewConflictError("This label is already applied to the repository")
	}
	return nil
}

// Detach は関連を削除する。対象が0行の場合はNotFoundErrorを返す。
func (r *PostgresRepoLabelRepo) Detach(ctx context.Context, repositoryID, labelID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM repository_label WHERE repository_id = $1 AND label_id = $2`,
		repositoryID, labelID,
	)
	if err != nil {
		return fmt.Errorf("failed to detach label from repository: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewNotFoundError("repository label", repositoryID+"/"+labelID)
	}
	return nil
}

// ListLabelsByRepository はリポジトリに付与されたラベルをname昇順で取得する。
func (r *PostgresRepoLabelRepo) ListLabelsByRepository(ctx context.Context, repositoryID string) ([]domain.Label, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT l.id, l.name, l.description, l.color, l.created_at, l.updated_at
		 FROM label l
		 JOIN repository_label rl ON l.id = rl.label_id
		 WHERE rl.repository_id = $1
		 ORDER BY l.name ASC`,
		repositoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels by repository: %w", err)
	}
	defer rows.Close()

	return collectLabelRows(rows)
}

// ListRepositoriesByLabel はラベルが付与されたリポジトリをcreated_at降順で取得する。
func (r *PostgresRepoLabelRepo) ListRepositoriesByLabel(ctx context.Context, labelID string) ([]domain.Repository, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.id, r.github_id, r.name, r.full_name, r.description, r.language,
		        r.html_url, r.stargazers_count, r.connected_at, r.created_at, r.updated_at
		 FROM repository r
		 JOIN repository_label rl ON r.id = rl.repository_id
		 WHERE rl.label_id = $1
		 ORDER BY r.created_at DESC`,
		labelID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories by label: %w", err)
	}
	defer rows.Close()

	return collectRepoRows(rows)
}

// compile-time interface check
var _ RepoLabelRepository = (*PostgresRepoLabelRepo)(nil)
