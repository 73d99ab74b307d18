package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/gitodo/internal/domain"
	"github.com/hitoshi/gitodo/internal/model"
)

// PostgresRepoRepo はPostgreSQLを使用したGitHubリポジトリのリポジトリ。
type PostgresRepoRepo struct {
	db *sql.DB
}

// NewPostgresRepoRepo はPostgresRepoRepoを生成する。
func NewPostgresRepoRepo(db *sql.DB) *PostgresRepoRepo {
	return &PostgresRepoRepo{db: db}
}

// repoRow はrepositoryテーブルの1行を表す。
type repoRow struct {
	ID              string
	GithubID        int64
	Name            string
	FullName        string
	Description     *string
	Language        *string
	HTMLURL         string
	StargazersCount int64
	ConnectedAt     time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// scanTargets はScanに渡すフィールドポインタをSELECT句の列順で返す。
func (row *repoRow) scanTargets() []any {
	return []any{
		&row.ID, &row.GithubID, &row.Name, &row.FullName,
		&row.Description, &row.Language, &row.HTMLURL, &row.StargazersCount,
		&row.ConnectedAt, &row.CreatedAt, &row.UpdatedAt,
	}
}

// toDomain は行データを検証付きでドメインエンティティに変換する。
func (row repoRow) toDomain() (*domain.Repository, error) {
	if _, err := uuid.Parse(row.ID); err != nil {
		return nil, model.NewDataError("decode repository row", fmt.Errorf("invalid UUID %q: %w", row.ID, err))
	}
	name, err := domain.NewRepositoryName(row.Name)
	if err != nil {
		return nil, model.NewDataError("decode repository row", fmt.Errorf("invalid name: %w", err))
	}
	fullName, err := domain.NewRepositoryFullName(row.FullName)
	if err != nil {
		return nil, model.NewDataError("decode repository row", fmt.Errorf("invalid full name: %w", err))
	}
	htmlURL, err := domain.NewRepositoryURL(row.HTMLURL)
	if err != nil {
		return nil, model.NewDataError("decode repository row", fmt.Errorf("invalid html url: %w", err))
	}
	return &domain.Repository{
		ID:              row.ID,
		GithubID:        row.GithubID,
		Name:            name,
		FullName:        fullName,
		Description:     row.Description,
		Language:        row.Language,
		HTMLURL:         htmlURL,
		StargazersCount: row.StargazersCount,
		ConnectedAt:     row.ConnectedAt,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}, nil
}

const repoColumns = `id, github_id, name, full_name, description, language, html_url, stargazers_count, connected_at, created_at, updated_at`

// FindByID は指定IDのリポジトリを取得する。見つからない場合はnilを返す。
func (r *PostgresRepoRepo) FindByID(ctx context.Context, id string) (*domain.Repository, error) {
	var row repoRow
	err := r.db.QueryRowContext(ctx,
		`SELECT `+repoColumns+` FROM repository WHERE id = $1`,
		id,
	).Scan(row.scanTargets()...)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find repository by ID: %w", err)
	}

	return row.toDomain()
}

// FindAll は全リポジトリをcreated_at降順で取得する。
func (r *PostgresRepoRepo) FindAll(ctx context.Context) ([]domain.Repository, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+repoColumns+` FROM repository ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}
	defer rows.Close()

	return collectRepoRows(rows)
}

// collectRepoRows は結果セットを検証付きでドメインエンティティ列に変換する。
func collectRepoRows(rows *sql.Rows) ([]domain.Repository, error) {
	var repos []domain.Repository
	for rows.Next() {
		var row repoRow
		if err := rows.Scan(row.scanTargets()...); err != nil {
			return nil, fmt.Errorf("failed to scan repository row: %w", err)
		}
		repo, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		repos = append(repos, *repo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate repository rows: %w", err)
	}
	return repos, nil
}

// Insert はリポジトリを新規挿入する。
// github_idの重複は事前SELECTではなくON CONFLICT DO NOTHINGの
// 1回の条件付き書き込みで検出し、ConflictErrorとして返す。
func (r *PostgresRepoRepo) Insert(ctx context.Context, repo domain.Repository) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO repository (`+repoColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (github_id) DO NOTHING`,
		repo.ID, repo.GithubID, repo.Name.String(), repo.FullName.String(),
		repo.Description, repo.Language, repo.HTMLURL.String(), repo.StargazersCount,
		repo.ConnectedAt, repo.CreatedAt, repo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert repository: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewConflictError(fmt.Sprintf("Repository with GitHub ID %d already exists", repo.GithubID))
	}
	return nil
}

// Update は既存リポジトリを上書きする。github_id、connected_at、created_atは更新しない。
func (r *PostgresRepoRepo) Update(ctx context.Context, repo domain.Repository) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE repository
		 SET name = $1, full_name = $2, description = $3, language = $4,
		     html_url = $5, stargazers_count = $6, updated_at = $7
		 WHERE id = $8`,
		repo.Name.String(), repo.FullName.String(), repo.Description, repo.Language,
		repo.HTMLURL.String(), repo.StargazersCount, repo.UpdatedAt, repo.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update repository: %w", err)
	}
	return nil
}

// Delete は指定IDのリポジトリを削除する。対象が0行の場合はNotFoundErrorを返す。
// 関連するrepository_labelはCASCADE削除される。
func (r *PostgresRepoRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM repository WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete repository: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewNotFoundError("repository", id)
	}
	return nil
}

// compile-time interface check
var _ RepoRepository = (*PostgresRepoRepo)(nil)
