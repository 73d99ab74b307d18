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

// PostgresLabelRepo はPostgreSQLを使用したラベルリポジトリ。
type PostgresLabelRepo struct {
	db *sql.DB
}

// NewPostgresLabelRepo はPostgresLabelRepoを生成する。
func NewPostgresLabelRepo(db *sql.DB) *PostgresLabelRepo {
	return &PostgresLabelRepo{db: db}
}

// labelRow はlabelテーブルの1行を表す。
type labelRow struct {
	ID          string
	Name        string
	Description *string
	Color       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// toDomain は行データを検証付きでドメインエンティティに変換する。
func (row labelRow) toDomain() (*domain.Label, error) {
	if _, err := uuid.Parse(row.ID); err != nil {
		return nil, model.NewDataError("decode label row", fmt.Errorf("invalid UUID %q: %w", row.ID, err))
	}
	name, err := domain.NewLabelName(row.Name)
	if err != nil {
		return nil, model.NewDataError("decode label row", fmt.Errorf("invalid name: %w", err))
	}
	return &domain.Label{
		ID:          row.ID,
		Name:        name,
		Description: row.Description,
		Color:       row.Color,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

// FindByID は指定IDのラベルを取得する。見つからない場合はnilを返す。
func (r *PostgresLabelRepo) FindByID(ctx context.Context, id string) (*domain.Label, error) {
	var row labelRow
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, color, created_at, updated_at FROM label WHERE id = $1`,
		id,
	).Scan(&row.ID, &row.Name, &row.Description, &row.Color, &row.CreatedAt, &row.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find label by ID: %w", err)
	}

	return row.toDomain()
}

// FindAll は全ラベルをname昇順で取得する。
func (r *PostgresLabelRepo) FindAll(ctx context.Context) ([]domain.Label, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, color, created_at, updated_at FROM label ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	defer rows.Close()

	return collectLabelRows(rows)
}

// collectLabelRows は結果セットを検証付きでドメインエンティティ列に変換する。
func collectLabelRows(rows *sql.Rows) ([]domain.Label, error) {
	var labels []domain.Label
	for rows.Next() {
		var row labelRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Description, &row.Color, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan label row: %w", err)
		}
		label, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		labels = append(labels, *label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate label rows: %w", err)
	}
	return labels, nil
}

// Insert はラベルを新規挿入する。nameの重複はON CONFLICT DO NOTHINGで
// 原子的に検出し、ConflictErrorとして返す。
func (r *PostgresLabelRepo) Insert(ctx context.Context, label domain.Label) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO label (id, name, description, color, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (name) DO NOTHING`,
		label.ID, label.Name.String(), label.Description, label.Color,
		label.CreatedAt, label.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert label: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewConflictError(fmt.Sprintf("Label with name '%s' already exists", label.Name.String()))
	}
	return nil
}

// Update は既存ラベルを上書きする。created_atは更新しない。
func (r *PostgresLabelRepo) Update(ctx context.Context, label domain.Label) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE label SET name = $1, description = $2, color = $3, updated_at = $4 WHERE id = $5`,
		label.Name.String(), label.Description, label.Color, label.UpdatedAt, label.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update label: %w", err)
	}
	return nil
}

// Delete は指定IDのラベルを削除する。対象が0行の場合はNotFoundErrorを返す。
// 関連するrepository_labelはCASCADE削除される。
func (r *PostgresLabelRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM label WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewNotFoundError("label", id)
	}
	return nil
}

// compile-time interface check
var _ LabelRepository = (*PostgresLabelRepo)(nil)
