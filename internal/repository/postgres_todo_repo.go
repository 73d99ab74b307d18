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

// PostgresTodoRepo はPostgreSQLを使用したTodoリポジトリ。
type PostgresTodoRepo struct {
	db *sql.DB
}

// NewPostgresTodoRepo はPostgresTodoRepoを生成する。
func NewPostgresTodoRepo(db *sql.DB) *PostgresTodoRepo {
	return &PostgresTodoRepo{db: db}
}

// todoRow はtodoテーブルの1行を表す。ドメインへの変換時に検証を再実行する。
type todoRow struct {
	ID        string
	Title     string
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// toDomain は行データを検証付きでドメインエンティティに変換する。
// 破損した行はDataErrorとして報告し、空の結果として扱わない。
func (row todoRow) toDomain() (*domain.Todo, error) {
	if _, err := uuid.Parse(row.ID); err != nil {
		return nil, model.NewDataError("decode todo row", fmt.Errorf("invalid UUID %q: %w", row.ID, err))
	}
	title, err := domain.NewTodoTitle(row.Title)
	if err != nil {
		return nil, model.NewDataError("decode todo row", fmt.Errorf("invalid title: %w", err))
	}
	return &domain.Todo{
		ID:        row.ID,
		Title:     title,
		Completed: row.Completed,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// FindByID は指定IDのTodoを取得する。見つからない場合はnilを返す。
func (r *PostgresTodoRepo) FindByID(ctx context.Context, id string) (*domain.Todo, error) {
	var row todoRow
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, completed, created_at, updated_at FROM todo WHERE id = $1`,
		id,
	).Scan(&row.ID, &row.Title, &row.Completed, &row.CreatedAt, &row.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find todo by ID: %w", err)
	}

	return row.toDomain()
}

// FindAll は全Todoをcreated_at降順で取得する。
func (r *PostgresTodoRepo) FindAll(ctx context.Context) ([]domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, completed, created_at, updated_at FROM todo ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	var todos []domain.Todo
	for rows.Next() {
		var row todoRow
		if err := rows.Scan(&row.ID, &row.Title, &row.Completed, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan todo row: %w", err)
		}
		todo, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todo rows: %w", err)
	}

	return todos, nil
}

// Insert はTodoを新規挿入する。
func (r *PostgresTodoRepo) Insert(ctx context.Context, todo domain.Todo) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO todo (id, title, completed, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		todo.ID, todo.Title.String(), todo.Completed, todo.CreatedAt, todo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert todo: %w", err)
	}
	return nil
}

// Update は既存Todoを上書きする。created_atは更新しない。
func (r *PostgresTodoRepo) Update(ctx context.Context, todo domain.Todo) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE todo SET title = $1, completed = $2, updated_at = $3 WHERE id = $4`,
		todo.Title.String(), todo.Completed, todo.UpdatedAt, todo.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	return nil
}

// Delete は指定IDのTodoを削除する。対象が0行の場合はNotFoundErrorを返す。
// 0行は存在確認後に他のリクエストが先に削除した競合を意味するため、
// 黙って成功として扱わない。
func (r *PostgresTodoRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todo WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewNotFoundError("todo", id)
	}
	return nil
}

// compile-time interface check
var _ TodoRepository = (*PostgresTodoRepo)(nil)
