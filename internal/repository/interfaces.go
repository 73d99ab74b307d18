// Package repository はデータ永続化のインターフェースとPostgreSQL実装を定義する。
// 読み取り時には保存済みデータに対してドメイン検証を再実行し、
// 破損した行は「見つからない」とは区別されるDataErrorとして報告する。
package repository

import (
	"context"

	"github.com/hitoshi/gitodo/internal/domain"
	"github.com/hitoshi/gitodo/internal/model"
)

// TodoRepository はTodoデータの永続化インターフェース。
// workflow.Store[domain.Todo]を満たす。
type TodoRepository interface {
	// FindByID は指定IDのTodoを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*domain.Todo, error)
	// FindAll は全Todoをcreated_at降順で取得する。
	FindAll(ctx context.Context) ([]domain.Todo, error)
	// Insert はTodoを新規挿入する。
	Insert(ctx context.Context, todo domain.Todo) error
	// Update は既存Todoを上書きする。created_atは更新しない。
	Update(ctx context.Context, todo domain.Todo) error
	// Delete は指定IDのTodoを削除する。対象が0行の場合はNotFoundErrorを返す。
	Delete(ctx context.Context, id string) error
}

// RepoRepository はGitHubリポジトリデータの永続化インターフェース。
// workflow.Store[domain.Repository]を満たす。
type RepoRepository interface {
	// FindByID は指定IDのリポジトリを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*domain.Repository, error)
	// FindAll は全リポジトリをcreated_at降順で取得する。
	FindAll(ctx context.Context) ([]domain.Repository, error)
	// Insert はリポジトリを新規挿入する。github_idの重複はConflictErrorを返す。
	// 重複判定は事前SELECTではなくINSERT ON CONFLICT DO NOTHINGの1回の条件付き書き込みで行う。
	Insert(ctx context.Context, repo domain.Repository) error
	// Update は既存リポジトリを上書きする。github_id、connected_at、created_atは更新しない。
	Update(ctx context.Context, repo domain.Repository) error
	// Delete は指定IDのリポジトリを削除する。対象が0行の場合はNotFoundErrorを返す。
	Delete(ctx context.Context, id string) error
}

// LabelRepository はラベルデータの永続化インターフェース。
// workflow.Store[domain.Label]を満たす。
type LabelRepository interface {
	// FindByID は指定IDのラベルを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*domain.Label, error)
	// FindAll は全ラベルをname昇順で取得する。
	FindAll(ctx context.Context) ([]domain.Label, error)
	// Insert はラベルを新規挿入する。nameの重複はConflictErrorを返す。
	Insert(ctx context.Context, label domain.Label) error
	// Update は既存ラベルを上書きする。created_atは更新しない。
	Update(ctx context.Context, label domain.Label) error
	// Delete は指定IDのラベルを削除する。対象が0行の場合はNotFoundErrorを返す。
	Delete(ctx context.Context, id string) error
}

// RepoLabelRepository はリポジトリとラベルの関連の永続化インターフェース。
type RepoLabelRepository interface {
	// Attach はリポジトリにラベルを関連付ける。既に関連付け済みの場合は
	// ConflictErrorを返す。判定はINSERT ON CONFLICT DO NOTHINGで原子的に行う。
	Attach(ctx context.Context, repositoryID, labelID string) error
	// Detach は関連を削除する。関連が存在しない場合はNotFoundErrorを返す。
	Detach(ctx context.Context, repositoryID, labelID string) error
	// ListLabelsByRepository はリポジトリに付与されたラベルをname昇順で取得する。
	ListLabelsByRepository(ctx context.Context, repositoryID string) ([]domain.Label, error)
	// ListRepositoriesByLabel はラベルが付与されたリポジトリをcreated_at降順で取得する。
	ListRepositoriesByLabel(ctx context.Context, labelID string) ([]domain.Repository, error)
}

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)
	// Upsert はgithub_idをキーとした原子的なINSERT ON CONFLICT DO UPDATEを実行し、
	// 保存後のユーザーを返す。既存ユーザーのid、github_id、created_atは変更されない。
	Upsert(ctx context.Context, user *model.User) (*model.User, error)
}
