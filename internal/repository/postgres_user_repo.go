package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/gitodo/internal/model"
)

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, github_id, username, name, email, avatar_url, access_token, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(
		&user.ID, &user.GithubID, &user.Username, &user.Name, &user.Email,
		&user.AvatarURL, &user.AccessToken, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// Upsert はgithub_idをキーとした原子的なINSERT ON CONFLICT DO UPDATEを実行する。
// 既存行がある場合はプロフィール情報とアクセストークンのみ更新され、
// id、github_id、created_atはRETURNINGで既存の値が返る。
func (r *PostgresUserRepo) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	var saved model.User
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (id, github_id, username, name, email, avatar_url, access_token, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (github_id) DO UPDATE SET
		   username = EXCLUDED.username,
		   name = EXCLUDED.name,
		   email = EXCLUDED.email,
		   avatar_url = EXCLUDED.avatar_url,
		   access_token = EXCLUDED.access_token,
		   updated_at = EXCLUDED.updated_at
		 RETURNING id, github_id, username, name, email, avatar_url, access_token, created_at, updated_at`,
		user.ID, user.GithubID, user.Username, user.Name, user.Email,
		user.AvatarURL, user.AccessToken, user.CreatedAt, user.UpdatedAt,
	).Scan(
		&saved.ID, &saved.GithubID, &saved.Username, &saved.Name, &saved.Email,
		&saved.AvatarURL, &saved.AccessToken, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return &saved, nil
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
