// Package auth はGitHub OAuth認証フローとJWTセッショントークンを提供する。
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/gitodo/internal/model"
	"github.com/hitoshi/gitodo/internal/repository"
)

// OAuthProvider はOAuth認証プロバイダーのインターフェース。
type OAuthProvider interface {
	// GetLoginURL はOAuth認証URLを生成する。
	GetLoginURL(state string) string
	// ExchangeCode は認可コードをアクセストークンに交換する。
	ExchangeCode(ctx context.Context, code string) (string, error)
	// FetchUser はアクセストークンでプロバイダーのユーザー情報を取得する。
	FetchUser(ctx context.Context, accessToken string) (*GitHubUser, error)
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	oauth    OAuthProvider
	userRepo repository.UserRepository
	tokens   *TokenManager
}

// NewService はServiceを生成する。
func NewService(oauth OAuthProvider, userRepo repository.UserRepository, tokens *TokenManager) *Service {
	return &Service{
		oauth:    oauth,
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// GetLoginURL はOAuth認証URLを生成する。
func (s *Service) GetLoginURL(state string) string {
	return s.oauth.GetLoginURL(state)
}

// VerifyToken はJWTを検証し、subjectのユーザーIDを返す。
func (s *Service) VerifyToken(tokenString string) (string, error) {
	return s.tokens.Verify(tokenString)
}

// GetUser は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (s *Service) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// HandleCallback はOAuthコールバックを処理し、JWTを発行する。
// コード交換とプロフィール取得の失敗はAuthErrorとして返し、
// github_idをキーとした原子的なupsertでユーザーを作成または更新する。
func (s *Service) HandleCallback(ctx context.Context, code string) (string, *model.User, error) {
	// 1. 認可コードをアクセストークンに交換
	accessToken, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		return "", nil, model.NewAuthError("failed to exchange oauth code", err)
	}

	// 2. アクセストークンでGitHubユーザー情報を取得
	ghUser, err := s.oauth.FetchUser(ctx, accessToken)
	if err != nil {
		return "", nil, model.NewAuthError("failed to fetch github user", err)
	}

	// 3. github_idをキーにユーザーを原子的にupsert
	now := time.Now().UTC()
	user := &model.User{
		ID:          uuid.New().String(),
		GithubID:    ghUser.ID,
		Username:    ghUser.Login,
		Name:        ghUser.Name,
		Email:       ghUser.Email,
		AvatarURL:   ghUser.AvatarURL,
		AccessToken: accessToken,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	saved, err := s.userRepo.Upsert(ctx, user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	// 4. JWTを発行
	token, err := s.tokens.Issue(saved.ID, now)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("user logged in",
		slog.String("user_id", saved.ID),
		slog.String("username", saved.Username),
	)

	return token, saved, nil
}

// GenerateState はCSRF対策用の暗号的に安全なstateパラメータを生成する。
func GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
