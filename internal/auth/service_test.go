package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/gitodo/internal/model"
)

// mockOAuthProvider はテスト用のOAuthProviderモック。
type mockOAuthProvider struct {
	getLoginURLFunc  func(state string) string
	exchangeCodeFunc func(ctx context.Context, code string) (string, error)
	fetchUserFunc    func(ctx context.Context, accessToken string) (*GitHubUser, error)
}

func (m *mockOAuthProvider) GetLoginURL(state string) string {
	if m.getLoginURLFunc != nil {
		return m.getLoginURLFunc(state)
	}
	return "https://example.com/authorize?state=" + state
}

func (m *mockOAuthProvider) ExchangeCode(ctx context.Context, code string) (string, error) {
	return m.exchangeCodeFunc(ctx, code)
}

func (m *mockOAuthProvider) FetchUser(ctx context.Context, accessToken string) (*GitHubUser, error) {
	return m.fetchUserFunc(ctx, accessToken)
}

// mockUserRepo はテスト用のUserRepositoryモック。
type mockUserRepo struct {
	findByIDFunc func(ctx context.Context, id string) (*model.User, error)
	upsertFunc   func(ctx context.Context, user *model.User) (*model.User, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockUserRepo) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	return m.upsertFunc(ctx, user)
}

func strPtr(s string) *string { return &s }

func TestService_HandleCallback_Success(t *testing.T) {
	oauth := &mockOAuthProvider{
		exchangeCodeFunc: func(ctx context.Context, code string) (string, error) {
			if code != "valid-code" {
				t.Errorf("unexpected code: %q", code)
			}
			return "gho_access_token", nil
		},
		fetchUserFunc: func(ctx context.Context, accessToken string) (*GitHubUser, error) {
			if accessToken != "gho_access_token" {
				t.Errorf("unexpected access token: %q", accessToken)
			}
			return &GitHubUser{
				ID:        583231,
				Login:     "octocat",
				Name:      strPtr("The Octocat"),
				AvatarURL: strPtr("https://avatars.githubusercontent.com/u/583231"),
			}, nil
		},
	}

	var upserted *model.User
	users := &mockUserRepo{
		upsertFunc: func(ctx context.Context, user *model.User) (*model.User, error) {
			upserted = user
			return user, nil
		},
	}

	tokens := NewTokenManager("test-secret", 7*24*time.Hour)
	service := NewService(oauth, users, tokens)

	token, user, err := service.HandleCallback(context.Background(), "valid-code")
	if err != nil {
		t.Fatalf("HandleCallback() error = %v", err)
	}

	if upserted == nil {
		t.Fatal("expected Upsert to be called")
	}
	if upserted.GithubID != 583231 {
		t.Errorf("githubID = %d, want %d", upserted.GithubID, 583231)
	}
	if upserted.Username != "octocat" {
		t.Errorf("username = %q, want %q", upserted.Username, "octocat")
	}
	if upserted.AccessToken != "gho_access_token" {
		t.Errorf("accessToken = %q, want %q", upserted.AccessToken, "gho_access_token")
	}
	if _, err := uuid.Parse(upserted.ID); err != nil {
		t.Errorf("expected UUID user ID, got %q", upserted.ID)
	}

	// 発行されたJWTは保存されたユーザーIDをsubjectに持つ
	subject, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if subject != user.ID {
		t.Errorf("token subject = %q, want %q", subject, user.ID)
	}
}

func TestService_HandleCallback_ExchangeFails(t *testing.T) {
	oauth := &mockOAuthProvider{
		exchangeCodeFunc: func(ctx context.Context, code string) (string, error) {
			return "", errors.New("bad_verification_code")
		},
	}
	users := &mockUserRepo{
		upsertFunc: func(ctx context.Context, user *model.User) (*model.User, error) {
			t.Fatal("Upsert must not be called when code exchange fails")
			return nil, nil
		},
	}

	service := NewService(oauth, users, NewTokenManager("test-secret", time.Hour))

	_, _, err := service.HandleCallback(context.Background(), "bad-code")
	if err == nil {
		t.Fatal("expected error")
	}
	var authErr *model.AuthError
	if !errors.As(err, &authErr) {
		t.Errorf("expected AuthError, got %T: %v", err, err)
	}
}

func TestService_HandleCallback_FetchUserFails(t *testing.T) {
	oauth := &mockOAuthProvider{
		exchangeCodeFunc: func(ctx context.Context, code string) (string, error) {
			return "gho_access_token", nil
		},
		fetchUserFunc: func(ctx context.Context, accessToken string) (*GitHubUser, error) {
			return nil, errors.New("401 unauthorized")
		},
	}
	users := &mockUserRepo{
		upsertFunc: func(ctx context.Context, user *model.User) (*model.User, error) {
			t.Fatal("Upsert must not be called when user fetch fails")
			return nil, nil
		},
	}

	service := NewService(oauth, users, NewTokenManager("test-secret", time.Hour))

	_, _, err := service.HandleCallback(context.Background(), "valid-code")
	if err == nil {
		t.Fatal("expected error")
	}
	var authErr *model.AuthError
	if !errors.As(err, &authErr) {
		t.Errorf("expected AuthError, got %T: %v", err, err)
	}
}

func TestService_HandleCallback_UpsertFails(t *testing.T) {
	oauth := &mockOAuthProvider{
		exchangeCodeFunc: func(ctx context.Context, code string) (string, error) {
			return "gho_access_token", nil
		},
		fetchUserFunc: func(ctx context.Context, accessToken string) (*GitHubUser, error) {
			return &GitHubUser{ID: 1, Login: "octocat"}, nil
		},
	}
	users := &mockUserRepo{
		upsertFunc: func(ctx context.Context, user *model.User) (*model.User, error) {
			return nil, errors.New("database is down")
		},
	}

	service := NewService(oauth, users, NewTokenManager("test-secret", time.Hour))

	_, _, err := service.HandleCallback(context.Background(), "valid-code")
	if err == nil {
		t.Fatal("expected error")
	}
	// 永続化の失敗は認証エラーではない
	var authErr *model.AuthError
	if errors.As(err, &authErr) {
		t.Errorf("upsert failure must not be an AuthError: %v", err)
	}
}

func TestGenerateState(t *testing.T) {
	a, err := GenerateState()
	if err != nil {
		t.Fatalf("GenerateState() error = %v", err)
	}
	b, err := GenerateState()
	if err != nil {
		t.Fatalf("GenerateState() error = %v", err)
	}

	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
	if a == b {
		t.Error("expected distinct state values")
	}
}
