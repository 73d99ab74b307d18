package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/gitodo/internal/auth"
	"github.com/hitoshi/gitodo/internal/domain"
	"github.com/hitoshi/gitodo/internal/label"
	"github.com/hitoshi/gitodo/internal/metrics"
	"github.com/hitoshi/gitodo/internal/model"
	"github.com/hitoshi/gitodo/internal/repo"
	"github.com/hitoshi/gitodo/internal/todo"
)

// memTodoStore はメモリ上のTodoRepository実装。
// created_at降順の一覧などPostgres実装と同じ契約を再現する。
type memTodoStore struct {
	mu    sync.Mutex
	todos map[string]domain.Todo
}

func newMemTodoStore() *memTodoStore {
	return &memTodoStore{todos: make(map[string]domain.Todo)}
}

func (s *memTodoStore) FindByID(ctx context.Context, id string) (*domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.todos[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (s *memTodoStore) FindAll(ctx context.Context) ([]domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	todos := make([]domain.Todo, 0, len(s.todos))
	for _, t := range s.todos {
		todos = append(todos, t)
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].CreatedAt.After(todos[j].CreatedAt) })
	return todos, nil
}

func (s *memTodoStore) Insert(ctx context.Context, t domain.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos[t.ID] = t
	return nil
}

func (s *memTodoStore) Update(ctx context.Context, t domain.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos[t.ID] = t
	return nil
}

func (s *memTodoStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.todos[id]; !ok {
		return model.NewNotFoundError("todo", id)
	}
	delete(s.todos, id)
	return nil
}

// memRepoStore はメモリ上のRepoRepository実装。github_idの一意性を再現する。
type memRepoStore struct {
	mu    sync.Mutex
	repos map[string]domain.Repository
}

func newMemRepoStore() *memRepoStore {
	return &memRepoStore{repos: make(map[string]domain.Repository)}
}

func (s *memRepoStore) FindByID(ctx context.Context, id string) (*domain.Repository, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.repos[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (s *memRepoStore) FindAll(ctx context.Context) ([]domain.Repository, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	repos := make([]domain.Repository, 0, len(s.repos))
	for _, r := range s.repos {
		repos = append(repos, r)
	}
	sort.Slice(repos, func(i, j int) bool { return repos[i].CreatedAt.After(repos[j].CreatedAt) })
	return repos, nil
}

func (s *memRepoStore) Insert(ctx context.Context, r domain.Repository) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.repos {
		if existing.GithubID == r.GithubID {
			return model.NewConflictError(fmt.Sprintf("Repository with GitHub ID %d already exists", r.GithubID))
		}
	}
	s.repos[r.ID] = r
	return nil
}

func (s *memRepoStore) Update(ctx context.Context, r domain.Repository) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repos[r.ID] = r
	return nil
}

func (s *memRepoStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.repos[id]; !ok {
		return model.NewNotFoundError("repository", id)
	}
	delete(s.repos, id)
	return nil
}

// memLabelStore はメモリ上のLabelRepository実装。nameの一意性を再現する。
type memLabelStore struct {
	mu     sync.Mutex
	labels map[string]domain.Label
}

func newMemLabelStore() *memLabelStore {
	return &memLabelStore{labels: make(map[string]domain.Label)}
}

func (s *memLabelStore) FindByID(ctx context.Context, id string) (*domain.Label, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.labels[id]; ok {
		return &l, nil
	}
	return nil, nil
}

func (s *memLabelStore) FindAll(ctx context.Context) ([]domain.Label, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	labels := make([]domain.Label, 0, len(s.labels))
	for _, l := range s.labels {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].Name.String() < labels[j].Name.String() })
	return labels, nil
}

func (s *memLabelStore) Insert(ctx context.Context, l domain.Label) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.labels {
		if existing.Name.String() == l.Name.String() {
			return model.NewConflictError(fmt.Sprintf("Label with name '%s' already exists", l.Name.String()))
		}
	}
	s.labels[l.ID] = l
	return nil
}

func (s *memLabelStore) Update(ctx context.Context, l domain.Label) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.labels[l.ID] = l
	return nil
}

func (s *memLabelStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.labels[id]; !ok {
		return model.NewNotFoundError("label", id)
	}
	delete(s.labels, id)
	return nil
}

// memRepoLabelStore はメモリ上のRepoLabelRepository実装。
type memRepoLabelStore struct {
	mu     sync.Mutex
	pairs  map[string]bool
	labels *memLabelStore
	repos  *memRepoStore
}

func newMemRepoLabelStore(labels *memLabelStore, repos *memRepoStore) *memRepoLabelStore {
	return &memRepoLabelStore{
		pairs:  make(map[string]bool),
		labels: labels,
		repos:  repos,
	}
}

func pairKey(repositoryID, labelID string) string {
	return repositoryID + "/" + labelID
}

func (s *memRepoLabelStore) Attach(ctx context.Context, repositoryID, labelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey(repositoryID, labelID)
	if s.pairs[key] {
		return model.NewConflictError("This label is already applied to the repository")
	}
	s.pairs[key] = true
	return nil
}

func (s *memRepoLabelStore) Detach(ctx context.Context, repositoryID, labelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey(repositoryID, labelID)
	if !s.pairs[key] {
		return model.NewNotFoundError("repository label", key)
	}
	delete(s.pairs, key)
	return nil
}

func (s *memRepoLabelStore) ListLabelsByRepository(ctx context.Context, repositoryID string) ([]domain.Label, error) {
	s.mu.Lock()
	keys := make([]string, 0, len(s.pairs))
	for key := range s.pairs {
		keys = append(keys, key)
	}
	s.mu.Unlock()

	var labels []domain.Label
	for _, key := range keys {
		if strings.HasPrefix(key, repositoryID+"/") {
			l, err := s.labels.FindByID(ctx, strings.TrimPrefix(key, repositoryID+"/"))
			if err != nil {
				return nil, err
			}
			if l != nil {
				labels = append(labels, *l)
			}
		}
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].Name.String() < labels[j].Name.String() })
	return labels, nil
}

func (s *memRepoLabelStore) ListRepositoriesByLabel(ctx context.Context, labelID string) ([]domain.Repository, error) {
	s.mu.Lock()
	keys := make([]string, 0, len(s.pairs))
	for key := range s.pairs {
		keys = append(keys, key)
	}
	s.mu.Unlock()

	var repos []domain.Repository
	for _, key := range keys {
		if strings.HasSuffix(key, "/"+labelID) {
			r, err := s.repos.FindByID(ctx, strings.TrimSuffix(key, "/"+labelID))
			if err != nil {
				return nil, err
			}
			if r != nil {
				repos = append(repos, *r)
			}
		}
	}
	sort.Slice(repos, func(i, j int) bool { return repos[i].CreatedAt.After(repos[j].CreatedAt) })
	return repos, nil
}

// memUserStore はメモリ上のUserRepository実装。
type memUserStore struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]model.User)}
}

func (s *memUserStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *memUserStore) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.GithubID == user.GithubID {
			existing.Username = user.Username
			existing.Name = user.Name
			existing.Email = user.Email
			existing.AvatarURL = user.AvatarURL
			existing.AccessToken = user.AccessToken
			existing.UpdatedAt = user.UpdatedAt
			s.users[existing.ID] = existing
			return &existing, nil
		}
	}
	s.users[user.ID] = *user
	saved := *user
	return &saved, nil
}

// testEnv は結合テスト用に組み立てたサーバーと認証情報。
type testEnv struct {
	server *httptest.Server
	token  string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	todoStore := newMemTodoStore()
	repoStore := newMemRepoStore()
	labelStore := newMemLabelStore()
	repoLabelStore := newMemRepoLabelStore(labelStore, repoStore)
	userStore := newMemUserStore()

	tokens := auth.NewTokenManager("integration-test-secret", 7*24*time.Hour)
	oauth := auth.NewGitHubOAuthProvider(auth.GitHubOAuthConfig{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
	})
	authService := auth.NewService(oauth, userStore, tokens)

	// 認証済みユーザーを直接作成
	now := time.Now().UTC()
	user := &model.User{
		ID:        "9d2e7c3a-0000-4000-8000-0000000000aa",
		GithubID:  583231,
		Username:  "octocat",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := userStore.Upsert(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	token, err := tokens.Issue(user.ID, now)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	router := NewRouter(&RouterDeps{
		TokenVerifier:     authService,
		UserFinder:        authService,
		CORSAllowedOrigin: "http://localhost:5173",
		Logger:            slog.New(slog.NewJSONHandler(io.Discard, nil)),
		MetricsCollector:  collector,
		MetricsGatherer:   reg,
		AuthService:       authService,
		AuthConfig:        AuthHandlerConfig{FrontendURL: "http://localhost:5173"},
		TodoService:       todo.NewService(todoStore),
		RepoService:       repo.NewService(repoStore, labelStore, repoLabelStore),
		LabelService:      label.NewService(labelStore),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{server: server, token: token}
}

// doRequest は認証ヘッダー付きのリクエストを送信しレスポンスを返す。
func (e *testEnv) doRequest(t *testing.T, method, path, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.token)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	return resp, respBody
}

func TestIntegration_TodoLifecycle(t *testing.T) {
	env := setupTestEnv(t)

	// 作成: 201、completed=false、created_at==updated_at
	resp, body := env.doRequest(t, http.MethodPost, "/api/todos", `{"title":"write report"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status = %d, body = %s", resp.StatusCode, body)
	}
	var created todoResponse
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("failed to parse create response: %v", err)
	}
	if created.Completed {
		t.Error("new todo must not be completed")
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Error("created_at and updated_at must be equal at creation")
	}

	// 部分更新: completedのみ指定、タイトルは保持、updated_atは進む
	resp, body = env.doRequest(t, http.MethodPut, "/api/todos/"+created.ID, `{"completed":true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: status = %d, body = %s", resp.StatusCode, body)
	}
	var updated todoResponse
	if err := json.Unmarshal(body, &updated); err != nil {
		t.Fatalf("failed to parse update response: %v", err)
	}
	if !updated.Completed {
		t.Error("expected completed true")
	}
	if updated.Title != "write report" {
		t.Errorf("title = %q, want %q", updated.Title, "write report")
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Error("updated_at must advance past created_at")
	}

	// 一覧
	resp, body = env.doRequest(t, http.MethodGet, "/api/todos", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: status = %d", resp.StatusCode)
	}
	var todos []todoResponse
	if err := json.Unmarshal(body, &todos); err != nil {
		t.Fatalf("failed to parse list response: %v", err)
	}
	if len(todos) != 1 {
		t.Fatalf("expected 1 todo, got %d", len(todos))
	}

	// 削除: 204
	resp, _ = env.doRequest(t, http.MethodDelete, "/api/todos/"+created.ID, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: status = %d", resp.StatusCode)
	}

	// 削除後の取得: 404
	resp, body = env.doRequest(t, http.MethodGet, "/api/todos/"+created.ID, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete: status = %d", resp.StatusCode)
	}
	var errBody errorResponse
	if err := json.Unmarshal(body, &errBody); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	if errBody.Error != "Resource not found" {
		t.Errorf("error = %q, want %q", errBody.Error, "Resource not found")
	}

	// 2回目の削除も404
	resp, _ = env.doRequest(t, http.MethodDelete, "/api/todos/"+created.ID, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete: status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestIntegration_RepositoryConflicts(t *testing.T) {
	env := setupTestEnv(t)

	repoBody := `{"github_id":12345,"name":"hello-world","full_name":"octocat/hello-world","html_url":"https://github.com/octocat/hello-world","stargazers_count":42}`

	resp, body := env.doRequest(t, http.MethodPost, "/api/repositories", repoBody)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status = %d, body = %s", resp.StatusCode, body)
	}

	// 同じgithub_idの再登録は400
	resp, body = env.doRequest(t, http.MethodPost, "/api/repositories", repoBody)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate create: status = %d", resp.StatusCode)
	}
	var errBody errorResponse
	if err := json.Unmarshal(body, &errBody); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	if errBody.Error != "Repository with GitHub ID 12345 already exists" {
		t.Errorf("error = %q", errBody.Error)
	}
}

func TestIntegration_LabelOptionalFields(t *testing.T) {
	env := setupTestEnv(t)

	// colorとdescriptionは省略可能
	resp, body := env.doRequest(t, http.MethodPost, "/api/labels", `{"name":"needs-triage"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create label without color: status = %d, body = %s", resp.StatusCode, body)
	}
	var created labelResponse
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatal(err)
	}
	if created.Color != nil {
		t.Errorf("color = %q, want null", *created.Color)
	}
	if created.Description != nil {
		t.Errorf("description = %q, want null", *created.Description)
	}

	// 100文字のラベル名は上限ちょうどで有効
	longName := strings.Repeat("x", 100)
	resp, body = env.doRequest(t, http.MethodPost, "/api/labels",
		fmt.Sprintf(`{"name":%q}`, longName))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create label with 100-char name: status = %d, body = %s", resp.StatusCode, body)
	}
	var longLabel labelResponse
	if err := json.Unmarshal(body, &longLabel); err != nil {
		t.Fatal(err)
	}
	if longLabel.Name != longName {
		t.Errorf("name round-trip failed: len = %d, want 100", len(longLabel.Name))
	}

	// 取得でも同じ値が返る
	resp, body = env.doRequest(t, http.MethodGet, "/api/labels/"+longLabel.ID, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get label: status = %d", resp.StatusCode)
	}
	var fetched labelResponse
	if err := json.Unmarshal(body, &fetched); err != nil {
		t.Fatal(err)
	}
	if fetched.Name != longName {
		t.Errorf("fetched name mismatch: len = %d, want 100", len(fetched.Name))
	}

	// 101文字は検証エラー
	resp, body = env.doRequest(t, http.MethodPost, "/api/labels",
		fmt.Sprintf(`{"name":%q}`, strings.Repeat("x", 101)))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("create label with 101-char name: status = %d", resp.StatusCode)
	}
	var errBody errorResponse
	if err := json.Unmarshal(body, &errBody); err != nil {
		t.Fatal(err)
	}
	if errBody.Error != "Label name is too long (max 100 characters)" {
		t.Errorf("error = %q", errBody.Error)
	}
}

func TestIntegration_LabelAssociation(t *testing.T) {
	env := setupTestEnv(t)

	// リポジトリとラベルを作成
	resp, body := env.doRequest(t, http.MethodPost, "/api/repositories",
		`{"github_id":1,"name":"hello-world","full_name":"octocat/hello-world","html_url":"https://github.com/octocat/hello-world"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create repository: status = %d, body = %s", resp.StatusCode, body)
	}
	var createdRepo repoResponse
	if err := json.Unmarshal(body, &createdRepo); err != nil {
		t.Fatal(err)
	}

	resp, body = env.doRequest(t, http.MethodPost, "/api/labels", `{"name":"bug","color":"#d73a4a"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create label: status = %d, body = %s", resp.StatusCode, body)
	}
	var createdLabel labelResponse
	if err := json.Unmarshal(body, &createdLabel); err != nil {
		t.Fatal(err)
	}

	// 関連付け
	attachBody := fmt.Sprintf(`{"label_id":%q}`, createdLabel.ID)
	resp, _ = env.doRequest(t, http.MethodPost, "/api/repositories/"+createdRepo.ID+"/labels", attachBody)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("attach: status = %d", resp.StatusCode)
	}

	// 二重の関連付けは400
	resp, body = env.doRequest(t, http.MethodPost, "/api/repositories/"+createdRepo.ID+"/labels", attachBody)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate attach: status = %d", resp.StatusCode)
	}
	var errBody errorResponse
	if err := json.Unmarshal(body, &errBody); err != nil {
		t.Fatal(err)
	}
	if errBody.Error != "This label is already applied to the repository" {
		t.Errorf("error = %q", errBody.Error)
	}

	// 存在しないラベルの関連付けは400
	resp, body = env.doRequest(t, http.MethodPost, "/api/repositories/"+createdRepo.ID+"/labels",
		`{"label_id":"no-such-label"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("attach missing label: status = %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, &errBody); err != nil {
		t.Fatal(err)
	}
	if errBody.Error != "Label with ID no-such-label does not exist" {
		t.Errorf("error = %q", errBody.Error)
	}

	// リポジトリのラベル一覧
	resp, body = env.doRequest(t, http.MethodGet, "/api/repositories/"+createdRepo.ID+"/labels", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list labels: status = %d", resp.StatusCode)
	}
	var labels []labelResponse
	if err := json.Unmarshal(body, &labels); err != nil {
		t.Fatal(err)
	}
	if len(labels) != 1 || labels[0].Name != "bug" {
		t.Errorf("unexpected labels: %+v", labels)
	}

	// ラベル別リポジトリ一覧
	resp, body = env.doRequest(t, http.MethodGet, "/api/labels/"+createdLabel.ID+"/repositories", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list by label: status = %d", resp.StatusCode)
	}
	var repos []repoResponse
	if err := json.Unmarshal(body, &repos); err != nil {
		t.Fatal(err)
	}
	if len(repos) != 1 || repos[0].ID != createdRepo.ID {
		t.Errorf("unexpected repositories: %+v", repos)
	}

	// 関連付けの解除
	resp, _ = env.doRequest(t, http.MethodDelete, "/api/repositories/"+createdRepo.ID+"/labels/"+createdLabel.ID, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("detach: status = %d", resp.StatusCode)
	}

	// 2回目の解除は404
	resp, _ = env.doRequest(t, http.MethodDelete, "/api/repositories/"+createdRepo.ID+"/labels/"+createdLabel.ID, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second detach: status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestIntegration_ProtectedRoutesRequireAuth(t *testing.T) {
	env := setupTestEnv(t)

	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/api/todos", nil)
	if err != nil {
		t.Fatal(err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestIntegration_HealthAndMetricsArePublic(t *testing.T) {
	env := setupTestEnv(t)

	for _, path := range []string{"/health", "/metrics"} {
		resp, err := http.Get(env.server.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: status = %d, want %d", path, resp.StatusCode, http.StatusOK)
		}
	}
}

func TestIntegration_Me(t *testing.T) {
	env := setupTestEnv(t)

	resp, body := env.doRequest(t, http.MethodGet, "/api/auth/me", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me: status = %d", resp.StatusCode)
	}

	var user userResponse
	if err := json.Unmarshal(body, &user); err != nil {
		t.Fatal(err)
	}
	if user.Username != "octocat" {
		t.Errorf("username = %q, want %q", user.Username, "octocat")
	}
	// レスポンスにアクセストークンが含まれないことをフィールド定義で保証している
	if strings.Contains(string(body), "access_token") {
		t.Error("response must not contain access_token")
	}
}
