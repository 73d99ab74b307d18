package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/gitodo/internal/domain"
	"github.com/hitoshi/gitodo/internal/repo"
)

// RepoServiceInterface はリポジトリハンドラーが必要とするサービスインターフェース。
type RepoServiceInterface interface {
	Create(ctx context.Context, input repo.CreateInput) (*domain.Repository, error)
	Update(ctx context.Context, id string, input repo.UpdateInput) (*domain.Repository, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Repository, error)
	List(ctx context.Context) ([]domain.Repository, error)
	AddLabel(ctx context.Context, repositoryID, labelID string) error
	RemoveLabel(ctx context.Context, repositoryID, labelID string) error
	ListLabels(ctx context.Context, repositoryID string) ([]domain.Label, error)
	ListByLabel(ctx context.Context, labelID string) ([]domain.Repository, error)
}

// RepoHandler はGitHubリポジトリ管理のHTTPハンドラー。
type RepoHandler struct {
	service RepoServiceInterface
}

// NewRepoHandler はRepoHandlerを生成する。
func NewRepoHandler(service RepoServiceInterface) *RepoHandler {
	return &RepoHandler{service: service}
}

// createRepoRequest はリポジトリ登録リクエストのボディ。
type createRepoRequest struct {
	GithubID        int64   `json:"github_id"`
	Name            string  `json:"name"`
	FullName        string  `json:"full_name"`
	Description     *string `json:"description"`
	Language        *string `json:"language"`
	HTMLURL         string  `json:"html_url"`
	StargazersCount int64   `json:"stargazers_count"`
}

// updateRepoRequest はリポジトリ更新リクエストのボディ。省略されたフィールドは変更しない。
type updateRepoRequest struct {
	Name            *string `json:"name"`
	FullName        *string `json:"full_name"`
	Description     *string `json:"description"`
	Language        *string `json:"language"`
	HTMLURL         *string `json:"html_url"`
	StargazersCount *int64  `json:"stargazers_count"`
}

// addLabelRequest はラベル関連付けリクエストのボディ。
type addLabelRequest struct {
	LabelID string `json:"label_id"`
}

// repoResponse はリポジトリのAPIレスポンス。
type repoResponse struct {
	ID              string    `json:"id"`
	GithubID        int64     `json:"github_id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     *string   `json:"description"`
	Language        *string   `json:"language"`
	HTMLURL         string    `json:"html_url"`
	StargazersCount int64     `json:"stargazers_count"`
	ConnectedAt     time.Time `json:"connected_at"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toRepoResponse(r *domain.Repository) repoResponse {
	return repoResponse{
		ID:              r.ID,
		GithubID:        r.GithubID,
		Name:            r.Name.String(),
		FullName:        r.FullName.String(),
		Description:     r.Description,
		Language:        r.Language,
		HTMLURL:         r.HTMLURL.String(),
		StargazersCount: r.StargazersCount,
		ConnectedAt:     r.ConnectedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func toRepoResponses(repos []domain.Repository) []repoResponse {
	responses := make([]repoResponse, 0, len(repos))
	for i := range repos {
		responses = append(responses, toRepoResponse(&repos[i]))
	}
	return responses
}

// Create はリポジトリを登録する。
// POST /api/repositories
func (h *RepoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRepoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), repo.CreateInput{
		GithubID:        req.GithubID,
		Name:            req.Name,
		FullName:        req.FullName,
		Description:     req.Description,
		Language:        req.Language,
		HTMLURL:         req.HTMLURL,
		StargazersCount: req.StargazersCount,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRepoResponse(created))
}

// Update はリポジトリを部分更新する。
// PUT /api/repositories/{id}
func (h *RepoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateRepoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), id, repo.UpdateInput{
		Name:            req.Name,
		FullName:        req.FullName,
		Description:     req.Description,
		Language:        req.Language,
		HTMLURL:         req.HTMLURL,
		StargazersCount: req.StargazersCount,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRepoResponse(updated))
}

// Delete はリポジトリを削除する。
// DELETE /api/repositories/{id}
func (h *RepoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get はリポジトリを取得する。
// GET /api/repositories/{id}
func (h *RepoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRepoResponse(found))
}

// List は全リポジトリを作成日時の降順で返す。
// GET /api/repositories
func (h *RepoHandler) List(w http.ResponseWriter, r *http.Request) {
	repos, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRepoResponses(repos))
}

// AddLabel はリポジトリにラベルを関連付ける。
// POST /api/repositories/{id}/labels
func (h *RepoHandler) AddLabel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req addLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.AddLabel(r.Context(), id, req.LabelID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveLabel はリポジトリからラベルの関連付けを外す。
// DELETE /api/repositories/{id}/labels/{labelID}
func (h *RepoHandler) RemoveLabel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	labelID := chi.URLParam(r, "labelID")

	if err := h.service.RemoveLabel(r.Context(), id, labelID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListLabels はリポジトリに付与されたラベルをname昇順で返す。
// GET /api/repositories/{id}/labels
func (h *RepoHandler) ListLabels(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	labels, err := h.service.ListLabels(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toLabelResponses(labels))
}

// ListByLabel はラベルが付与されたリポジトリを作成日時の降順で返す。
// GET /api/labels/{id}/repositories
func (h *RepoHandler) ListByLabel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	repos, err := h.service.ListByLabel(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRepoResponses(repos))
}
