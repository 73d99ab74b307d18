package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/gitodo/internal/domain"
	"github.com/hitoshi/gitodo/internal/label"
)

// LabelServiceInterface はラベルハンドラーが必要とするサービスインターフェース。
type LabelServiceInterface interface {
	Create(ctx context.Context, input label.CreateInput) (*domain.Label, error)
	Update(ctx context.Context, id string, input label.UpdateInput) (*domain.Label, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Label, error)
	List(ctx context.Context) ([]domain.Label, error)
}

// LabelHandler はラベル管理のHTTPハンドラー。
type LabelHandler struct {
	service LabelServiceInterface
}

// NewLabelHandler はLabelHandlerを生成する。
func NewLabelHandler(service LabelServiceInterface) *LabelHandler {
	return &LabelHandler{service: service}
}

// createLabelRequest はラベル作成リクエストのボディ。
type createLabelRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// updateLabelRequest はラベル更新リクエストのボディ。省略されたフィールドは変更しない。
type updateLabelRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// labelResponse はラベルのAPIレスポンス。
type labelResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Color       *string   `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toLabelResponse(l *domain.Label) labelResponse {
	return labelResponse{
		ID:          l.ID,
		Name:        l.Name.String(),
		Description: l.Description,
		Color:       l.Color,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func toLabelResponses(labels []domain.Label) []labelResponse {
	responses := make([]labelResponse, 0, len(labels))
	for i := range labels {
		responses = append(responses, toLabelResponse(&labels[i]))
	}
	return responses
}

// Create はラベルを作成する。
// POST /api/labels
func (h *LabelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), label.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toLabelResponse(created))
}

// Update はラベルを部分更新する。
// PUT /api/labels/{id}
func (h *LabelHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), id, label.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toLabelResponse(updated))
}

// Delete はラベルを削除する。
// DELETE /api/labels/{id}
func (h *LabelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get はラベルを取得する。
// GET /api/labels/{id}
func (h *LabelHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toLabelResponse(found))
}

// List は全ラベルをname昇順で返す。
// GET /api/labels
func (h *LabelHandler) List(w http.ResponseWriter, r *http.Request) {
	labels, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toLabelResponses(labels))
}
