package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/gitodo/internal/domain"
	"github.com/hitoshi/gitodo/internal/todo"
)

// TodoServiceInterface はTodoハンドラーが必要とするサービスインターフェース。
type TodoServiceInterface interface {
	Create(ctx context.Context, input todo.CreateInput) (*domain.Todo, error)
	Update(ctx context.Context, id string, input todo.UpdateInput) (*domain.Todo, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Todo, error)
	List(ctx context.Context) ([]domain.Todo, error)
}

// TodoHandler はTodo管理のHTTPハンドラー。
type TodoHandler struct {
	service TodoServiceInterface
}

// NewTodoHandler はTodoHandlerを生成する。
func NewTodoHandler(service TodoServiceInterface) *TodoHandler {
	return &TodoHandler{service: service}
}

// createTodoRequest はTodo作成リクエストのボディ。
type createTodoRequest struct {
	Title string `json:"title"`
}

// updateTodoRequest はTodo更新リクエストのボディ。省略されたフィールドは変更しない。
type updateTodoRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// todoResponse はTodoのAPIレスポンス。
type todoResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toTodoResponse(t *domain.Todo) todoResponse {
	return todoResponse{
		ID:        t.ID,
		Title:     t.Title.String(),
		Completed: t.Completed,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// Create はTodoを作成する。
// POST /api/todos
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), todo.CreateInput{Title: req.Title})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTodoResponse(created))
}

// Update はTodoを部分更新する。
// PUT /api/todos/{id}
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), id, todo.UpdateInput{
		Title:     req.Title,
		Completed: req.Completed,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTodoResponse(updated))
}

// Delete はTodoを削除する。
// DELETE /api/todos/{id}
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get はTodoを取得する。
// GET /api/todos/{id}
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTodoResponse(found))
}

// List は全Todoを作成日時の降順で返す。
// GET /api/todos
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	todos, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// 空の場合もnullではなく[]を返す
	responses := make([]todoResponse, 0, len(todos))
	for i := range todos {
		responses = append(responses, toTodoResponse(&todos[i]))
	}

	writeJSON(w, http.StatusOK, responses)
}
