// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/gitodo/internal/model"
)

// errorResponse はAPIエラーレスポンスの統一フォーマット。
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeError は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorResponse{Error: message})
}

// handleServiceError はサービス層のエラーをHTTPステータスに変換する。
//   - ValidationError / ConflictError → 400（メッセージをそのまま返す）
//   - NotFoundError → 404（IDを含まない固定メッセージ）
//   - AuthError → 401（詳細を含まない固定メッセージ）
//   - それ以外（DataError含む） → 500（詳細はログのみ）
func handleServiceError(w http.ResponseWriter, err error) {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, validationErr.Message)
		return
	}

	var conflictErr *model.ConflictError
	if errors.As(err, &conflictErr) {
		writeError(w, http.StatusBadRequest, conflictErr.Message)
		return
	}

	var notFoundErr *model.NotFoundError
	if errors.As(err, &notFoundErr) {
		writeError(w, http.StatusNotFound, "Resource not found")
		return
	}

	var authErr *model.AuthError
	if errors.As(err, &authErr) {
		slog.Warn("authentication failed", slog.String("error", err.Error()))
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	slog.Error("internal error", slog.String("error", err.Error()))
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
