// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hitoshi/gitodo/internal/model"
)

const bearerPrefix = "Bearer "

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// userContextKey はリクエストコンテキストに認証済みユーザーを格納するためのキー。
var userContextKey = contextKey("user")

// TokenVerifier はJWTの検証に必要なインターフェース。
// auth.Serviceの部分集合として定義する。
type TokenVerifier interface {
	VerifyToken(tokenString string) (string, error)
}

// UserFinder はユーザーの検索に必要なインターフェース。
type UserFinder interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
}

// NewAuthMiddleware はAuthorizationヘッダーのBearerトークンを検証する
// ミドルウェアを返す。ヘッダーは厳密に"Bearer "で始まる必要があり、
// 大文字小文字の変種や余分な空白は受け付けない。
// トークンのsubjectが指すユーザーが現存することを確認し、
// 認証済みユーザーをリクエストコンテキストに注入する。
// 失敗理由はログにのみ記録し、クライアントには常に同一の401を返す。
func NewAuthMiddleware(tokens TokenVerifier, users UserFinder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				writeUnauthorized(w)
				return
			}
			tokenString := header[len(bearerPrefix):]

			userID, err := tokens.VerifyToken(tokenString)
			if err != nil {
				slog.Warn("token verification failed",
					slog.String("error", err.Error()),
				)
				writeUnauthorized(w)
				return
			}

			user, err := users.GetUser(r.Context(), userID)
			if err != nil {
				slog.Error("failed to find user for token",
					slog.String("user_id", userID),
					slog.String("error", err.Error()),
				)
				writeUnauthorized(w)
				return
			}
			if user == nil {
				slog.Warn("token subject no longer exists",
					slog.String("user_id", userID),
				)
				writeUnauthorized(w)
				return
			}

			ctx := ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeUnauthorized は失敗理由を区別しない401レスポンスを書き込む。
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}

// UserFromContext はリクエストコンテキストから認証済みユーザーを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func UserFromContext(ctx context.Context) (*model.User, error) {
	user, ok := ctx.Value(userContextKey).(*model.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("user not found in context")
	}
	return user, nil
}

// ContextWithUser はコンテキストに認証済みユーザーを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}
